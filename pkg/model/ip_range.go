package model

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

//go:generate go run github.com/dmarkham/enumer -type IPKind -trimprefix IPKind -transform lower -text -yaml -output ipkind.gen.go

// IPKind selects one of the two independent peer IP lists.
type IPKind int

const (
	IPKindAllowed IPKind = iota
	IPKindDenied
)

// Table returns the table holding ranges of this kind.
func (k IPKind) Table() string {
	return k.String() + "_peer_ip"
}

var ErrInvalidIPRange = errors.New("invalid ip range")

// IPRange is one entry of a peer IP list. Range is a single address, a CIDR
// prefix or an inclusive "lo-hi" address range.
type IPRange struct {
	Kind  IPKind `gorm:"-"`
	Realm string `gorm:"primaryKey;size:127"`
	Range string `gorm:"column:ip_range;primaryKey;size:256"`
}

func (r IPRange) String() string {
	return fmt.Sprintf("%s[%s]", r.Range, r.Realm)
}

// ValidateIPRange checks that s is an address, a prefix or a range whose
// bounds share an address family and are in order.
func ValidateIPRange(s string) error {
	s = strings.TrimSpace(s)
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		from, err := netip.ParseAddr(strings.TrimSpace(lo))
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidIPRange, s, err)
		}
		to, err := netip.ParseAddr(strings.TrimSpace(hi))
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidIPRange, s, err)
		}
		if from.Is4() != to.Is4() || to.Less(from) {
			return fmt.Errorf("%w: %q", ErrInvalidIPRange, s)
		}
		return nil
	}
	if strings.Contains(s, "/") {
		if _, err := netip.ParsePrefix(s); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidIPRange, s, err)
		}
		return nil
	}
	if _, err := netip.ParseAddr(s); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidIPRange, s, err)
	}
	return nil
}
