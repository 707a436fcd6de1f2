package model

import "fmt"

//go:generate go run github.com/dmarkham/enumer -type RealmOptionName -trimprefix Option -transform kebab -text -yaml -output realmoption.gen.go

// RealmOptionName is one of the numeric realm settings that can be stored.
type RealmOptionName int

const (
	OptionMaxBps RealmOptionName = iota
	OptionTotalQuota
	OptionUserQuota
)

// RealmOption is a stored per-realm setting. Opt and Value keep the raw
// column text; rows written by other tools may carry names this build does
// not know.
type RealmOption struct {
	Realm string `gorm:"primaryKey;size:127"`
	Opt   string `gorm:"column:opt;primaryKey;size:32"`
	Value string `gorm:"size:128"`
}

func (RealmOption) TableName() string {
	return "turn_realm_option"
}

// Name parses Opt.
func (o RealmOption) Name() (RealmOptionName, error) {
	return RealmOptionNameString(o.Opt)
}

func (o RealmOption) String() string {
	return fmt.Sprintf("%s[%s]=%s", o.Opt, o.Realm, o.Value)
}
