package model

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
)

//go:generate go run github.com/dmarkham/enumer -type HashAlgorithm -trimprefix Hash -transform lower -text -yaml -output hash.gen.go

// HashAlgorithm is the message-integrity algorithm long-term keys are
// derived for. It fixes the length of every stored credential key.
type HashAlgorithm int

const (
	HashSHA1 HashAlgorithm = iota
	HashSHA256
	HashSHA384
	HashSHA512
)

// KeySize returns the length in bytes of keys derived for h.
func (h HashAlgorithm) KeySize() int {
	switch h {
	case HashSHA256:
		return sha256.Size
	case HashSHA384:
		return sha512.Size384
	case HashSHA512:
		return sha512.Size
	default:
		return md5.Size
	}
}

// DeriveKey derives the long-term key of user in realm from password.
// SHA1 keys are MD5(user:realm:password); the others hash the same input
// with the named SHA-2 function.
func (h HashAlgorithm) DeriveKey(user, realm, password string) []byte {
	input := []byte(user + ":" + realm + ":" + password)
	switch h {
	case HashSHA256:
		sum := sha256.Sum256(input)
		return sum[:]
	case HashSHA384:
		sum := sha512.Sum384(input)
		return sum[:]
	case HashSHA512:
		sum := sha512.Sum512(input)
		return sum[:]
	default:
		sum := md5.Sum(input)
		return sum[:]
	}
}
