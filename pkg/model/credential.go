package model

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidKey is returned when stored or supplied key material does not
// match the size of the configured hash algorithm.
var ErrInvalidKey = errors.New("invalid credential key")

// Credential is a long-term user credential. HMACKey holds the hex encoding
// of the derived key.
type Credential struct {
	Realm   string `gorm:"primaryKey;size:127"`
	Name    string `gorm:"primaryKey;size:512"`
	HMACKey string `gorm:"column:hmackey;type:varchar(128)"`
}

func (Credential) TableName() string {
	return "turnusers_lt"
}

func (c Credential) String() string {
	return fmt.Sprintf("%s[%s]", c.Name, c.Realm)
}

// EncodeKey returns the stored form of key.
func EncodeKey(key []byte) string {
	return hex.EncodeToString(key)
}

// DecodeKey parses a stored key and checks its length against alg.
func DecodeKey(stored string, alg HashAlgorithm) ([]byte, error) {
	key, err := hex.DecodeString(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(key) != alg.KeySize() {
		return nil, fmt.Errorf("%w: %d bytes, %s needs %d", ErrInvalidKey, len(key), alg, alg.KeySize())
	}
	return key, nil
}
