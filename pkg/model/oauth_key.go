package model

import (
	"fmt"
	"time"
)

// OAuthKey is a third-party authorization key. Timestamp is the issue time
// in Unix seconds and Lifetime the validity in seconds.
type OAuthKey struct {
	KID       string `gorm:"column:kid;primaryKey;size:128"`
	IKMKey    string `gorm:"column:ikm_key;size:256"`
	Timestamp int64  `gorm:"column:timestamp"`
	Lifetime  int32  `gorm:"column:lifetime"`
	AsRsAlg   string `gorm:"column:as_rs_alg;size:64"`
	Realm     string `gorm:"size:127"`
}

func (OAuthKey) TableName() string {
	return "oauth_key"
}

// ExpiresAt returns the end of the validity window, or the zero time when
// the key has no lifetime.
func (k OAuthKey) ExpiresAt() time.Time {
	if k.Lifetime <= 0 {
		return time.Time{}
	}
	return time.Unix(k.Timestamp, 0).Add(time.Duration(k.Lifetime) * time.Second)
}

func (k OAuthKey) String() string {
	s := fmt.Sprintf("  kid=%s, ikm_key=%s, timestamp=%d, lifetime=%d, as_rs_alg=%s",
		k.KID, k.IKMKey, k.Timestamp, k.Lifetime, k.AsRsAlg)
	if k.Realm != "" {
		s += ", realm=" + k.Realm
	}
	return s
}
