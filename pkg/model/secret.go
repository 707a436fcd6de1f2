package model

import "fmt"

// Secret is a realm shared secret. A realm may hold several at once while
// they are rotated.
type Secret struct {
	Realm string `gorm:"primaryKey;size:127"`
	Value string `gorm:"primaryKey;size:127"`
}

func (Secret) TableName() string {
	return "turn_secret"
}

func (s Secret) String() string {
	return fmt.Sprintf("%s[%s]", s.Value, s.Realm)
}
