package model

import "fmt"

// OriginRealm routes requests presenting Origin to Realm.
type OriginRealm struct {
	Origin string `gorm:"primaryKey;size:127"`
	Realm  string `gorm:"size:127"`
}

func (OriginRealm) TableName() string {
	return "turn_origin_to_realm"
}

func (o OriginRealm) String() string {
	return fmt.Sprintf("%s ==>> %s", o.Origin, o.Realm)
}
