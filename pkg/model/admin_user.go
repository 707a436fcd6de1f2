package model

import "fmt"

// AdminUser is an administrator account. An empty Realm means the
// administrator is not bound to a realm.
type AdminUser struct {
	Name     string `gorm:"primaryKey;size:32"`
	Realm    string `gorm:"size:127"`
	Password string `gorm:"size:127"`
}

func (AdminUser) TableName() string {
	return "admin_user"
}

func (a AdminUser) String() string {
	if a.Realm == "" {
		return a.Name
	}
	return fmt.Sprintf("%s[%s]", a.Name, a.Realm)
}
