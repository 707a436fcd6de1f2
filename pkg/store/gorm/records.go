package gorm

import (
	"context"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

func (c *Conn) SecretsForRealm(ctx context.Context, realm string) ([]string, error) {
	var values []string
	err := c.tx(ctx).Model(&model.Secret{}).Where("realm = ?", realm).Order("value").Pluck("value", &values).Error
	return values, describe(err)
}

func (c *Conn) Secrets(ctx context.Context, realm string) ([]model.Secret, error) {
	var secrets []model.Secret
	err := ordered(c.tx(ctx), realm, "value").Find(&secrets).Error
	return secrets, describe(err)
}

func (c *Conn) UpsertSecret(ctx context.Context, s model.Secret) error {
	return describe(c.tx(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error)
}

func (c *Conn) DeleteSecret(ctx context.Context, realm, value string) error {
	return describe(c.tx(ctx).Where("value = ? AND realm = ?", value, realm).Delete(&model.Secret{}).Error)
}

func (c *Conn) DeleteRealmSecrets(ctx context.Context, realm string) error {
	return describe(c.tx(ctx).Where("realm = ?", realm).Delete(&model.Secret{}).Error)
}

func (c *Conn) UserKey(ctx context.Context, realm, name string) (string, error) {
	var users []model.Credential
	if err := c.tx(ctx).Where("name = ? AND realm = ?", name, realm).Find(&users).Error; err != nil {
		return "", describe(err)
	}
	if len(users) == 0 {
		return "", store.ErrNotFound
	}
	// Tables created as char(128) hand keys back blank padded.
	return strings.TrimRight(users[0].HMACKey, " "), nil
}

func (c *Conn) UpsertUser(ctx context.Context, u model.Credential) error {
	return describe(c.tx(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&u).Error)
}

func (c *Conn) DeleteUser(ctx context.Context, realm, name string) error {
	return describe(c.tx(ctx).Where("name = ? AND realm = ?", name, realm).Delete(&model.Credential{}).Error)
}

func (c *Conn) Users(ctx context.Context, realm string) ([]model.Credential, error) {
	var users []model.Credential
	err := ordered(c.tx(ctx).Select("realm", "name"), realm, "name").Find(&users).Error
	return users, describe(err)
}

func (c *Conn) UpsertOrigin(ctx context.Context, o model.OriginRealm) error {
	return describe(c.tx(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&o).Error)
}

func (c *Conn) DeleteOrigin(ctx context.Context, origin string) error {
	return describe(c.tx(ctx).Where("origin = ?", origin).Delete(&model.OriginRealm{}).Error)
}

func (c *Conn) Origins(ctx context.Context, realm string) ([]model.OriginRealm, error) {
	var origins []model.OriginRealm
	err := ordered(c.tx(ctx), realm, "origin").Find(&origins).Error
	return origins, describe(err)
}

func (c *Conn) UpsertRealmOption(ctx context.Context, o model.RealmOption) error {
	return describe(c.tx(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&o).Error)
}

func (c *Conn) RealmOptions(ctx context.Context, realm string) ([]model.RealmOption, error) {
	var opts []model.RealmOption
	err := ordered(c.tx(ctx), realm, "opt").Find(&opts).Error
	return opts, describe(err)
}

func (c *Conn) IPRanges(ctx context.Context, kind model.IPKind, realm string) ([]model.IPRange, error) {
	var ranges []model.IPRange
	if err := ordered(c.tx(ctx).Table(kind.Table()), realm, "ip_range").Find(&ranges).Error; err != nil {
		return nil, describe(err)
	}
	for i := range ranges {
		ranges[i].Kind = kind
	}
	return ranges, nil
}

func (c *Conn) UpsertIPRange(ctx context.Context, r model.IPRange) error {
	return describe(c.tx(ctx).Table(r.Kind.Table()).Clauses(clause.OnConflict{DoNothing: true}).Create(&r).Error)
}

func (c *Conn) DeleteIPRange(ctx context.Context, r model.IPRange) error {
	return describe(c.tx(ctx).Table(r.Kind.Table()).
		Where("realm = ? AND ip_range = ?", r.Realm, r.Range).Delete(&model.IPRange{}).Error)
}

func (c *Conn) OAuthKey(ctx context.Context, kid string) (*model.OAuthKey, error) {
	var keys []model.OAuthKey
	if err := c.tx(ctx).Where("kid = ?", kid).Find(&keys).Error; err != nil {
		return nil, describe(err)
	}
	if len(keys) == 0 {
		return nil, store.ErrNotFound
	}
	return &keys[0], nil
}

func (c *Conn) OAuthKeys(ctx context.Context) ([]model.OAuthKey, error) {
	var keys []model.OAuthKey
	err := c.tx(ctx).Order("kid").Find(&keys).Error
	return keys, describe(err)
}

func (c *Conn) UpsertOAuthKey(ctx context.Context, k model.OAuthKey) error {
	return describe(c.tx(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&k).Error)
}

func (c *Conn) DeleteOAuthKey(ctx context.Context, kid string) error {
	return describe(c.tx(ctx).Where("kid = ?", kid).Delete(&model.OAuthKey{}).Error)
}

func (c *Conn) AdminUser(ctx context.Context, name string) (*model.AdminUser, error) {
	var admins []model.AdminUser
	if err := c.tx(ctx).Where("name = ?", name).Find(&admins).Error; err != nil {
		return nil, describe(err)
	}
	if len(admins) == 0 {
		return nil, store.ErrNotFound
	}
	return &admins[0], nil
}

func (c *Conn) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	var admins []model.AdminUser
	err := c.tx(ctx).Select("name", "realm").Order("realm").Order("name").Find(&admins).Error
	return admins, describe(err)
}

func (c *Conn) UpsertAdminUser(ctx context.Context, a model.AdminUser) error {
	return describe(c.tx(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&a).Error)
}

func (c *Conn) DeleteAdminUser(ctx context.Context, name string) error {
	return describe(c.tx(ctx).Where("name = ?", name).Delete(&model.AdminUser{}).Error)
}
