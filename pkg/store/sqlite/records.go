package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

func (c *Conn) SecretsForRealm(ctx context.Context, realm string) ([]string, error) {
	return queryRows(ctx, c.db, func(r *sql.Rows, v *string) error {
		return r.Scan(v)
	}, `SELECT value FROM turn_secret WHERE realm = ? ORDER BY value`, realm)
}

func (c *Conn) Secrets(ctx context.Context, realm string) ([]model.Secret, error) {
	q, args := filtered(realm,
		`SELECT COALESCE(realm, ''), value FROM turn_secret WHERE realm = ? ORDER BY value`,
		`SELECT COALESCE(realm, ''), value FROM turn_secret ORDER BY realm, value`)
	return queryRows(ctx, c.db, func(r *sql.Rows, s *model.Secret) error {
		return r.Scan(&s.Realm, &s.Value)
	}, q, args...)
}

func (c *Conn) UpsertSecret(ctx context.Context, s model.Secret) error {
	return c.exec(ctx, `INSERT OR REPLACE INTO turn_secret (realm, value) VALUES (?, ?)`, s.Realm, s.Value)
}

func (c *Conn) DeleteSecret(ctx context.Context, realm, value string) error {
	return c.exec(ctx, `DELETE FROM turn_secret WHERE value = ? AND realm = ?`, value, realm)
}

func (c *Conn) DeleteRealmSecrets(ctx context.Context, realm string) error {
	return c.exec(ctx, `DELETE FROM turn_secret WHERE realm = ?`, realm)
}

func (c *Conn) UserKey(ctx context.Context, realm, name string) (string, error) {
	var key string
	err := c.db.QueryRowContext(ctx,
		`SELECT hmackey FROM turnusers_lt WHERE name = ? AND realm = ?`, name, realm).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	return key, err
}

func (c *Conn) UpsertUser(ctx context.Context, u model.Credential) error {
	return c.exec(ctx, `INSERT OR REPLACE INTO turnusers_lt (realm, name, hmackey) VALUES (?, ?, ?)`,
		u.Realm, u.Name, u.HMACKey)
}

func (c *Conn) DeleteUser(ctx context.Context, realm, name string) error {
	return c.exec(ctx, `DELETE FROM turnusers_lt WHERE name = ? AND realm = ?`, name, realm)
}

func (c *Conn) Users(ctx context.Context, realm string) ([]model.Credential, error) {
	q, args := filtered(realm,
		`SELECT COALESCE(realm, ''), name FROM turnusers_lt WHERE realm = ? ORDER BY name`,
		`SELECT COALESCE(realm, ''), name FROM turnusers_lt ORDER BY realm, name`)
	return queryRows(ctx, c.db, func(r *sql.Rows, u *model.Credential) error {
		return r.Scan(&u.Realm, &u.Name)
	}, q, args...)
}

func (c *Conn) UpsertOrigin(ctx context.Context, o model.OriginRealm) error {
	return c.exec(ctx, `INSERT OR REPLACE INTO turn_origin_to_realm (origin, realm) VALUES (?, ?)`, o.Origin, o.Realm)
}

func (c *Conn) DeleteOrigin(ctx context.Context, origin string) error {
	return c.exec(ctx, `DELETE FROM turn_origin_to_realm WHERE origin = ?`, origin)
}

func (c *Conn) Origins(ctx context.Context, realm string) ([]model.OriginRealm, error) {
	q, args := filtered(realm,
		`SELECT origin, COALESCE(realm, '') FROM turn_origin_to_realm WHERE realm = ? ORDER BY origin`,
		`SELECT origin, COALESCE(realm, '') FROM turn_origin_to_realm ORDER BY realm, origin`)
	return queryRows(ctx, c.db, func(r *sql.Rows, o *model.OriginRealm) error {
		return r.Scan(&o.Origin, &o.Realm)
	}, q, args...)
}

func (c *Conn) UpsertRealmOption(ctx context.Context, o model.RealmOption) error {
	return c.exec(ctx, `INSERT OR REPLACE INTO turn_realm_option (realm, opt, value) VALUES (?, ?, ?)`,
		o.Realm, o.Opt, o.Value)
}

func (c *Conn) RealmOptions(ctx context.Context, realm string) ([]model.RealmOption, error) {
	q, args := filtered(realm,
		`SELECT COALESCE(realm, ''), opt, COALESCE(value, '') FROM turn_realm_option WHERE realm = ? ORDER BY opt`,
		`SELECT COALESCE(realm, ''), opt, COALESCE(value, '') FROM turn_realm_option ORDER BY realm, opt`)
	return queryRows(ctx, c.db, func(r *sql.Rows, o *model.RealmOption) error {
		return r.Scan(&o.Realm, &o.Opt, &o.Value)
	}, q, args...)
}

func peerTable(kind model.IPKind) (string, error) {
	if !kind.IsAIPKind() {
		return "", fmt.Errorf("unknown ip list %s", kind)
	}
	return kind.Table(), nil
}

func (c *Conn) IPRanges(ctx context.Context, kind model.IPKind, realm string) ([]model.IPRange, error) {
	table, err := peerTable(kind)
	if err != nil {
		return nil, err
	}
	q, args := filtered(realm,
		`SELECT COALESCE(realm, ''), ip_range FROM `+table+` WHERE realm = ? ORDER BY ip_range`,
		`SELECT COALESCE(realm, ''), ip_range FROM `+table+` ORDER BY realm, ip_range`)
	return queryRows(ctx, c.db, func(r *sql.Rows, ip *model.IPRange) error {
		ip.Kind = kind
		return r.Scan(&ip.Realm, &ip.Range)
	}, q, args...)
}

func (c *Conn) UpsertIPRange(ctx context.Context, ip model.IPRange) error {
	table, err := peerTable(ip.Kind)
	if err != nil {
		return err
	}
	return c.exec(ctx, `INSERT OR REPLACE INTO `+table+` (realm, ip_range) VALUES (?, ?)`, ip.Realm, ip.Range)
}

func (c *Conn) DeleteIPRange(ctx context.Context, ip model.IPRange) error {
	table, err := peerTable(ip.Kind)
	if err != nil {
		return err
	}
	return c.exec(ctx, `DELETE FROM `+table+` WHERE realm = ? AND ip_range = ?`, ip.Realm, ip.Range)
}

const oauthColumns = `kid, COALESCE(ikm_key, ''), COALESCE(timestamp, 0), COALESCE(lifetime, 0), COALESCE(as_rs_alg, ''), COALESCE(realm, '')`

func scanOAuthKey(r interface{ Scan(...interface{}) error }, k *model.OAuthKey) error {
	return r.Scan(&k.KID, &k.IKMKey, &k.Timestamp, &k.Lifetime, &k.AsRsAlg, &k.Realm)
}

func (c *Conn) OAuthKey(ctx context.Context, kid string) (*model.OAuthKey, error) {
	var k model.OAuthKey
	err := scanOAuthKey(c.db.QueryRowContext(ctx, `SELECT `+oauthColumns+` FROM oauth_key WHERE kid = ?`, kid), &k)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (c *Conn) OAuthKeys(ctx context.Context) ([]model.OAuthKey, error) {
	return queryRows(ctx, c.db, func(r *sql.Rows, k *model.OAuthKey) error {
		return scanOAuthKey(r, k)
	}, `SELECT `+oauthColumns+` FROM oauth_key ORDER BY kid`)
}

func (c *Conn) UpsertOAuthKey(ctx context.Context, k model.OAuthKey) error {
	return c.exec(ctx,
		`INSERT OR REPLACE INTO oauth_key (kid, ikm_key, timestamp, lifetime, as_rs_alg, realm) VALUES (?, ?, ?, ?, ?, ?)`,
		k.KID, k.IKMKey, k.Timestamp, k.Lifetime, k.AsRsAlg, k.Realm)
}

func (c *Conn) DeleteOAuthKey(ctx context.Context, kid string) error {
	return c.exec(ctx, `DELETE FROM oauth_key WHERE kid = ?`, kid)
}

func (c *Conn) AdminUser(ctx context.Context, name string) (*model.AdminUser, error) {
	a := model.AdminUser{Name: name}
	err := c.db.QueryRowContext(ctx,
		`SELECT COALESCE(realm, ''), COALESCE(password, '') FROM admin_user WHERE name = ?`, name).Scan(&a.Realm, &a.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Conn) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	return queryRows(ctx, c.db, func(r *sql.Rows, a *model.AdminUser) error {
		return r.Scan(&a.Name, &a.Realm)
	}, `SELECT name, COALESCE(realm, '') FROM admin_user ORDER BY realm, name`)
}

func (c *Conn) UpsertAdminUser(ctx context.Context, a model.AdminUser) error {
	return c.exec(ctx, `INSERT OR REPLACE INTO admin_user (realm, name, password) VALUES (?, ?, ?)`,
		a.Realm, a.Name, a.Password)
}

func (c *Conn) DeleteAdminUser(ctx context.Context, name string) error {
	return c.exec(ctx, `DELETE FROM admin_user WHERE name = ?`, name)
}
