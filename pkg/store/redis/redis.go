package redis

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

var (
	_ store.Backend = (*Backend)(nil)
	_ store.Conn    = (*Conn)(nil)
)

// Backend opens Redis clients.
type Backend struct{}

func NewBackend() *Backend {
	return &Backend{}
}

func (*Backend) Kind() store.Kind {
	return store.KindRedis
}

// Open connects to location with a single-connection pool.
func (*Backend) Open(ctx context.Context, location string) (store.Conn, error) {
	opts, err := parseLocation(location)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = 1

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Conn{client: client}, nil
}

// Conn is one Redis client.
type Conn struct {
	client *redis.Client
}

// NewConn wraps an existing client.
func NewConn(client *redis.Client) *Conn {
	return &Conn{client: client}
}

func (c *Conn) InitSchema(context.Context) error {
	return nil
}

func (c *Conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Conn) Close() error {
	return c.client.Close()
}

func (c *Conn) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

func (c *Conn) SecretsForRealm(ctx context.Context, realm string) ([]string, error) {
	values, err := c.client.SMembers(ctx, secretKey(realm)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(values)
	return values, nil
}

func (c *Conn) Secrets(ctx context.Context, realm string) ([]model.Secret, error) {
	keys, err := c.scan(ctx, realmPattern(realm, "secret"))
	if err != nil {
		return nil, err
	}
	var secrets []model.Secret
	for _, key := range keys {
		r, _, ok := realmPath(key)
		if !ok || !inRealm(realm, r) {
			continue
		}
		values, err := c.client.SMembers(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			secrets = append(secrets, model.Secret{Realm: r, Value: v})
		}
	}
	store.SortRows(secrets, realm != "",
		func(s model.Secret) string { return s.Realm },
		func(s model.Secret) string { return s.Value })
	return secrets, nil
}

func (c *Conn) UpsertSecret(ctx context.Context, s model.Secret) error {
	return c.client.SAdd(ctx, secretKey(s.Realm), s.Value).Err()
}

func (c *Conn) DeleteSecret(ctx context.Context, realm, value string) error {
	return c.client.SRem(ctx, secretKey(realm), value).Err()
}

func (c *Conn) DeleteRealmSecrets(ctx context.Context, realm string) error {
	return c.client.Del(ctx, secretKey(realm)).Err()
}

func (c *Conn) UserKey(ctx context.Context, realm, name string) (string, error) {
	key, err := c.client.Get(ctx, userKey(realm, name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrNotFound
	}
	return key, err
}

func (c *Conn) UpsertUser(ctx context.Context, u model.Credential) error {
	return c.client.Set(ctx, userKey(u.Realm, u.Name), u.HMACKey, 0).Err()
}

func (c *Conn) DeleteUser(ctx context.Context, realm, name string) error {
	return c.client.Del(ctx, userKey(realm, name)).Err()
}

func (c *Conn) Users(ctx context.Context, realm string) ([]model.Credential, error) {
	keys, err := c.scan(ctx, realmPattern(realm, "user/*/key"))
	if err != nil {
		return nil, err
	}
	var users []model.Credential
	for _, key := range keys {
		if u, ok := parseUserKey(key); ok && inRealm(realm, u.Realm) {
			users = append(users, u)
		}
	}
	store.SortRows(users, realm != "",
		func(u model.Credential) string { return u.Realm },
		func(u model.Credential) string { return u.Name })
	return users, nil
}

func (c *Conn) UpsertOrigin(ctx context.Context, o model.OriginRealm) error {
	return c.client.Set(ctx, originKey(o.Origin), o.Realm, 0).Err()
}

func (c *Conn) DeleteOrigin(ctx context.Context, origin string) error {
	return c.client.Del(ctx, originKey(origin)).Err()
}

func (c *Conn) Origins(ctx context.Context, realm string) ([]model.OriginRealm, error) {
	keys, err := c.scan(ctx, originPrefix+"*")
	if err != nil {
		return nil, err
	}
	var origins []model.OriginRealm
	for _, key := range keys {
		r, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !inRealm(realm, r) {
			continue
		}
		origins = append(origins, model.OriginRealm{Origin: strings.TrimPrefix(key, originPrefix), Realm: r})
	}
	store.SortRows(origins, realm != "",
		func(o model.OriginRealm) string { return o.Realm },
		func(o model.OriginRealm) string { return o.Origin })
	return origins, nil
}

func (c *Conn) UpsertRealmOption(ctx context.Context, o model.RealmOption) error {
	return c.client.Set(ctx, optionKey(o.Realm, o.Opt), o.Value, 0).Err()
}

func (c *Conn) RealmOptions(ctx context.Context, realm string) ([]model.RealmOption, error) {
	keys, err := c.scan(ctx, realmPattern(realm, "*"))
	if err != nil {
		return nil, err
	}
	var opts []model.RealmOption
	for _, key := range keys {
		r, opt, ok := parseOptionKey(key)
		if !ok || !inRealm(realm, r) {
			continue
		}
		value, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		opts = append(opts, model.RealmOption{Realm: r, Opt: opt, Value: value})
	}
	store.SortRows(opts, realm != "",
		func(o model.RealmOption) string { return o.Realm },
		func(o model.RealmOption) string { return o.Opt })
	return opts, nil
}

func (c *Conn) IPRanges(ctx context.Context, kind model.IPKind, realm string) ([]model.IPRange, error) {
	keys, err := c.scan(ctx, realmPattern(realm, kind.String()+"-peer-ip"))
	if err != nil {
		return nil, err
	}
	var ranges []model.IPRange
	for _, key := range keys {
		r, _, ok := realmPath(key)
		if !ok || !inRealm(realm, r) {
			continue
		}
		members, err := c.client.SMembers(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			ranges = append(ranges, model.IPRange{Kind: kind, Realm: r, Range: m})
		}
	}
	store.SortRows(ranges, realm != "",
		func(ip model.IPRange) string { return ip.Realm },
		func(ip model.IPRange) string { return ip.Range })
	return ranges, nil
}

func (c *Conn) UpsertIPRange(ctx context.Context, r model.IPRange) error {
	return c.client.SAdd(ctx, ipKey(r.Kind, r.Realm), r.Range).Err()
}

func (c *Conn) DeleteIPRange(ctx context.Context, r model.IPRange) error {
	return c.client.SRem(ctx, ipKey(r.Kind, r.Realm), r.Range).Err()
}

func (c *Conn) OAuthKey(ctx context.Context, kid string) (*model.OAuthKey, error) {
	fields, err := c.client.HGetAll(ctx, oauthKey(kid)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, store.ErrNotFound
	}
	k, err := parseOAuthKey(kid, fields)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (c *Conn) OAuthKeys(ctx context.Context) ([]model.OAuthKey, error) {
	keys, err := c.scan(ctx, oauthPrefix+"*")
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	var out []model.OAuthKey
	for _, key := range keys {
		k, err := c.OAuthKey(ctx, strings.TrimPrefix(key, oauthPrefix))
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *k)
	}
	return out, nil
}

func (c *Conn) UpsertOAuthKey(ctx context.Context, k model.OAuthKey) error {
	return c.client.HSet(ctx, oauthKey(k.KID), oauthFields(k)).Err()
}

func (c *Conn) DeleteOAuthKey(ctx context.Context, kid string) error {
	return c.client.Del(ctx, oauthKey(kid)).Err()
}

func (c *Conn) AdminUser(ctx context.Context, name string) (*model.AdminUser, error) {
	fields, err := c.client.HGetAll(ctx, adminKey(name)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, store.ErrNotFound
	}
	return &model.AdminUser{Name: name, Realm: fields["realm"], Password: fields["password"]}, nil
}

func (c *Conn) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	keys, err := c.scan(ctx, adminPrefix+"*")
	if err != nil {
		return nil, err
	}
	var admins []model.AdminUser
	for _, key := range keys {
		name := strings.TrimPrefix(key, adminPrefix)
		realm, err := c.client.HGet(ctx, key, "realm").Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
		admins = append(admins, model.AdminUser{Name: name, Realm: realm})
	}
	store.SortRows(admins, false,
		func(a model.AdminUser) string { return a.Realm },
		func(a model.AdminUser) string { return a.Name })
	return admins, nil
}

func (c *Conn) UpsertAdminUser(ctx context.Context, a model.AdminUser) error {
	return c.client.HSet(ctx, adminKey(a.Name), "realm", a.Realm, "password", a.Password).Err()
}

func (c *Conn) DeleteAdminUser(ctx context.Context, name string) error {
	return c.client.Del(ctx, adminKey(name)).Err()
}
