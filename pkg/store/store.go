package store

import (
	"context"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
)

// Driver is the complete user database contract.
type Driver interface {
	// Kind reports the active backend, KindUnknown once it failed to open.
	Kind() Kind

	// GetAuthSecrets returns the shared secrets of realm.
	GetAuthSecrets(ctx context.Context, realm string) ([]string, error)
	// GetUserKey returns the long-term key of user in realm.
	GetUserKey(ctx context.Context, realm, user string) ([]byte, error)
	SetUserKey(ctx context.Context, realm, user string, key []byte) error
	DeleteUser(ctx context.Context, realm, user string) error
	ListUsers(ctx context.Context, realm string, sink Sink[model.Credential]) (int, error)

	ListSecrets(ctx context.Context, realm string, sink Sink[model.Secret]) (int, error)
	// DeleteSecret removes one secret, or every secret of realm when secret
	// is empty.
	DeleteSecret(ctx context.Context, realm, secret string) error
	SetSecret(ctx context.Context, realm, secret string) error

	AddOrigin(ctx context.Context, origin, realm string) error
	DeleteOrigin(ctx context.Context, origin string) error
	ListOrigins(ctx context.Context, realm string, sink Sink[model.OriginRealm]) (int, error)

	// SetRealmOption stores a positive numeric option for realm.
	SetRealmOption(ctx context.Context, realm string, opt model.RealmOptionName, value int64) error
	ListRealmOptions(ctx context.Context, realm string, sink Sink[model.RealmOption]) (int, error)

	// Ping checks that the backend answers.
	Ping(ctx context.Context) error

	// ListIPRanges lists the peer IP ranges of kind, all realms when realm
	// is empty.
	ListIPRanges(ctx context.Context, kind model.IPKind, realm string, sink Sink[model.IPRange]) (int, error)
	SetIPRange(ctx context.Context, kind model.IPKind, realm, ipRange string) error
	DeleteIPRange(ctx context.Context, kind model.IPKind, realm, ipRange string) error

	// ReloadRealms republishes stored origins and realm options into table.
	ReloadRealms(ctx context.Context, table *realm.Table) error

	SetOAuthKey(ctx context.Context, key model.OAuthKey) error
	GetOAuthKey(ctx context.Context, kid string) (*model.OAuthKey, error)
	DeleteOAuthKey(ctx context.Context, kid string) error
	ListOAuthKeys(ctx context.Context, sink Sink[model.OAuthKey]) (int, error)

	GetAdminUser(ctx context.Context, name string) (*model.AdminUser, error)
	SetAdminUser(ctx context.Context, user model.AdminUser) error
	DeleteAdminUser(ctx context.Context, name string) error
	ListAdminUsers(ctx context.Context, sink Sink[model.AdminUser]) (int, error)

	// Disconnect closes the calling worker's handle.
	Disconnect(ctx context.Context) error
}

// Backend opens handles to one engine.
type Backend interface {
	Kind() Kind
	Open(ctx context.Context, location string) (Conn, error)
}

// Conn is one open handle. It is used by a single worker at a time and is
// not safe for concurrent use.
//
// Listings take an optional realm filter. Filtered results are ordered by
// key, unfiltered results by realm then key. Getters return ErrNotFound
// when nothing matches; other errors are engine errors.
type Conn interface {
	// InitSchema creates every table that does not exist yet.
	InitSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error

	SecretsForRealm(ctx context.Context, realm string) ([]string, error)
	Secrets(ctx context.Context, realm string) ([]model.Secret, error)
	UpsertSecret(ctx context.Context, s model.Secret) error
	DeleteSecret(ctx context.Context, realm, value string) error
	DeleteRealmSecrets(ctx context.Context, realm string) error

	// UserKey returns the stored (hex) key of name in realm.
	UserKey(ctx context.Context, realm, name string) (string, error)
	UpsertUser(ctx context.Context, c model.Credential) error
	DeleteUser(ctx context.Context, realm, name string) error
	Users(ctx context.Context, realm string) ([]model.Credential, error)

	UpsertOrigin(ctx context.Context, o model.OriginRealm) error
	DeleteOrigin(ctx context.Context, origin string) error
	Origins(ctx context.Context, realm string) ([]model.OriginRealm, error)

	UpsertRealmOption(ctx context.Context, o model.RealmOption) error
	RealmOptions(ctx context.Context, realm string) ([]model.RealmOption, error)

	IPRanges(ctx context.Context, kind model.IPKind, realm string) ([]model.IPRange, error)
	UpsertIPRange(ctx context.Context, r model.IPRange) error
	DeleteIPRange(ctx context.Context, r model.IPRange) error

	OAuthKey(ctx context.Context, kid string) (*model.OAuthKey, error)
	OAuthKeys(ctx context.Context) ([]model.OAuthKey, error)
	UpsertOAuthKey(ctx context.Context, k model.OAuthKey) error
	DeleteOAuthKey(ctx context.Context, kid string) error

	AdminUser(ctx context.Context, name string) (*model.AdminUser, error)
	AdminUsers(ctx context.Context) ([]model.AdminUser, error)
	UpsertAdminUser(ctx context.Context, a model.AdminUser) error
	DeleteAdminUser(ctx context.Context, name string) error
}
