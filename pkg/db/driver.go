package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/doodlesbykumbi/relaydb/pkg/gate"
	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

var _ store.Driver = (*Driver)(nil)

// Driver runs every store operation on the calling worker's handle under
// the manager's gate. Errors from the backend are logged and returned
// wrapped in store.ErrBackend; store.ErrNotFound is passed through as is.
type Driver struct {
	manager *Manager
	hash    model.HashAlgorithm
}

func NewDriver(manager *Manager, hash model.HashAlgorithm) *Driver {
	return &Driver{manager: manager, hash: hash}
}

func (d *Driver) Kind() store.Kind {
	return d.manager.Kind()
}

// Manager returns the connection manager behind d.
func (d *Driver) Manager() *Manager {
	return d.manager
}

// SuppressSuccessLog keeps the first successful open out of the log. Admin
// tools call it before their first operation.
func (d *Driver) SuppressSuccessLog() {
	d.manager.SuppressSuccessLog()
}

// worker returns the worker carried by ctx, or a temporary one and the
// func that releases it.
func (d *Driver) worker(ctx context.Context) (*Worker, func()) {
	if w, ok := WorkerFrom(ctx); ok {
		return w, func() {}
	}
	w := NewWorker()
	return w, func() { _ = d.manager.Release(w) }
}

func (d *Driver) do(ctx context.Context, op string, mode gate.Mode, quiet bool, fn func(store.Conn) error) error {
	w, done := d.worker(ctx)
	defer done()
	return d.run(ctx, w, op, mode, quiet, fn)
}

// run executes fn on w's handle holding the gate in mode. quiet marks
// operations that must not log the first successful open.
func (d *Driver) run(ctx context.Context, w *Worker, op string, mode gate.Mode, quiet bool, fn func(store.Conn) error) error {
	if quiet {
		d.manager.SuppressSuccessLog()
	}
	conn, err := d.manager.Handle(ctx, w)
	if err != nil {
		return err
	}

	err = func() error {
		d.manager.gate.Lock(w.owner, mode)
		defer d.manager.gate.Unlock(w.owner, mode)
		return fn(conn)
	}()
	if err == nil || errors.Is(err, store.ErrNotFound) {
		return err
	}

	log.Error().
		Err(err).
		Str("op", op).
		Stringer("kind", d.manager.Kind()).
		Msg("user database operation failed")
	return fmt.Errorf("%w: %s: %w", store.ErrBackend, op, err)
}

// list fetches rows under the read gate and feeds them to sink once the
// gate is released. Rows of a filtered listing with no realm report realm.
func list[T any](ctx context.Context, d *Driver, op, realm string, sink store.Sink[T],
	fetch func(store.Conn) ([]T, error), realmOf func(*T) *string) (int, error) {
	var rows []T
	err := d.do(ctx, op, gate.Read, true, func(c store.Conn) error {
		var err error
		rows, err = fetch(c)
		return err
	})
	if err != nil {
		return 0, err
	}

	for i := range rows {
		if realm != "" && realmOf != nil {
			if r := realmOf(&rows[i]); *r == "" {
				*r = realm
			}
		}
		if err := sink.Put(rows[i]); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}

func required(what, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: empty %s", store.ErrInvalidRecord, what)
	}
	return nil
}

func (d *Driver) GetAuthSecrets(ctx context.Context, realm string) ([]string, error) {
	var secrets []string
	err := d.do(ctx, "get auth secrets", gate.Read, false, func(c store.Conn) error {
		var err error
		secrets, err = c.SecretsForRealm(ctx, realm)
		return err
	})
	return secrets, err
}

func (d *Driver) GetUserKey(ctx context.Context, realm, user string) ([]byte, error) {
	var stored string
	err := d.do(ctx, "get user key", gate.Read, false, func(c store.Conn) error {
		var err error
		stored, err = c.UserKey(ctx, realm, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	key, err := model.DecodeKey(stored, d.hash)
	if err != nil {
		log.Warn().Err(err).Str("realm", realm).Str("user", user).Msg("stored user key is unusable")
		return nil, err
	}
	return key, nil
}

func (d *Driver) SetUserKey(ctx context.Context, realm, user string, key []byte) error {
	if err := required("user name", user); err != nil {
		return err
	}
	if len(key) != d.hash.KeySize() {
		return fmt.Errorf("%w: %d bytes, %s needs %d", model.ErrInvalidKey, len(key), d.hash, d.hash.KeySize())
	}
	return d.do(ctx, "set user key", gate.Write, true, func(c store.Conn) error {
		return c.UpsertUser(ctx, model.Credential{Realm: realm, Name: user, HMACKey: model.EncodeKey(key)})
	})
}

func (d *Driver) DeleteUser(ctx context.Context, realm, user string) error {
	return d.do(ctx, "delete user", gate.Write, true, func(c store.Conn) error {
		return c.DeleteUser(ctx, realm, user)
	})
}

func (d *Driver) ListUsers(ctx context.Context, realm string, sink store.Sink[model.Credential]) (int, error) {
	return list(ctx, d, "list users", realm, sink, func(c store.Conn) ([]model.Credential, error) {
		return c.Users(ctx, realm)
	}, func(u *model.Credential) *string { return &u.Realm })
}

func (d *Driver) ListSecrets(ctx context.Context, realm string, sink store.Sink[model.Secret]) (int, error) {
	return list(ctx, d, "list secrets", realm, sink, func(c store.Conn) ([]model.Secret, error) {
		return c.Secrets(ctx, realm)
	}, func(s *model.Secret) *string { return &s.Realm })
}

func (d *Driver) DeleteSecret(ctx context.Context, realm, secret string) error {
	return d.do(ctx, "delete secret", gate.Write, true, func(c store.Conn) error {
		if secret == "" {
			return c.DeleteRealmSecrets(ctx, realm)
		}
		return c.DeleteSecret(ctx, realm, secret)
	})
}

func (d *Driver) SetSecret(ctx context.Context, realm, secret string) error {
	if err := required("secret", secret); err != nil {
		return err
	}
	return d.do(ctx, "set secret", gate.Write, true, func(c store.Conn) error {
		return c.UpsertSecret(ctx, model.Secret{Realm: realm, Value: secret})
	})
}

func (d *Driver) AddOrigin(ctx context.Context, origin, realm string) error {
	if err := required("origin", origin); err != nil {
		return err
	}
	return d.do(ctx, "add origin", gate.Write, true, func(c store.Conn) error {
		return c.UpsertOrigin(ctx, model.OriginRealm{Origin: origin, Realm: realm})
	})
}

func (d *Driver) DeleteOrigin(ctx context.Context, origin string) error {
	return d.do(ctx, "delete origin", gate.Write, true, func(c store.Conn) error {
		return c.DeleteOrigin(ctx, origin)
	})
}

func (d *Driver) ListOrigins(ctx context.Context, realm string, sink store.Sink[model.OriginRealm]) (int, error) {
	return list(ctx, d, "list origins", realm, sink, func(c store.Conn) ([]model.OriginRealm, error) {
		return c.Origins(ctx, realm)
	}, func(o *model.OriginRealm) *string { return &o.Realm })
}

func (d *Driver) SetRealmOption(ctx context.Context, realm string, opt model.RealmOptionName, value int64) error {
	if !opt.IsARealmOptionName() {
		return fmt.Errorf("%w: unknown realm option %d", store.ErrInvalidRecord, int(opt))
	}
	if value <= 0 {
		return fmt.Errorf("%w: %s=%d", store.ErrInvalidValue, opt, value)
	}
	return d.do(ctx, "set realm option", gate.Write, true, func(c store.Conn) error {
		return c.UpsertRealmOption(ctx, model.RealmOption{
			Realm: realm,
			Opt:   opt.String(),
			Value: strconv.FormatInt(value, 10),
		})
	})
}

func (d *Driver) ListRealmOptions(ctx context.Context, realm string, sink store.Sink[model.RealmOption]) (int, error) {
	return list(ctx, d, "list realm options", realm, sink, func(c store.Conn) ([]model.RealmOption, error) {
		return c.RealmOptions(ctx, realm)
	}, func(o *model.RealmOption) *string { return &o.Realm })
}

func (d *Driver) Ping(ctx context.Context) error {
	return d.do(ctx, "ping", gate.Read, false, func(c store.Conn) error {
		return c.Ping(ctx)
	})
}

func (d *Driver) ListIPRanges(ctx context.Context, kind model.IPKind, realm string, sink store.Sink[model.IPRange]) (int, error) {
	if !kind.IsAIPKind() {
		return 0, fmt.Errorf("%w: unknown ip list %d", store.ErrInvalidRecord, int(kind))
	}
	return list(ctx, d, "list "+kind.Table(), realm, sink, func(c store.Conn) ([]model.IPRange, error) {
		return c.IPRanges(ctx, kind, realm)
	}, func(r *model.IPRange) *string { return &r.Realm })
}

func (d *Driver) SetIPRange(ctx context.Context, kind model.IPKind, realm, ipRange string) error {
	if !kind.IsAIPKind() {
		return fmt.Errorf("%w: unknown ip list %d", store.ErrInvalidRecord, int(kind))
	}
	if err := model.ValidateIPRange(ipRange); err != nil {
		return err
	}
	return d.do(ctx, "set "+kind.Table(), gate.Write, true, func(c store.Conn) error {
		return c.UpsertIPRange(ctx, model.IPRange{Kind: kind, Realm: realm, Range: strings.TrimSpace(ipRange)})
	})
}

func (d *Driver) DeleteIPRange(ctx context.Context, kind model.IPKind, realm, ipRange string) error {
	if !kind.IsAIPKind() {
		return fmt.Errorf("%w: unknown ip list %d", store.ErrInvalidRecord, int(kind))
	}
	return d.do(ctx, "delete "+kind.Table(), gate.Write, true, func(c store.Conn) error {
		return c.DeleteIPRange(ctx, model.IPRange{Kind: kind, Realm: realm, Range: strings.TrimSpace(ipRange)})
	})
}

func (d *Driver) SetOAuthKey(ctx context.Context, key model.OAuthKey) error {
	if err := required("kid", key.KID); err != nil {
		return err
	}
	return d.do(ctx, "set oauth key", gate.Write, true, func(c store.Conn) error {
		return c.UpsertOAuthKey(ctx, key)
	})
}

func (d *Driver) GetOAuthKey(ctx context.Context, kid string) (*model.OAuthKey, error) {
	var key *model.OAuthKey
	err := d.do(ctx, "get oauth key", gate.Read, false, func(c store.Conn) error {
		var err error
		key, err = c.OAuthKey(ctx, kid)
		return err
	})
	return key, err
}

func (d *Driver) DeleteOAuthKey(ctx context.Context, kid string) error {
	return d.do(ctx, "delete oauth key", gate.Write, true, func(c store.Conn) error {
		return c.DeleteOAuthKey(ctx, kid)
	})
}

func (d *Driver) ListOAuthKeys(ctx context.Context, sink store.Sink[model.OAuthKey]) (int, error) {
	return list(ctx, d, "list oauth keys", "", sink, func(c store.Conn) ([]model.OAuthKey, error) {
		return c.OAuthKeys(ctx)
	}, nil)
}

func (d *Driver) GetAdminUser(ctx context.Context, name string) (*model.AdminUser, error) {
	var admin *model.AdminUser
	err := d.do(ctx, "get admin user", gate.Read, false, func(c store.Conn) error {
		var err error
		admin, err = c.AdminUser(ctx, name)
		return err
	})
	return admin, err
}

func (d *Driver) SetAdminUser(ctx context.Context, user model.AdminUser) error {
	if err := required("admin name", user.Name); err != nil {
		return err
	}
	return d.do(ctx, "set admin user", gate.Write, true, func(c store.Conn) error {
		return c.UpsertAdminUser(ctx, user)
	})
}

func (d *Driver) DeleteAdminUser(ctx context.Context, name string) error {
	return d.do(ctx, "delete admin user", gate.Write, true, func(c store.Conn) error {
		return c.DeleteAdminUser(ctx, name)
	})
}

func (d *Driver) ListAdminUsers(ctx context.Context, sink store.Sink[model.AdminUser]) (int, error) {
	return list(ctx, d, "list admin users", "", sink, func(c store.Conn) ([]model.AdminUser, error) {
		return c.AdminUsers(ctx)
	}, nil)
}

// Disconnect closes the handle of the worker carried by ctx.
func (d *Driver) Disconnect(ctx context.Context) error {
	w, ok := WorkerFrom(ctx)
	if !ok || !w.Connected() {
		return nil
	}
	err := d.manager.Release(w)
	log.Info().Stringer("kind", d.manager.Kind()).Msg("connection was closed")
	return err
}
