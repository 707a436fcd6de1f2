package gorm

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

var (
	_ store.Backend = (*Backend)(nil)
	_ store.Conn    = (*Conn)(nil)
)

// Backend opens GORM handles for one relational engine.
type Backend struct {
	kind  store.Kind
	debug bool
}

// NewBackend returns a backend for kind, which must be KindPostgresql or
// KindMysql. With debug set every statement is logged.
func NewBackend(kind store.Kind, debug bool) (*Backend, error) {
	switch kind {
	case store.KindPostgresql, store.KindMysql:
		return &Backend{kind: kind, debug: debug}, nil
	default:
		return nil, fmt.Errorf("gorm backend does not support %s", kind)
	}
}

func (b *Backend) Kind() store.Kind {
	return b.kind
}

func (b *Backend) dialector(location string) gorm.Dialector {
	if b.kind == store.KindMysql {
		return mysql.Open(location)
	}
	return postgres.New(postgres.Config{
		DriverName:           "postgres",
		DSN:                  location,
		PreferSimpleProtocol: true,
	})
}

// Open connects to location with a single pooled connection.
func (b *Backend) Open(ctx context.Context, location string) (store.Conn, error) {
	db, err := gorm.Open(b.dialector(location), Config(b.debug))
	if err != nil {
		return nil, describe(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, describe(err)
	}
	return &Conn{db: db}, nil
}

// Config returns the GORM settings shared by every handle. Statements are
// logged through the process logger at debug level only.
func Config(debug bool) *gorm.Config {
	logMode := logger.Silent
	if debug {
		logMode = logger.Info
	}
	return &gorm.Config{
		SkipDefaultTransaction: true,
		Logger: logger.New(stdlog.New(log.Logger, "", 0), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logMode,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// describe adds the SQLSTATE condition name to PostgreSQL errors.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (SQLSTATE %s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return err
}

// Conn is one GORM handle.
type Conn struct {
	db *gorm.DB
}

// NewConn wraps an open GORM database.
func NewConn(db *gorm.DB) *Conn {
	return &Conn{db: db}
}

func (c *Conn) tx(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

var tables = []interface{}{
	&model.Credential{},
	&model.Secret{},
	&model.OriginRealm{},
	&model.RealmOption{},
	&model.OAuthKey{},
	&model.AdminUser{},
}

func (c *Conn) InitSchema(ctx context.Context) error {
	for _, t := range tables {
		m := c.tx(ctx).Migrator()
		if m.HasTable(t) {
			continue
		}
		if err := m.CreateTable(t); err != nil {
			return describe(err)
		}
	}
	for _, kind := range model.IPKindValues() {
		m := c.tx(ctx).Table(kind.Table()).Migrator()
		if m.HasTable(&model.IPRange{}) {
			continue
		}
		if err := m.CreateTable(&model.IPRange{}); err != nil {
			return describe(err)
		}
	}
	return nil
}

func (c *Conn) Ping(ctx context.Context) error {
	return describe(c.tx(ctx).Exec("SELECT 1").Error)
}

func (c *Conn) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ordered applies the realm filter and listing order for a table keyed by
// column key.
func ordered(tx *gorm.DB, realm, key string) *gorm.DB {
	if realm != "" {
		return tx.Where("realm = ?", realm).Order(key)
	}
	return tx.Order("realm").Order(key)
}
