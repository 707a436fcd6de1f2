package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

var (
	_ store.Backend = (*Backend)(nil)
	_ store.Conn    = (*Conn)(nil)
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS turnusers_lt (realm varchar(127) default '', name varchar(512), hmackey char(128), PRIMARY KEY (realm, name))`,
	`CREATE TABLE IF NOT EXISTS turn_secret (realm varchar(127) default '', value varchar(127), PRIMARY KEY (realm, value))`,
	`CREATE TABLE IF NOT EXISTS allowed_peer_ip (realm varchar(127) default '', ip_range varchar(256), PRIMARY KEY (realm, ip_range))`,
	`CREATE TABLE IF NOT EXISTS denied_peer_ip (realm varchar(127) default '', ip_range varchar(256), PRIMARY KEY (realm, ip_range))`,
	`CREATE TABLE IF NOT EXISTS turn_origin_to_realm (origin varchar(127), realm varchar(127), PRIMARY KEY (origin))`,
	`CREATE TABLE IF NOT EXISTS turn_realm_option (realm varchar(127) default '', opt varchar(32), value varchar(128), PRIMARY KEY (realm, opt))`,
	`CREATE TABLE IF NOT EXISTS oauth_key (kid varchar(128), ikm_key varchar(256), timestamp bigint default 0, lifetime integer default 0, as_rs_alg varchar(64) default '', realm varchar(127) default '', PRIMARY KEY (kid))`,
	`CREATE TABLE IF NOT EXISTS admin_user (name varchar(32), realm varchar(127), password varchar(127), PRIMARY KEY (name))`,
}

// ErrInMemory is returned for in-memory locations. Each worker opens its
// own handle, and private in-memory databases are not shared between them.
var ErrInMemory = errors.New("in-memory sqlite databases are not supported")

// Backend opens SQLite handles.
type Backend struct{}

func NewBackend() *Backend {
	return &Backend{}
}

func (*Backend) Kind() store.Kind {
	return store.KindSqlite
}

// Open opens the database file at path, creating it and its parent
// directory if needed.
func (*Backend) Open(ctx context.Context, path string) (store.Conn, error) {
	if inMemory(path) {
		return nil, fmt.Errorf("%w: %s", ErrInMemory, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA journal_mode = WAL"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("opening database: %w", err)
		}
	}

	return &Conn{db: db}, nil
}

func inMemory(path string) bool {
	return path == "" || path == ":memory:" ||
		strings.HasPrefix(path, "file::memory:") ||
		strings.Contains(path, "mode=memory")
}

// Conn is one SQLite handle.
type Conn struct {
	db *sql.DB
}

// NewConn wraps an open database.
func NewConn(db *sql.DB) *Conn {
	return &Conn{db: db}
}

func (c *Conn) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Conn) Close() error {
	return c.db.Close()
}

func (c *Conn) exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}

func queryRows[T any](ctx context.Context, db *sql.DB, scan func(*sql.Rows, *T) error, query string, args ...interface{}) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// filtered picks the realm-filtered or the full form of a listing query.
func filtered(realm, byRealm, all string) (string, []interface{}) {
	if realm != "" {
		return byRealm, []interface{}{realm}
	}
	return all, nil
}
