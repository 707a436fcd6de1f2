package db

import (
	"fmt"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
	"github.com/doodlesbykumbi/relaydb/pkg/store/gorm"
	"github.com/doodlesbykumbi/relaydb/pkg/store/redis"
	"github.com/doodlesbykumbi/relaydb/pkg/store/sqlite"
)

// Config holds the user database settings.
type Config struct {
	Kind     store.Kind
	Location string
	// Hash fixes the size of stored credential keys.
	Hash model.HashAlgorithm
	// Debug logs every SQL statement.
	Debug bool
}

// BackendFor returns the backend implementing kind.
func BackendFor(kind store.Kind, debug bool) (store.Backend, error) {
	switch kind {
	case store.KindSqlite:
		return sqlite.NewBackend(), nil
	case store.KindPostgresql, store.KindMysql:
		return gorm.NewBackend(kind, debug)
	case store.KindRedis:
		return redis.NewBackend(), nil
	default:
		return nil, fmt.Errorf("unsupported user database type %q", kind)
	}
}

// Open returns a driver for cfg. No connection is made until the first
// operation.
func Open(cfg Config) (*Driver, error) {
	backend, err := BackendFor(cfg.Kind, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return NewDriver(NewManager(backend, cfg.Location), cfg.Hash), nil
}
