package db

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
	"github.com/doodlesbykumbi/relaydb/pkg/store/sqlite"
)

// countingBackend wraps the sqlite backend and counts handle lifecycle
// events.
type countingBackend struct {
	store.Backend
	opens   atomic.Int32
	schemas atomic.Int32
	closes  atomic.Int32

	failOrigins bool
	failPing    bool
	// failSchema is the number of InitSchema calls left to fail.
	failSchema atomic.Int32
}

func newCountingBackend() *countingBackend {
	return &countingBackend{Backend: sqlite.NewBackend()}
}

func (b *countingBackend) Open(ctx context.Context, location string) (store.Conn, error) {
	b.opens.Add(1)
	conn, err := b.Backend.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	return &countingConn{Conn: conn, b: b}, nil
}

type countingConn struct {
	store.Conn
	b *countingBackend
}

func (c *countingConn) InitSchema(ctx context.Context) error {
	c.b.schemas.Add(1)
	if c.b.failSchema.Load() > 0 {
		c.b.failSchema.Add(-1)
		return errors.New("disk I/O error")
	}
	return c.Conn.InitSchema(ctx)
}

func (c *countingConn) Close() error {
	c.b.closes.Add(1)
	return c.Conn.Close()
}

func (c *countingConn) Origins(ctx context.Context, realm string) ([]model.OriginRealm, error) {
	if c.b.failOrigins {
		return nil, errors.New("no such table: turn_origin_to_realm")
	}
	return c.Conn.Origins(ctx, realm)
}

func (c *countingConn) Ping(ctx context.Context) error {
	if c.b.failPing {
		return errors.New("database is locked")
	}
	return c.Conn.Ping(ctx)
}

func testLocation(t *testing.T) string {
	return filepath.Join(t.TempDir(), "turndb")
}

func newTestDriver(t *testing.T) (*Driver, *countingBackend) {
	t.Helper()
	backend := newCountingBackend()
	return NewDriver(NewManager(backend, testLocation(t)), model.HashSHA256), backend
}

// captureLog sends log output to a buffer for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}
