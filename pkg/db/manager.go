package db

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/doodlesbykumbi/relaydb/pkg/gate"
	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// Manager opens backend handles for workers. Schema creation runs on the
// first handle opened and is retried on the next open if it failed; the
// handle it failed on is closed and not handed out.
//
// When an open fails the manager is downgraded: Kind reports KindUnknown
// and every later Handle returns store.ErrUnavailable without retrying.
type Manager struct {
	backend  store.Backend
	location string
	gate     *gate.Gate

	failed atomic.Bool
	quiet  atomic.Bool

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewManager(backend store.Backend, location string) *Manager {
	return &Manager{
		backend:  backend,
		location: location,
		gate:     gate.New(),
	}
}

// Kind returns the backend kind, or KindUnknown after a failed open.
func (m *Manager) Kind() store.Kind {
	if m.failed.Load() {
		return store.KindUnknown
	}
	return m.backend.Kind()
}

// Gate returns the gate statements run under.
func (m *Manager) Gate() *gate.Gate {
	return m.gate
}

// SuppressSuccessLog stops the next successful open from being logged.
func (m *Manager) SuppressSuccessLog() {
	m.quiet.Store(true)
}

// Handle returns w's handle, opening one if w has none.
func (m *Manager) Handle(ctx context.Context, w *Worker) (store.Conn, error) {
	if w.conn != nil {
		return w.conn, nil
	}
	if m.failed.Load() {
		return nil, store.ErrUnavailable
	}

	location := ExpandLocation(m.location)
	conn, err := m.backend.Open(ctx, location)
	if err != nil {
		m.failed.Store(true)
		log.Error().
			Err(err).
			Stringer("kind", m.backend.Kind()).
			Str("location", SanitizeLocation(location)).
			Msg("cannot open user database")
		return nil, fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}

	if err := m.initSchema(ctx, w, conn); err != nil {
		_ = conn.Close()
		log.Error().Err(err).Stringer("kind", m.backend.Kind()).Msg("cannot create user database tables")
		return nil, fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}

	if m.quiet.CompareAndSwap(false, true) {
		log.Info().
			Stringer("kind", m.backend.Kind()).
			Str("location", SanitizeLocation(location)).
			Msg("user database opened")
	}

	w.conn = conn
	return conn, nil
}

func (m *Manager) initSchema(ctx context.Context, w *Worker, conn store.Conn) error {
	m.schemaMu.Lock()
	defer m.schemaMu.Unlock()
	if m.schemaReady {
		return nil
	}

	m.gate.WLock(w.owner)
	defer m.gate.WUnlock(w.owner)
	if err := conn.InitSchema(ctx); err != nil {
		return err
	}
	m.schemaReady = true
	return nil
}

// Release closes and forgets w's handle.
func (m *Manager) Release(w *Worker) error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}
