package reload

import (
	"context"
	"sync"
	"time"

	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// Status describes the reloads run so far.
type Status struct {
	Count      int       `json:"count"`
	LastReason string    `json:"last_reason,omitempty"`
	LastAt     time.Time `json:"last_at,omitempty"`
	LastError  string    `json:"last_error,omitempty"`
}

type request struct {
	reason string
	done   chan error
}

// Reloader owns the reload loop of one realm table.
type Reloader struct {
	driver    store.Driver
	table     *realm.Table
	interval  time.Duration
	configure func(context.Context) (realm.Options, error)

	requests chan request

	mu     sync.Mutex
	status Status
}

type Option func(*Reloader)

// WithInterval reloads every d in addition to requested reloads.
func WithInterval(d time.Duration) Option {
	return func(r *Reloader) { r.interval = d }
}

// WithConfigure calls fn before every reload; the options it returns
// become the table defaults. On error the previous defaults are kept.
func WithConfigure(fn func(context.Context) (realm.Options, error)) Option {
	return func(r *Reloader) { r.configure = fn }
}

func New(driver store.Driver, table *realm.Table, opts ...Option) *Reloader {
	r := &Reloader{
		driver:   driver,
		table:    table,
		requests: make(chan request, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the table kept up to date.
func (r *Reloader) Table() *realm.Table {
	return r.table
}

// Status returns a copy of the reload status.
func (r *Reloader) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Run reloads once and then serves requests until ctx is done.
func (r *Reloader) Run(ctx context.Context) error {
	w := db.NewWorker()
	ctx = db.WithWorker(ctx, w)
	defer func() { _ = r.driver.Disconnect(ctx) }()

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	_ = r.reload(ctx, "startup")
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-r.requests:
			err := r.reload(ctx, req.reason)
			if req.done != nil {
				req.done <- err
			}
		case <-tick:
			_ = r.reload(ctx, "interval")
		}
	}
}

// Trigger requests a reload and waits for its result.
func (r *Reloader) Trigger(ctx context.Context, reason string) error {
	done := make(chan error, 1)
	select {
	case r.requests <- request{reason: reason, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notify requests a reload without waiting. It does nothing when a
// request is already pending.
func (r *Reloader) Notify(reason string) {
	select {
	case r.requests <- request{reason: reason}:
	default:
		log.Debug().Str("reason", reason).Msg("reload already pending")
	}
}

func (r *Reloader) reload(ctx context.Context, reason string) error {
	if r.configure != nil {
		defaults, err := r.configure(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("keeping previous realm defaults")
		} else {
			r.table.SetDefaults(defaults)
		}
	}

	err := r.driver.ReloadRealms(ctx, r.table)

	r.mu.Lock()
	r.status.Count++
	r.status.LastReason = reason
	r.status.LastAt = time.Now()
	r.status.LastError = ""
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("reason", reason).Msg("realm reload failed")
		return err
	}
	log.Info().Str("reason", reason).Int("realms", len(r.table.Names())).Msg("realms reloaded")
	return nil
}
