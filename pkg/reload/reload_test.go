package reload

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

func newDriver(t *testing.T) *db.Driver {
	t.Helper()
	d, err := db.Open(db.Config{
		Kind:     store.KindSqlite,
		Location: filepath.Join(t.TempDir(), "turndb"),
		Hash:     model.HashSHA1,
	})
	require.NoError(t, err)
	return d
}

func startReloader(t *testing.T, r *Reloader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestReloader_Trigger(t *testing.T) {
	ctx := context.Background()
	d := newDriver(t)
	table := realm.NewTable(realm.Options{MaxBPS: 100})
	r := New(d, table)
	startReloader(t, r)

	require.NoError(t, d.AddOrigin(ctx, "https://a.example", "north.gov"))
	require.NoError(t, d.SetRealmOption(ctx, "north.gov", model.OptionUserQuota, 4))
	require.NoError(t, r.Trigger(ctx, "test"))

	got, ok := table.RealmForOrigin("https://a.example")
	require.True(t, ok)
	assert.Equal(t, "north.gov", got)

	north, ok := table.Lookup("north.gov")
	require.True(t, ok)
	assert.Equal(t, realm.Options{MaxBPS: 100, UserQuota: 4}, north.Options())

	status := r.Status()
	assert.GreaterOrEqual(t, status.Count, 2, "startup reload plus the triggered one")
	assert.Equal(t, "test", status.LastReason)
	assert.Empty(t, status.LastError)
}

func TestReloader_ConfigureUpdatesDefaults(t *testing.T) {
	ctx := context.Background()
	d := newDriver(t)
	table := realm.NewTable(realm.Options{})

	var calls atomic.Int32
	r := New(d, table, WithConfigure(func(context.Context) (realm.Options, error) {
		if calls.Add(1) > 1 {
			return realm.Options{}, errors.New("config unreadable")
		}
		return realm.Options{TotalQuota: 50}, nil
	}))
	startReloader(t, r)

	require.NoError(t, d.AddOrigin(ctx, "https://a.example", "north.gov"))
	require.NoError(t, r.Trigger(ctx, "first"))
	assert.Equal(t, realm.Options{TotalQuota: 50}, table.Defaults())

	require.NoError(t, r.Trigger(ctx, "second"))
	assert.Equal(t, realm.Options{TotalQuota: 50}, table.Defaults(), "failed configure keeps the defaults")

	north, ok := table.Lookup("north.gov")
	require.True(t, ok)
	assert.Equal(t, 50, north.Options().TotalQuota)
}

func TestReloader_TriggerFailure(t *testing.T) {
	d, err := db.Open(db.Config{Kind: store.KindSqlite, Location: "/dev/null/turndb", Hash: model.HashSHA1})
	require.NoError(t, err)
	r := New(d, realm.NewTable(realm.Options{}))
	startReloader(t, r)

	err = r.Trigger(context.Background(), "test")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.NotEmpty(t, r.Status().LastError)
}

func TestReloader_TriggerHonoursContext(t *testing.T) {
	r := New(newDriver(t), realm.NewTable(realm.Options{}))
	// Not running: the first request fills the buffer, the second blocks.
	r.Notify("pending")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Trigger(ctx, "test"), context.DeadlineExceeded)
}

func TestReloader_NotifyCoalesces(t *testing.T) {
	r := New(newDriver(t), realm.NewTable(realm.Options{}))
	r.Notify("one")
	r.Notify("two")
	assert.Len(t, r.requests, 1)
}

func TestReloader_Interval(t *testing.T) {
	r := New(newDriver(t), realm.NewTable(realm.Options{}), WithInterval(10*time.Millisecond))
	startReloader(t, r)

	assert.Eventually(t, func() bool {
		return r.Status().LastReason == "interval"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relaydb.yml")
	require.NoError(t, os.WriteFile(path, []byte("max_bps: 1\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var notified atomic.Int32
	ready := make(chan error, 1)
	go func() {
		ready <- WatchFile(ctx, path, func() { notified.Add(1) })
	}()

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "other.yml"), []byte("x"), 0o600)
		_ = os.WriteFile(path, []byte("max_bps: 2\n"), 0o600)
		return notified.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-ready:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := WatchFile(context.Background(), filepath.Join(t.TempDir(), "nope", "relaydb.yml"), func() {})
	assert.Error(t, err)
}

func TestNotifyOnSignal(t *testing.T) {
	r := New(newDriver(t), realm.NewTable(realm.Options{}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep SIGUSR1 from terminating the test binary before the handler
	// below is installed.
	guard := make(chan os.Signal, 1)
	signal.Notify(guard, syscall.SIGUSR1)
	defer signal.Stop(guard)

	go NotifyOnSignal(ctx, r, syscall.SIGUSR1)

	assert.Eventually(t, func() bool {
		_ = syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)
		return len(r.requests) == 1
	}, 2*time.Second, 20*time.Millisecond)
}
