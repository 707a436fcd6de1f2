package reload

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/doodlesbykumbi/relaydb/pkg/log"
)

// WatchFile calls notify each time path is written, created or renamed
// into place, until ctx is done. The parent directory is watched so that
// files replaced by editors or config management are still seen.
func WatchFile(ctx context.Context, path string, notify func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	name := filepath.Clean(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				log.Debug().Str("file", name).Stringer("op", event.Op).Msg("config file changed")
				notify()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		case <-ctx.Done():
			return nil
		}
	}
}

// NotifyOnSignal calls r.Notify each time one of sigs arrives, until ctx is
// done.
func NotifyOnSignal(ctx context.Context, r *Reloader, sigs ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	defer signal.Stop(ch)

	for {
		select {
		case sig := <-ch:
			r.Notify(sig.String())
		case <-ctx.Done():
			return
		}
	}
}
