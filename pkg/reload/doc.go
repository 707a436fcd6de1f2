// Package reload keeps the live realm table in step with the user
// database.
//
// A Reloader runs every reload on its own goroutine with one database
// worker, so reloads never overlap. Reloads are requested with Trigger
// (wait for the result) or Notify (fire and forget, coalesced while one is
// pending). WatchFile turns config file changes into notifications.
//
//	r := reload.New(drv, table, reload.WithInterval(time.Minute))
//	go r.Run(ctx)
//	go reload.WatchFile(ctx, config.FilePath(), func() { r.Notify("config changed") })
package reload
