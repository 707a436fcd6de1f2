// Package db connects the relay server to its user database.
//
// A Driver is the gated implementation of store.Driver. It owns a Manager,
// which opens backend handles on demand, and the Gate every statement runs
// under.
//
// # Workers
//
// Each goroutine that talks to the database repeatedly (a relay worker, the
// reload loop) creates one Worker and carries it in its context:
//
//	w := db.NewWorker()
//	ctx = db.WithWorker(ctx, w)
//	defer drv.Disconnect(ctx)
//
// The worker caches one backend handle and its gate owner token. Calls
// whose context has no worker run on a temporary one whose handle is closed
// before the call returns.
//
// # Configuration
//
//	drv, err := db.Open(db.Config{
//	    Kind:     store.KindSqlite,
//	    Location: "~/.relaydb/turndb",
//	    Hash:     model.HashSHA1,
//	})
//
// A leading "~" in the location is expanded. Locations are logged with
// their passwords masked.
package db
