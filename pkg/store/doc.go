// Package store defines the user database contract of the relay server.
//
// The server and the admin tooling depend only on Driver. A Driver is built
// by pkg/db around one Backend; each backend package (sqlite, gorm, redis)
// implements Backend and Conn and knows nothing about locking or workers.
//
// # Results
//
// Operations return nil on success. Single-record getters return ErrNotFound
// when no row matches; that is an empty result, not a failure. Backend
// failures wrap ErrBackend and ErrUnavailable is returned once the
// configured backend could not be opened.
//
//	key, err := drv.GetUserKey(ctx, "north.gov", "gorst")
//	switch {
//	case errors.Is(err, store.ErrNotFound):
//	    // unknown user
//	case err != nil:
//	    // fail closed
//	}
//
// # Listings
//
// List operations feed a Sink. Collect gathers records for the caller and
// Print writes one line per record for the admin tool:
//
//	users := store.Collect[model.Credential]()
//	n, err := drv.ListUsers(ctx, "north.gov", users)
//
//	_, err = drv.ListUsers(ctx, "", store.Print[model.Credential](os.Stdout))
package store
