package db

import (
	"context"

	"github.com/doodlesbykumbi/relaydb/pkg/gate"
	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// ReloadRealms republishes the stored origins into table, puts every live
// realm back on the defaults and applies the stored realm options.
//
// If origins cannot be read the table is left untouched. Options with an
// unknown name or an unparsable value are logged and skipped.
func (d *Driver) ReloadRealms(ctx context.Context, table *realm.Table) error {
	w, done := d.worker(ctx)
	defer done()

	var origins []model.OriginRealm
	err := d.run(ctx, w, "reload origins", gate.Read, true, func(c store.Conn) error {
		var err error
		origins, err = c.Origins(ctx, "")
		return err
	})
	if err != nil {
		return err
	}

	published := make(map[string]string, len(origins))
	for _, o := range origins {
		table.Get(o.Realm)
		published[o.Origin] = o.Realm
	}
	table.PublishOrigins(published)

	table.ResetToDefaults()

	var opts []model.RealmOption
	err = d.run(ctx, w, "reload realm options", gate.Read, true, func(c store.Conn) error {
		var err error
		opts, err = c.RealmOptions(ctx, "")
		return err
	})
	if err != nil {
		return err
	}

	for _, o := range opts {
		name, err := o.Name()
		if err != nil {
			log.Warn().Str("realm", o.Realm).Str("option", o.Opt).Msg("unknown realm option")
			continue
		}
		if err := table.Apply(o.Realm, name, o.Value); err != nil {
			log.Warn().Err(err).Msg("invalid realm option value")
		}
	}

	log.Debug().Int("origins", len(published)).Int("options", len(opts)).Msg("realms reloaded")
	return nil
}
