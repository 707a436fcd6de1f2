package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// dbPingCmd represents the db ping command
var dbPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the user database answers",
	Long: `Open the configured user database, create missing tables and check
that it answers.

Example:
  relayctl db ping
  relayctl db ping --userdb-type redis --userdb "host=127.0.0.1 port=6379"`,
	Run: func(cmd *cobra.Command, args []string) {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		d, cfg := mustOpenDriver(cmd)

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		if err := ping(ctx, d); err != nil {
			fmt.Fprintf(os.Stderr, "User database %s is not reachable: %v\n", db.SanitizeLocation(cfg.UserDB), err)
			os.Exit(1)
		}
		success("%s user database %s is reachable", d.Kind(), db.SanitizeLocation(cfg.UserDB))
	},
}

func init() {
	dbCmd.AddCommand(dbPingCmd)
	dbPingCmd.Flags().Duration("timeout", 10*time.Second, "how long to wait for an answer")
}

func ping(ctx context.Context, d store.Driver) error {
	defer func() { _ = d.Disconnect(ctx) }()
	return d.Ping(ctx)
}
