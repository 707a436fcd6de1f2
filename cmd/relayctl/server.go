package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/reload"
	"github.com/doodlesbykumbi/relaydb/pkg/server"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the relay realm reloader and status server",
	Long: `Run the relay realm reloader and status server.

Realms are loaded from the user database on start and reloaded when the
config file changes, on SIGHUP, on POST /reload and, when set, every
--reload-interval. The config file is re-read on every reload and its
max_bps, total_quota and user_quota become the realm defaults.

Example:
  relayctl server
  relayctl server --status-address 0.0.0.0:5766 --reload-interval 5m`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServer(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().String("status-address", "", "status server listen address (default status_address)")
	serverCmd.Flags().Duration("reload-interval", 0, "reload realms periodically (0 disables)")
	serverCmd.Flags().Bool("no-watch", false, "do not reload when the config file changes")
}

func runServer(cmd *cobra.Command) error {
	d, cfg, err := openDriver(cmd)
	if err != nil {
		return err
	}
	if address, _ := cmd.Flags().GetString("status-address"); address != "" {
		if err := cfg.Override("status_address", address); err != nil {
			return err
		}
	}
	interval, _ := cmd.Flags().GetDuration("reload-interval")
	noWatch, _ := cmd.Flags().GetBool("no-watch")

	table := realm.NewTable(cfg.Defaults())
	reloader := reload.New(d, table,
		reload.WithInterval(interval),
		reload.WithConfigure(func(context.Context) (realm.Options, error) {
			c, err := loadConfig(cmd)
			if err != nil {
				return realm.Options{}, err
			}
			return c.Defaults(), nil
		}),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = reloader.Run(ctx)
	}()
	go reload.NotifyOnSignal(ctx, reloader, syscall.SIGHUP)

	if !noWatch {
		go func() {
			path := cfg.ConfigFilePath()
			if err := reload.WatchFile(ctx, path, func() { reloader.Notify("config file changed") }); err != nil {
				log.Warn().Err(err).Str("file", path).Msg("not watching config file")
			}
		}()
	}

	log.Info().
		Stringer("kind", d.Kind()).
		Dur("reload_interval", interval).
		Msg("relay realm reloader started")

	srv := server.NewServer(d, reloader, cfg.StatusAddress, os.Stdout)
	err = srv.Start(ctx)
	stop()
	<-done
	return err
}
