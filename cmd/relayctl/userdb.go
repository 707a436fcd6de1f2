package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/config"
	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// flagAttributes maps persistent flags to the config attributes they
// override.
var flagAttributes = []struct{ flag, attribute string }{
	{"userdb-type", "userdb_type"},
	{"userdb", "userdb"},
	{"hash-algorithm", "hash_algorithm"},
	{"log-level", "log_level"},
}

// loadConfig loads the configuration and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.RelayConfig, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.RelayConfig
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	for _, fa := range flagAttributes {
		f := cmd.Flags().Lookup(fa.flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := cfg.Override(fa.attribute, f.Value.String()); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDriver returns a driver for the configured user database. The
// "user database opened" line is suppressed for one-shot commands.
func openDriver(cmd *cobra.Command) (*db.Driver, *config.RelayConfig, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbConfig, err := cfg.Database()
	if err != nil {
		return nil, nil, err
	}
	d, err := db.Open(dbConfig)
	if err != nil {
		return nil, nil, err
	}
	d.SuppressSuccessLog()
	return d, cfg, nil
}

func mustOpenDriver(cmd *cobra.Command) (*db.Driver, *config.RelayConfig) {
	d, cfg, err := openDriver(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open user database: %v\n", err)
		os.Exit(1)
	}
	return d, cfg
}

// printListing prints a header, one line per record and the record count.
func printListing[T fmt.Stringer](header string, list func(store.Sink[T]) (int, error)) error {
	cyan := color.New(color.FgCyan, color.Bold)
	_, _ = cyan.Println(header)

	n, err := list(store.Print[T](os.Stdout))
	if err != nil {
		return err
	}
	fmt.Printf("\n%d total\n", n)
	return nil
}

func success(format string, args ...interface{}) {
	green := color.New(color.FgGreen)
	_, _ = green.Printf(format+"\n", args...)
}
