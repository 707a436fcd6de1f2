package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "Manage the TURN relay user database",
	Long: `Manage the TURN relay user database and run the relay status server.

The user database holds long-term credentials, shared secrets, origin to
realm mappings, realm options, peer IP ranges, OAuth keys and admin users.
It can be stored in sqlite, PostgreSQL, MySQL or Redis.

Settings are read from the config file (RELAYDB_CONFIG_PATH/relaydb.yml),
then from RELAYDB_* environment variables, then from the flags below.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default $RELAYDB_CONFIG_PATH/relaydb.yml)")
	rootCmd.PersistentFlags().StringP("userdb-type", "t", "", "user database type: sqlite, postgresql, mysql or redis")
	rootCmd.PersistentFlags().StringP("userdb", "b", "", "sqlite path or database connection string")
	rootCmd.PersistentFlags().String("hash-algorithm", "", "credential hash: sha1, sha256, sha384 or sha512")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}
