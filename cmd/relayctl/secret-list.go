package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// secretListCmd represents the secret list command
var secretListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shared secrets",
	Long: `List the shared secrets of one realm, or of every realm.

Example:
  relayctl secret list --realm north.gov`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")

		d, _ := mustOpenDriver(cmd)
		err := printListing("Shared secrets", func(sink store.Sink[model.Secret]) (int, error) {
			return d.ListSecrets(cmd.Context(), realmName, sink)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list secrets: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	secretCmd.AddCommand(secretListCmd)
	secretListCmd.Flags().StringP("realm", "r", "", "only list secrets of this realm")
}
