package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// realmOptionListCmd represents the realm-option list command
var realmOptionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored realm options",
	Long: `List the options stored for one realm, or for every realm.

Example:
  relayctl realm-option list --realm north.gov`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")

		d, _ := mustOpenDriver(cmd)
		err := printListing("Realm options", func(sink store.Sink[model.RealmOption]) (int, error) {
			return d.ListRealmOptions(cmd.Context(), realmName, sink)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list realm options: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	realmOptionCmd.AddCommand(realmOptionListCmd)
	realmOptionListCmd.Flags().StringP("realm", "r", "", "only list options of this realm")
}
