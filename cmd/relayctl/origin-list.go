package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// originListCmd represents the origin list command
var originListCmd = &cobra.Command{
	Use:   "list",
	Short: "List origin mappings",
	Long: `List the origins mapped to one realm, or every mapping.

Example:
  relayctl origin list
  relayctl origin list --realm north.gov`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")

		d, _ := mustOpenDriver(cmd)
		err := printListing("Origins", func(sink store.Sink[model.OriginRealm]) (int, error) {
			return d.ListOrigins(cmd.Context(), realmName, sink)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list origins: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	originCmd.AddCommand(originListCmd)
	originListCmd.Flags().StringP("realm", "r", "", "only list origins of this realm")
}
