package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Long: `List the users of one realm, or of every realm.

Example:
  relayctl user list
  relayctl user list --realm north.gov`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")

		d, _ := mustOpenDriver(cmd)
		err := printListing("Users", func(sink store.Sink[model.Credential]) (int, error) {
			return d.ListUsers(cmd.Context(), realmName, sink)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userListCmd.Flags().StringP("realm", "r", "", "only list users of this realm")
}
