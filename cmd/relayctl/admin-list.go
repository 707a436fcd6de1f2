package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// adminListCmd represents the admin list command
var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin users",
	Long: `List admin users ordered by realm, then name.

Example:
  relayctl admin list`,
	Run: func(cmd *cobra.Command, args []string) {
		d, _ := mustOpenDriver(cmd)
		err := printListing("Admin users", func(sink store.Sink[model.AdminUser]) (int, error) {
			return d.ListAdminUsers(cmd.Context(), sink)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list admin users: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	adminCmd.AddCommand(adminListCmd)
}
