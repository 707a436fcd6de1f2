package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// adminDeleteCmd represents the admin delete command
var adminDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an admin user",
	Long: `Delete an admin user.

Example:
  relayctl admin delete --user glokta`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("user")

		d, _ := mustOpenDriver(cmd)
		if err := d.DeleteAdminUser(cmd.Context(), name); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete admin user %s: %v\n", name, err)
			os.Exit(1)
		}
		success("Admin user %s deleted", name)
	},
}

func init() {
	adminCmd.AddCommand(adminDeleteCmd)
	adminDeleteCmd.Flags().StringP("user", "u", "", "admin user name")
	_ = adminDeleteCmd.MarkFlagRequired("user")
}
