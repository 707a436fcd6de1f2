package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// userDeleteCmd represents the user delete command
var userDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a long-term credential",
	Long: `Delete a user from a realm. Deleting a user that does not exist is not
an error.

Example:
  relayctl user delete --realm north.gov --user ninefingers`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")
		user, _ := cmd.Flags().GetString("user")

		d, _ := mustOpenDriver(cmd)
		if err := d.DeleteUser(cmd.Context(), realmName, user); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete user %s: %v\n", user, err)
			os.Exit(1)
		}
		success("User %s deleted from realm %s", user, realmName)
	},
}

func init() {
	userCmd.AddCommand(userDeleteCmd)
	userDeleteCmd.Flags().StringP("realm", "r", "", "realm of the user")
	userDeleteCmd.Flags().StringP("user", "u", "", "user name")
	_ = userDeleteCmd.MarkFlagRequired("realm")
	_ = userDeleteCmd.MarkFlagRequired("user")
}
