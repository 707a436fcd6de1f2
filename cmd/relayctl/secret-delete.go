package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// secretDeleteCmd represents the secret delete command
var secretDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete shared secrets",
	Long: `Delete one shared secret of a realm, or all of them when --secret is
not given.

Example:
  relayctl secret delete --realm north.gov --secret logen
  relayctl secret delete --realm north.gov`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")
		secret, _ := cmd.Flags().GetString("secret")

		d, _ := mustOpenDriver(cmd)
		if err := d.DeleteSecret(cmd.Context(), realmName, secret); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete secret: %v\n", err)
			os.Exit(1)
		}
		if secret == "" {
			success("All secrets of realm %s deleted", realmName)
			return
		}
		success("Secret deleted from realm %s", realmName)
	},
}

func init() {
	secretCmd.AddCommand(secretDeleteCmd)
	secretDeleteCmd.Flags().StringP("realm", "r", "", "realm of the secret")
	secretDeleteCmd.Flags().StringP("secret", "s", "", "secret to delete (default all)")
	_ = secretDeleteCmd.MarkFlagRequired("realm")
}
