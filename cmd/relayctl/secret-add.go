package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// secretAddCmd represents the secret add command
var secretAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a shared secret to a realm",
	Long: `Add a shared secret used to check time-limited credentials. A realm may
have several secrets; adding one that exists is not an error.

Example:
  relayctl secret add --realm north.gov --secret logen`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")
		secret, _ := cmd.Flags().GetString("secret")

		d, _ := mustOpenDriver(cmd)
		if err := d.SetSecret(cmd.Context(), realmName, secret); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add secret: %v\n", err)
			os.Exit(1)
		}
		success("Secret added to realm %s", realmName)
	},
}

func init() {
	secretCmd.AddCommand(secretAddCmd)
	secretAddCmd.Flags().StringP("realm", "r", "", "realm of the secret")
	secretAddCmd.Flags().StringP("secret", "s", "", "shared secret value")
	_ = secretAddCmd.MarkFlagRequired("realm")
	_ = secretAddCmd.MarkFlagRequired("secret")
}
