package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// oauthKeyDeleteCmd represents the oauth-key delete command
var oauthKeyDeleteCmd = &cobra.Command{
	Use:   "delete <kid>...",
	Short: "Delete OAuth keys",
	Long: `Delete one or more OAuth keys by key id.

Example:
  relayctl oauth-key delete north-1`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, _ := mustOpenDriver(cmd)
		for _, kid := range args {
			if err := d.DeleteOAuthKey(cmd.Context(), kid); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to delete OAuth key %s: %v\n", kid, err)
				os.Exit(1)
			}
			success("OAuth key %s deleted", kid)
		}
	},
}

func init() {
	oauthKeyCmd.AddCommand(oauthKeyDeleteCmd)
}
