package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// oauthKeyListCmd represents the oauth-key list command
var oauthKeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List OAuth keys",
	Long: `List every OAuth key ordered by key id.

Example:
  relayctl oauth-key list`,
	Run: func(cmd *cobra.Command, args []string) {
		d, _ := mustOpenDriver(cmd)
		err := printListing("OAuth keys", func(sink store.Sink[model.OAuthKey]) (int, error) {
			return d.ListOAuthKeys(cmd.Context(), sink)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list OAuth keys: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	oauthKeyCmd.AddCommand(oauthKeyListCmd)
}
