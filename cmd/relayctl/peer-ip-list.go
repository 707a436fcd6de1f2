package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// peerIPListCmd represents the peer-ip list command
var peerIPListCmd = &cobra.Command{
	Use:   "list",
	Short: "List peer IP ranges",
	Long: `List the allowed or denied peer IP ranges of one realm, or of every
realm.

Example:
  relayctl peer-ip list --kind denied`,
	Run: func(cmd *cobra.Command, args []string) {
		kind := ipKindFlag(cmd)
		realmName, _ := cmd.Flags().GetString("realm")

		d, _ := mustOpenDriver(cmd)
		header := fmt.Sprintf("%s peer IP ranges", kind)
		err := printListing(header, func(sink store.Sink[model.IPRange]) (int, error) {
			return d.ListIPRanges(cmd.Context(), kind, realmName, sink)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list peer ranges: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	peerIPCmd.AddCommand(peerIPListCmd)
	peerIPListCmd.Flags().StringP("realm", "r", "", "only list ranges of this realm")
}
