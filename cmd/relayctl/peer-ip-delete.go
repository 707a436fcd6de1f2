package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// peerIPDeleteCmd represents the peer-ip delete command
var peerIPDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a peer IP range",
	Long: `Delete a range from the allowed or denied peer IP list of a realm.

Example:
  relayctl peer-ip delete --kind denied --realm north.gov --range 10.0.0.0/8`,
	Run: func(cmd *cobra.Command, args []string) {
		kind := ipKindFlag(cmd)
		realmName, _ := cmd.Flags().GetString("realm")
		ipRange, _ := cmd.Flags().GetString("range")

		d, _ := mustOpenDriver(cmd)
		if err := d.DeleteIPRange(cmd.Context(), kind, realmName, ipRange); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete %s peer range %s: %v\n", kind, ipRange, err)
			os.Exit(1)
		}
		success("%s peer range %s deleted", kind, ipRange)
	},
}

func init() {
	peerIPCmd.AddCommand(peerIPDeleteCmd)
	peerIPDeleteCmd.Flags().StringP("realm", "r", "", "realm of the range")
	peerIPDeleteCmd.Flags().String("range", "", "range to delete")
	_ = peerIPDeleteCmd.MarkFlagRequired("range")
}
