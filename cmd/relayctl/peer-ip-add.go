package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// peerIPAddCmd represents the peer-ip add command
var peerIPAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a peer IP range",
	Long: `Add a range to the allowed or denied peer IP list of a realm.

Example:
  relayctl peer-ip add --kind denied --realm north.gov --range 10.0.0.0/8
  relayctl peer-ip add --kind allowed --range "172.16.0.1-172.16.0.9"`,
	Run: func(cmd *cobra.Command, args []string) {
		kind := ipKindFlag(cmd)
		realmName, _ := cmd.Flags().GetString("realm")
		ipRange, _ := cmd.Flags().GetString("range")

		d, _ := mustOpenDriver(cmd)
		if err := d.SetIPRange(cmd.Context(), kind, realmName, ipRange); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add %s peer range %s: %v\n", kind, ipRange, err)
			os.Exit(1)
		}
		success("%s peer range %s added", kind, ipRange)
	},
}

func init() {
	peerIPCmd.AddCommand(peerIPAddCmd)
	peerIPAddCmd.Flags().StringP("realm", "r", "", "realm of the range (default all realms)")
	peerIPAddCmd.Flags().String("range", "", "address, CIDR prefix or address range")
	_ = peerIPAddCmd.MarkFlagRequired("range")
}
