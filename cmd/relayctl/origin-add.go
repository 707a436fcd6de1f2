package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// originAddCmd represents the origin add command
var originAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Map an origin to a realm",
	Long: `Map an HTTP origin to a realm. An origin belongs to at most one realm;
mapping it again moves it. Running relays pick the change up on their next
reload.

Example:
  relayctl origin add --origin https://carleon.example --realm north.gov`,
	Run: func(cmd *cobra.Command, args []string) {
		origin, _ := cmd.Flags().GetString("origin")
		realmName, _ := cmd.Flags().GetString("realm")

		d, _ := mustOpenDriver(cmd)
		if err := d.AddOrigin(cmd.Context(), origin, realmName); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add origin %s: %v\n", origin, err)
			os.Exit(1)
		}
		success("Origin %s mapped to realm %s", origin, realmName)
	},
}

func init() {
	originCmd.AddCommand(originAddCmd)
	originAddCmd.Flags().StringP("origin", "o", "", "HTTP origin")
	originAddCmd.Flags().StringP("realm", "r", "", "realm governing the origin")
	_ = originAddCmd.MarkFlagRequired("origin")
	_ = originAddCmd.MarkFlagRequired("realm")
}
