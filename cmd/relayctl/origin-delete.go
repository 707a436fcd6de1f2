package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// originDeleteCmd represents the origin delete command
var originDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove an origin mapping",
	Long: `Remove the realm mapping of an HTTP origin.

Example:
  relayctl origin delete --origin https://carleon.example`,
	Run: func(cmd *cobra.Command, args []string) {
		origin, _ := cmd.Flags().GetString("origin")

		d, _ := mustOpenDriver(cmd)
		if err := d.DeleteOrigin(cmd.Context(), origin); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete origin %s: %v\n", origin, err)
			os.Exit(1)
		}
		success("Origin %s deleted", origin)
	},
}

func init() {
	originCmd.AddCommand(originDeleteCmd)
	originDeleteCmd.Flags().StringP("origin", "o", "", "HTTP origin")
	_ = originDeleteCmd.MarkFlagRequired("origin")
}
