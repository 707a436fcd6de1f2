package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// realmOptionCmd represents the realm-option command
var realmOptionCmd = &cobra.Command{
	Use:   "realm-option",
	Short: "Manage stored realm options",
	Long:  `Manage the bandwidth and quota options stored per realm.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'realm-option' requires a subcommand (set, list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(realmOptionCmd)
}
