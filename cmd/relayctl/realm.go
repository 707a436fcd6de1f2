package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// realmCmd represents the realm command
var realmCmd = &cobra.Command{
	Use:   "realm",
	Short: "Inspect realms",
	Long:  `Inspect realms as the relay sees them.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'realm' requires a subcommand (show)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(realmCmd)
}
