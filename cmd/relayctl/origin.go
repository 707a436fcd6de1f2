package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// originCmd represents the origin command
var originCmd = &cobra.Command{
	Use:   "origin",
	Short: "Manage origin to realm mappings",
	Long:  `Manage the mapping of HTTP origins to realms.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'origin' requires a subcommand (add, delete, list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(originCmd)
}
