package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// oauthKeyCmd represents the oauth-key command
var oauthKeyCmd = &cobra.Command{
	Use:   "oauth-key",
	Short: "Manage OAuth keys",
	Long:  `Manage the third-party authorization keys used by OAuth.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'oauth-key' requires a subcommand (add, show, delete, list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(oauthKeyCmd)
}
