package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
)

// peerIPCmd represents the peer-ip command
var peerIPCmd = &cobra.Command{
	Use:   "peer-ip",
	Short: "Manage allowed and denied peer IP ranges",
	Long: `Manage the allowed and denied peer IP ranges of each realm.

A range is a single address, a CIDR prefix, or two addresses of the same
family joined by "-".`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'peer-ip' requires a subcommand (add, delete, list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(peerIPCmd)
	peerIPCmd.PersistentFlags().StringP("kind", "k", "", "range list: "+strings.Join(model.IPKindStrings(), " or "))
	_ = peerIPCmd.MarkPersistentFlagRequired("kind")
}

func ipKindFlag(cmd *cobra.Command) model.IPKind {
	name, _ := cmd.Flags().GetString("kind")
	kind, err := model.IPKindString(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --kind %q: must be one of %s\n", name, strings.Join(model.IPKindStrings(), ", "))
		os.Exit(1)
	}
	return kind
}
