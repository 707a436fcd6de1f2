package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// oauthKeyShowCmd represents the oauth-key show command
var oauthKeyShowCmd = &cobra.Command{
	Use:   "show <kid>",
	Short: "Show an OAuth key",
	Long: `Show one OAuth key and when it expires.

Example:
  relayctl oauth-key show north-1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, _ := mustOpenDriver(cmd)
		key, err := d.GetOAuthKey(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "OAuth key %s not found\n", args[0])
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read OAuth key %s: %v\n", args[0], err)
			os.Exit(1)
		}

		fmt.Println(key.String())
		if expires := key.ExpiresAt(); !expires.IsZero() {
			fmt.Printf("  expires=%s\n", expires.UTC().Format(time.RFC3339))
		}
	},
}

func init() {
	oauthKeyCmd.AddCommand(oauthKeyShowCmd)
}
