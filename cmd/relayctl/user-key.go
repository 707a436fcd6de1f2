package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// userKeyCmd represents the user key command
var userKeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Print the long-term key of a user",
	Long: `Print the hex encoded long-term key of a user.

With --password the key is derived and printed without touching the user
database. Without it the stored key is read.

Example:
  relayctl user key --realm north.gov --user ninefingers --password youhavetoberealistic
  relayctl user key --realm north.gov --user ninefingers`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")
		user, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")

		if password != "" {
			cfg, err := loadConfig(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
				os.Exit(1)
			}
			hash, _ := cfg.Hash()
			fmt.Println(model.EncodeKey(hash.DeriveKey(user, realmName, password)))
			return
		}

		d, _ := mustOpenDriver(cmd)
		key, err := storedKey(cmd.Context(), d, realmName, user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read key of %s: %v\n", user, err)
			os.Exit(1)
		}
		fmt.Println(key)
	},
}

func init() {
	userCmd.AddCommand(userKeyCmd)
	userKeyCmd.Flags().StringP("realm", "r", "", "realm of the user")
	userKeyCmd.Flags().StringP("user", "u", "", "user name")
	userKeyCmd.Flags().StringP("password", "p", "", "derive the key from this password instead of reading it")
	_ = userKeyCmd.MarkFlagRequired("realm")
	_ = userKeyCmd.MarkFlagRequired("user")
}

func storedKey(ctx context.Context, d store.Driver, realmName, user string) (string, error) {
	key, err := d.GetUserKey(ctx, realmName, user)
	if err != nil {
		return "", err
	}
	return model.EncodeKey(key), nil
}
