package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// userAddCmd represents the user add command
var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a long-term credential",
	Long: `Add a user to a realm, or change the password of an existing user.

Only the key derived from user, realm and password is stored. Its size
depends on the configured hash_algorithm.

Example:
  relayctl user add --realm north.gov --user ninefingers --password youhavetoberealistic`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")
		user, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")

		d, cfg := mustOpenDriver(cmd)
		hash, _ := cfg.Hash()
		if err := addUser(cmd.Context(), d, hash, realmName, user, password); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add user %s: %v\n", user, err)
			os.Exit(1)
		}
		success("User %s added to realm %s", user, realmName)
	},
}

func init() {
	userCmd.AddCommand(userAddCmd)
	userAddCmd.Flags().StringP("realm", "r", "", "realm of the user")
	userAddCmd.Flags().StringP("user", "u", "", "user name")
	userAddCmd.Flags().StringP("password", "p", "", "user password")
	_ = userAddCmd.MarkFlagRequired("realm")
	_ = userAddCmd.MarkFlagRequired("user")
	_ = userAddCmd.MarkFlagRequired("password")
}

func addUser(ctx context.Context, d store.Driver, hash model.HashAlgorithm, realmName, user, password string) error {
	return d.SetUserKey(ctx, realmName, user, hash.DeriveKey(user, realmName, password))
}
