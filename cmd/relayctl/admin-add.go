package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// adminAddCmd represents the admin add command
var adminAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update an admin user",
	Long: `Add an admin user, or change the password and realm of an existing one.
Only a bcrypt hash of the password is stored. An admin without a realm
administers every realm.

Example:
  relayctl admin add --user bayaz --password magus
  relayctl admin add --user glokta --password practicals --realm north.gov`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")
		realmName, _ := cmd.Flags().GetString("realm")

		d, _ := mustOpenDriver(cmd)
		if err := addAdmin(cmd.Context(), d, name, realmName, password); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add admin user %s: %v\n", name, err)
			os.Exit(1)
		}
		success("Admin user %s stored", name)
	},
}

func init() {
	adminCmd.AddCommand(adminAddCmd)
	adminAddCmd.Flags().StringP("user", "u", "", "admin user name")
	adminAddCmd.Flags().StringP("password", "p", "", "admin password")
	adminAddCmd.Flags().StringP("realm", "r", "", "realm the admin is limited to")
	_ = adminAddCmd.MarkFlagRequired("user")
	_ = adminAddCmd.MarkFlagRequired("password")
}

func addAdmin(ctx context.Context, d store.Driver, name, realmName, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return d.SetAdminUser(ctx, model.AdminUser{Name: name, Realm: realmName, Password: string(hash)})
}
