package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

var errBadPassword = errors.New("wrong user name or password")

// adminCheckCmd represents the admin check command
var adminCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the password of an admin user",
	Long: `Check a password against the stored hash of an admin user. Exits with
status 1 when the user does not exist or the password is wrong.

Example:
  relayctl admin check --user bayaz --password magus`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")

		d, _ := mustOpenDriver(cmd)
		realmName, err := checkAdmin(cmd.Context(), d, name, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Admin check failed: %v\n", err)
			os.Exit(1)
		}
		if realmName == "" {
			success("Admin user %s authenticated for all realms", name)
			return
		}
		success("Admin user %s authenticated for realm %s", name, realmName)
	},
}

func init() {
	adminCmd.AddCommand(adminCheckCmd)
	adminCheckCmd.Flags().StringP("user", "u", "", "admin user name")
	adminCheckCmd.Flags().StringP("password", "p", "", "password to check")
	_ = adminCheckCmd.MarkFlagRequired("user")
	_ = adminCheckCmd.MarkFlagRequired("password")
}

// checkAdmin returns the realm of admin name when password matches.
func checkAdmin(ctx context.Context, d store.Driver, name, password string) (string, error) {
	admin, err := d.GetAdminUser(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return "", errBadPassword
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", errBadPassword
	}
	return admin.Realm, nil
}
