package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// realmOptionSetCmd represents the realm-option set command
var realmOptionSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store options of a realm",
	Long: `Store bandwidth and quota options of a realm. Values must be positive.
Running relays apply them on their next reload.

Example:
  relayctl realm-option set --realm north.gov --max-bps 400000
  relayctl realm-option set --realm north.gov --total-quota 50 --user-quota 4`,
	Run: func(cmd *cobra.Command, args []string) {
		realmName, _ := cmd.Flags().GetString("realm")

		values := map[model.RealmOptionName]int64{}
		for _, opt := range model.RealmOptionNameValues() {
			if f := cmd.Flags().Lookup(opt.String()); f != nil && f.Changed {
				values[opt], _ = cmd.Flags().GetInt64(opt.String())
			}
		}

		d, _ := mustOpenDriver(cmd)
		if err := setRealmOptions(cmd.Context(), d, realmName, values); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set options of realm %s: %v\n", realmName, err)
			os.Exit(1)
		}
		success("Options of realm %s stored", realmName)
	},
}

func init() {
	realmOptionCmd.AddCommand(realmOptionSetCmd)
	realmOptionSetCmd.Flags().StringP("realm", "r", "", "realm to configure")
	realmOptionSetCmd.Flags().Int64(model.OptionMaxBps.String(), 0, "bandwidth limit of a session in bytes per second")
	realmOptionSetCmd.Flags().Int64(model.OptionTotalQuota.String(), 0, "maximum number of concurrent sessions in the realm")
	realmOptionSetCmd.Flags().Int64(model.OptionUserQuota.String(), 0, "maximum number of concurrent sessions of one user")
	_ = realmOptionSetCmd.MarkFlagRequired("realm")
}

// setRealmOptions stores values in option order and stops at the first
// failure.
func setRealmOptions(ctx context.Context, d store.Driver, realmName string, values map[model.RealmOptionName]int64) error {
	if len(values) == 0 {
		return errors.New("no option given")
	}
	for _, opt := range model.RealmOptionNameValues() {
		v, ok := values[opt]
		if !ok {
			continue
		}
		if err := d.SetRealmOption(ctx, realmName, opt, v); err != nil {
			return fmt.Errorf("%s: %w", opt, err)
		}
	}
	return nil
}
