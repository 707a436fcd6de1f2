package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// realmShowCmd represents the realm show command
var realmShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show realms as a relay would load them",
	Long: `Load realms from the user database the way a relay does on reload and
print their effective options and origins. Realms without stored options
get the configured defaults.

Example:
  relayctl realm show
  relayctl realm show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		d, cfg := mustOpenDriver(cmd)
		snapshot, err := loadRealms(cmd.Context(), d, cfg.Defaults())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load realms: %v\n", err)
			os.Exit(1)
		}

		if output == "json" {
			data, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to format realms: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}
		printRealms(os.Stdout, snapshot)
	},
}

func init() {
	realmCmd.AddCommand(realmShowCmd)
	realmShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func loadRealms(ctx context.Context, d store.Driver, defaults realm.Options) (realm.Snapshot, error) {
	table := realm.NewTable(defaults)
	if err := d.ReloadRealms(ctx, table); err != nil {
		return realm.Snapshot{}, err
	}
	return table.Snapshot(), nil
}

func printRealms(w io.Writer, snapshot realm.Snapshot) {
	cyan := color.New(color.FgCyan, color.Bold)

	_, _ = cyan.Fprintln(w, "Realms")
	_, _ = fmt.Fprintf(w, "%-30s %-12s %-12s %s\n", "NAME", "MAX_BPS", "TOTAL_QUOTA", "USER_QUOTA")
	for _, name := range slices.Sorted(maps.Keys(snapshot.Realms)) {
		o := snapshot.Realms[name]
		_, _ = fmt.Fprintf(w, "%-30s %-12d %-12d %d\n", name, o.MaxBPS, o.TotalQuota, o.UserQuota)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = cyan.Fprintln(w, "Origins")
	for _, origin := range slices.Sorted(maps.Keys(snapshot.Origins)) {
		_, _ = fmt.Fprintf(w, "%s ==>> %s\n", origin, snapshot.Origins[origin])
	}
}
