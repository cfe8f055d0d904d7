package cli

import (
	"context"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
	"ladle/pkg/scoop"
)

var updateAll bool

var updateCmd = &cobra.Command{
	Use:   "update [app]...",
	Short: "Update apps via scoop",
	Long: `Update the named apps. With --all, every app whose version check
reports a newer upstream release is updated; failures are collected
per app so one broken update does not stop the rest.

Examples:
  ladle update vscode
  ladle update --all`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVarP(&updateAll, "all", "a", false, "update every app with a known newer version")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	registry, err := getRegistry()
	if err != nil {
		return err
	}

	if len(args) == 0 && !updateAll {
		return ErrNoApps
	}

	if updateAll {
		return updateOutdated(ctx, registry)
	}

	for _, name := range args {
		ui.InfoMsg("Updating %s", name)
		if err := registry.Update(ctx, name); err != nil {
			return err
		}
		ui.SuccessMsg("Updated %s", name)
	}
	return nil
}

// updateOutdated checks every installed app and updates those with a newer
// upstream version, isolating per-app failures.
func updateOutdated(ctx context.Context, registry *scoop.Registry) error {
	apps, err := registry.Installed(ctx)
	if err != nil {
		return err
	}

	var results []scoop.CheckResult
	err = ui.WithSpinner("Checking for updates", func() error {
		results = registry.CheckAll(ctx, apps)
		return nil
	})
	if err != nil {
		return err
	}

	var failed int
	var updated int
	for _, res := range results {
		if !res.HasUpdate() {
			continue
		}
		ui.InfoMsg("Updating %s (%s %s %s)", res.App.Name, res.App.Version, ui.SymbolArrow, res.Latest)
		if err := registry.Update(ctx, res.App.Name); err != nil {
			ui.ErrorMsg("%v", err)
			failed++
			continue
		}
		updated++
	}

	if updated == 0 && failed == 0 {
		ui.SuccessMsg("Everything is up to date")
		return nil
	}
	ui.MutedMsg("\nUpdated: %d, failed: %d", updated, failed)
	return nil
}
