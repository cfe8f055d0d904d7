package cli

import (
	"context"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
	"ladle/pkg/scoop"
)

var checkUpdatesOnly bool

var checkCmd = &cobra.Command{
	Use:   "check [app]...",
	Short: "Check upstream for newer versions",
	Long: `Resolve the latest upstream version for the named apps, or for
every installed app when none are given. Apps whose checkver
configuration is missing or unsupported report "unknown".

Examples:
  ladle check
  ladle check 7zip vscode
  ladle check -u                # only apps with updates`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&checkUpdatesOnly, "updates", "u", false, "only show apps with an available update")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	registry, err := getRegistry()
	if err != nil {
		return err
	}

	var apps []scoop.App
	if len(args) == 0 {
		apps, err = registry.Installed(ctx)
		if err != nil {
			return err
		}
	} else {
		for _, name := range args {
			app, err := registry.Get(ctx, name)
			if err != nil {
				return err
			}
			apps = append(apps, *app)
		}
	}

	var results []scoop.CheckResult
	err = ui.WithSpinner("Checking upstream versions", func() error {
		results = registry.CheckAll(ctx, apps)
		return nil
	})
	if err != nil {
		return err
	}

	if checkUpdatesOnly {
		filtered := results[:0]
		for _, res := range results {
			if res.HasUpdate() {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}

	ui.PrintCheckResults(results)
	return nil
}
