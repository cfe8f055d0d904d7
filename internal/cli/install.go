package cli

import (
	"context"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
)

var installCmd = &cobra.Command{
	Use:   "install <bucket/app>...",
	Short: "Install apps via scoop",
	Long: `Install one or more apps. Use the bucket-qualified form to pick a
specific source.

Examples:
  ladle install 7zip
  ladle install extras/vscode main/git`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	registry, err := getRegistry()
	if err != nil {
		return err
	}

	for _, spec := range args {
		ui.InfoMsg("Installing %s", spec)
		if err := registry.Install(ctx, spec); err != nil {
			return err
		}
		ui.SuccessMsg("Installed %s", spec)
	}
	return nil
}
