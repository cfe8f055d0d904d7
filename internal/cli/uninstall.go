package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <app>...",
	Short: "Uninstall apps via scoop",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	registry, err := getRegistry()
	if err != nil {
		return err
	}

	if !cfg.General.AutoConfirm {
		ok, err := ui.Confirm("Uninstall "+strings.Join(args, ", ")+"?", false)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	for _, name := range args {
		if err := registry.Uninstall(ctx, name); err != nil {
			return err
		}
		ui.SuccessMsg("Uninstalled %s", name)
	}
	return nil
}
