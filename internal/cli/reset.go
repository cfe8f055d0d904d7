package cli

import (
	"context"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
)

var resetCmd = &cobra.Command{
	Use:   "reset <app>...",
	Short: "Reset apps, repairing shims and shortcuts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	registry, err := getRegistry()
	if err != nil {
		return err
	}

	if !cfg.General.AutoConfirm {
		ok, err := ui.Confirm("Reset the selected apps?", true)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	for _, name := range args {
		if err := registry.Reset(ctx, name); err != nil {
			return err
		}
		ui.SuccessMsg("Reset %s", name)
	}
	return nil
}
