package cli

import (
	"context"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
)

var openCmd = &cobra.Command{
	Use:   "open <app>",
	Short: "Reveal an app's install directory in the file explorer",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	registry, err := getRegistry()
	if err != nil {
		return err
	}

	if err := registry.OpenFolder(context.Background(), args[0]); err != nil {
		return err
	}
	ui.SuccessMsg("Opened %s", args[0])
	return nil
}
