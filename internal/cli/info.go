package cli

import (
	"context"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info <app>",
	Short: "Show details for an installed app",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	registry, err := getRegistry()
	if err != nil {
		return err
	}

	app, err := registry.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	ui.PrintAppInfo(app)
	return nil
}
