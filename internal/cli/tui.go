package cli

import (
	"github.com/spf13/cobra"

	"ladle/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive interface",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	registry, err := getRegistry()
	if err != nil {
		return err
	}
	return tui.Run(registry, cfg)
}
