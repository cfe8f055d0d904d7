// Package cli implements the command-line interface for ladle.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"ladle/internal/config"
	"ladle/internal/executor"
	"ladle/internal/ui"
	"ladle/pkg/scoop"
)

var (
	// Global flags
	cfgFile  string
	rootPath string
	dryRun   bool
	yes      bool
	verbose  bool
	noColor  bool

	// Global state
	cfg  *config.Config
	exe  *executor.Executor
	reg  *scoop.Registry
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ladle",
	Short: "A friendly front-end for the Scoop package manager",
	Long: `Ladle lists, searches, updates and removes apps managed by Scoop,
and checks upstream for newer versions using each app's checkver
configuration.

Examples:
  ladle list                    # List installed apps
  ladle search vscode           # Search all buckets
  ladle install extras/vscode   # Install from the catalog
  ladle check                   # Check all apps for updates
  ladle tui                     # Interactive mode`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", "", "scoop install root (overrides config and SCOOP env)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(bucketsCmd)
	rootCmd.AddCommand(tuiCmd)
}

// Execute runs the root command. Cobra's own error reporting is silenced,
// so every failure is rendered here before the exit code is decided.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// reportError renders a command failure through the ui palette. A user
// abort is a choice, not a fault, and is reported as a warning.
func reportError(err error) {
	if errors.Is(err, ErrAborted) {
		ui.WarningMsg("%v", err)
		return
	}
	ui.ErrorMsg("%v", err)
}

// initializeApp sets up configuration, UI and the executor. The registry is
// built lazily because commands like version must work without a Scoop
// installation.
func initializeApp() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if yes {
		cfg.General.AutoConfirm = true
	}
	if dryRun {
		cfg.General.DryRun = true
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}

	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)

	exe = executor.New(cfg.General.DryRun, cfg.Output.Verbose)
	return nil
}

// getRegistry validates the Scoop root and returns the registry, building
// it on first use.
func getRegistry() (*scoop.Registry, error) {
	if reg != nil {
		return reg, nil
	}

	root := rootPath
	if root == "" {
		root = cfg.Root()
	}

	checker := scoop.NewChecker(
		scoop.WithUserAgent(cfg.Check.UserAgent),
		scoop.WithGitHubToken(cfg.Check.GitHubToken),
	)

	var err error
	reg, err = scoop.NewRegistry(root, exe, checker)
	return reg, err
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ladle version",
	Run: func(cmd *cobra.Command, args []string) {
		ui.InfoMsg("ladle version %s", Version)
		if Commit != "unknown" {
			ui.MutedMsg("  Commit: %s", Commit)
		}
		if BuildTime != "unknown" {
			ui.MutedMsg("  Built:  %s", BuildTime)
		}
		if registry, err := getRegistry(); err == nil {
			if v, err := registry.ScoopVersion(cmd.Context()); err == nil && v != "" {
				ui.MutedMsg("  Scoop:  %s", v)
			}
		}
	},
}
