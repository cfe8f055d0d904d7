package cli

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"ladle/internal/config"
	"ladle/internal/ui"
	"ladle/pkg/catalogcache"
	"ladle/pkg/scoop"
)

var (
	searchRefresh     bool
	searchInDesc      bool
	searchLimit       int
	searchInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bucket catalog",
	Long: `Search every configured bucket for installable apps.

The catalog is cached between runs; use --refresh to force a rescan.

Examples:
  ladle search vscode
  ladle search "media player" -d
  ladle search vim --refresh
  ladle search python -i`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchRefresh, "refresh", false, "rescan buckets instead of using the cache")
	searchCmd.Flags().BoolVarP(&searchInDesc, "description", "d", false, "also match descriptions")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "limit number of results")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "pick a result and install it")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	registry, err := getRegistry()
	if err != nil {
		return err
	}

	entries, err := loadCatalog(ctx, registry, searchRefresh)
	if err != nil {
		return err
	}

	matched := filterCatalog(entries, args[0], searchInDesc)
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	if searchLimit > 0 && len(matched) > searchLimit {
		matched = matched[:searchLimit]
	}

	if searchInteractive {
		return installFromResults(ctx, registry, matched)
	}

	ui.PrintCatalog(matched)
	ui.MutedMsg("\n%d results", len(matched))
	return nil
}

// installFromResults lets the user pick one result and installs it.
func installFromResults(ctx context.Context, registry *scoop.Registry, matched []scoop.CatalogEntry) error {
	entry, err := ui.SelectEntry(matched, "Select an app to install")
	if err != nil {
		return err
	}
	if entry.Installed {
		ui.InfoMsg("%s is already installed", entry.Name)
		return nil
	}

	spec := entry.Spec()
	ui.InfoMsg("Installing %s", spec)
	if err := registry.Install(ctx, spec); err != nil {
		return err
	}
	ui.SuccessMsg("Installed %s", spec)
	return nil
}

// loadCatalog serves the catalog from the bbolt cache when it is fresh,
// scanning the buckets otherwise. Cached entries get their Installed flag
// recomputed against the live installed set; the cache itself is best
// effort and never fails a search.
func loadCatalog(ctx context.Context, registry *scoop.Registry, refresh bool) ([]scoop.CatalogEntry, error) {
	if !cfg.Cache.Enabled {
		return registry.Catalog(ctx)
	}

	if err := config.EnsureDataDir(); err != nil {
		return registry.Catalog(ctx)
	}
	store, err := catalogcache.Open(config.CachePath())
	if err != nil {
		return registry.Catalog(ctx)
	}
	defer store.Close()

	if !refresh && store.Fresh(cfg.CacheTTL()) {
		cached, _, err := store.Load()
		if err == nil && len(cached) > 0 {
			if refreshed, err := registry.RefreshInstalled(cached); err == nil {
				return refreshed, nil
			}
		}
	}

	entries, err := registry.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Save(entries); err != nil && cfg.Output.Verbose {
		ui.WarningMsg("Could not update catalog cache: %v", err)
	}
	return entries, nil
}
