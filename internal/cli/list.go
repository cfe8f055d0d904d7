package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
	"ladle/pkg/scoop"
)

var listPattern string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed apps",
	Long: `List all apps installed under the Scoop root.

Examples:
  ladle list                    # List all installed apps
  ladle list -p vim             # List apps matching 'vim'`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listPattern, "pattern", "p", "", "filter by name pattern")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	registry, err := getRegistry()
	if err != nil {
		return err
	}

	apps, err := registry.Installed(ctx)
	if err != nil {
		return err
	}

	if listPattern != "" {
		pattern := strings.ToLower(listPattern)
		filtered := apps[:0]
		for _, app := range apps {
			if strings.Contains(strings.ToLower(app.Name), pattern) {
				filtered = append(filtered, app)
			}
		}
		apps = filtered
	}

	ui.PrintApps(apps)
	ui.MutedMsg("\nTotal: %d apps", len(apps))
	return nil
}

// filterCatalog returns entries whose name (or description, when inDesc is
// set) contains the query, case-insensitively.
func filterCatalog(entries []scoop.CatalogEntry, query string, inDesc bool) []scoop.CatalogEntry {
	query = strings.ToLower(query)
	var matched []scoop.CatalogEntry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Name), query) {
			matched = append(matched, entry)
			continue
		}
		if inDesc && strings.Contains(strings.ToLower(entry.Description), query) {
			matched = append(matched, entry)
		}
	}
	return matched
}
