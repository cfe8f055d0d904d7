package cli

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"ladle/internal/ui"
)

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List configured buckets",
	RunE:  runBuckets,
}

func runBuckets(cmd *cobra.Command, args []string) error {
	registry, err := getRegistry()
	if err != nil {
		return err
	}

	buckets, err := registry.Buckets()
	if err != nil {
		return err
	}
	if len(buckets) == 0 {
		ui.MutedMsg("No buckets configured")
		return nil
	}
	sort.Strings(buckets)

	entries, err := registry.Catalog(context.Background())
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, entry := range entries {
		counts[entry.Bucket]++
	}

	for _, bucket := range buckets {
		ui.Println("  %s %s (%d apps)", ui.SymbolInfo, ui.Bold(bucket), counts[bucket])
	}
	return nil
}
