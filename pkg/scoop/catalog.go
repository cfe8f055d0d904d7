package scoop

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// catalogBatchSize bounds concurrent descriptor parses per bucket so a
// bucket with thousands of manifests does not exhaust file handles.
const catalogBatchSize = 50

// Buckets lists the configured bucket names under the install root.
func (r *Registry) Buckets() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, "buckets"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// bucketManifestDir locates the descriptor directory for a bucket. Newer
// buckets keep manifests under a bucket/ subdirectory, older ones at the
// bucket root.
func (r *Registry) bucketManifestDir(bucket string) string {
	dir := filepath.Join(r.root, "buckets", bucket, "bucket")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return filepath.Join(r.root, "buckets", bucket)
}

// Catalog batch-parses every descriptor in every bucket into catalog
// entries, annotated with a snapshot of the current installed set. Buckets
// are scanned concurrently; per-file parse failures are skipped. Ordering
// is not guaranteed.
func (r *Registry) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	installed, err := r.installedSet()
	if err != nil {
		return nil, err
	}
	buckets, err := r.Buckets()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		entries []CatalogEntry
	)
	for _, bucket := range buckets {
		wg.Add(1)
		go func(bucket string) {
			defer wg.Done()
			found := r.loadBucket(ctx, bucket, installed)
			mu.Lock()
			entries = append(entries, found...)
			mu.Unlock()
		}(bucket)
	}
	wg.Wait()

	return entries, nil
}

// RefreshInstalled recomputes the Installed flag of previously loaded
// entries against the live installed set. Used when serving a catalog from
// a cache whose snapshot may predate installs or uninstalls.
func (r *Registry) RefreshInstalled(entries []CatalogEntry) ([]CatalogEntry, error) {
	installed, err := r.installedSet()
	if err != nil {
		return nil, err
	}
	refreshed := make([]CatalogEntry, len(entries))
	for i, entry := range entries {
		_, ok := installed[strings.ToLower(entry.Name)]
		entry.Installed = ok
		refreshed[i] = entry
	}
	return refreshed, nil
}

// loadBucket parses one bucket's descriptors in bounded batches. A bucket
// that cannot be listed contributes nothing; it never fails the batch.
func (r *Registry) loadBucket(ctx context.Context, bucket string, installed map[string]struct{}) []CatalogEntry {
	dir := r.bucketManifestDir(bucket)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var (
		mu      sync.Mutex
		entries []CatalogEntry
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(catalogBatchSize)

	for _, f := range files {
		if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), ".json") {
			continue
		}
		name := f.Name()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, ok := readManifestFile(filepath.Join(dir, name))
			if !ok {
				return nil
			}
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			_, isInstalled := installed[strings.ToLower(stem)]
			entry := CatalogEntry{
				Name:        stem,
				Description: normalizeDescription(m.Description),
				Version:     m.Version,
				Homepage:    m.Homepage,
				Bucket:      bucket,
				Installed:   isInstalled,
			}
			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entries
	}

	return entries
}
