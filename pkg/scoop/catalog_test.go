package scoop

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeBucketManifest places a descriptor in a bucket's manifest directory.
func writeBucketManifest(t *testing.T, root, bucket, file, content string) {
	t.Helper()
	dir := filepath.Join(root, "buckets", bucket, "bucket")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCatalog(t *testing.T) {
	reg, root := newTestRegistry(t, &fakeRunner{})
	writeApp(t, root, "Foo", `{"version": "1.0"}`, "")

	writeBucketManifest(t, root, "main", "foo.json",
		`{"version": "1.2", "description": "Foo tool", "homepage": "https://foo.example"}`)
	writeBucketManifest(t, root, "main", "bar.json",
		`{"version": "3.0", "description": ["Bar tool", "second line"]}`)
	writeBucketManifest(t, root, "extras", "baz.json",
		`{"version": "0.1"}`)
	// Corrupt descriptors are skipped, not fatal.
	writeBucketManifest(t, root, "extras", "corrupt.json", `{oops`)
	// Non-JSON files are ignored.
	writeBucketManifest(t, root, "extras", "README.md", "# readme")

	entries, err := reg.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	bar, baz, foo := entries[0], entries[1], entries[2]

	if bar.Name != "bar" || bar.Bucket != "main" || bar.Description != "Bar tool" {
		t.Errorf("bar = %+v", bar)
	}
	if bar.Installed {
		t.Error("bar should not be installed")
	}

	if baz.Name != "baz" || baz.Bucket != "extras" {
		t.Errorf("baz = %+v", baz)
	}

	// Membership is case-insensitive: installed dir is "Foo".
	if !foo.Installed {
		t.Error("foo should be marked installed")
	}
	if foo.Version != "1.2" || foo.Homepage != "https://foo.example" {
		t.Errorf("foo = %+v", foo)
	}
}

func TestCatalogSnapshotSemantics(t *testing.T) {
	reg, root := newTestRegistry(t, &fakeRunner{})
	writeApp(t, root, "foo", `{"version": "1.0"}`, "")
	writeBucketManifest(t, root, "main", "foo.json", `{"version": "1.0"}`)

	entries, err := reg.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if len(entries) != 1 || !entries[0].Installed {
		t.Fatalf("entries = %+v", entries)
	}

	// Uninstalling afterwards must not retroactively change the returned
	// snapshot.
	if err := os.RemoveAll(filepath.Join(root, "apps", "foo")); err != nil {
		t.Fatal(err)
	}
	if !entries[0].Installed {
		t.Error("snapshot mutated after uninstall")
	}
}

func TestCatalogBucketRootFallback(t *testing.T) {
	reg, root := newTestRegistry(t, &fakeRunner{})

	// Older buckets keep manifests at the bucket root, without a bucket/
	// subdirectory.
	dir := filepath.Join(root, "buckets", "legacy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "old.json"), []byte(`{"version": "9"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := reg.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "old" || entries[0].Bucket != "legacy" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestCatalogNoBuckets(t *testing.T) {
	reg, _ := newTestRegistry(t, &fakeRunner{})
	entries, err := reg.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %+v", entries)
	}
}

func TestBuckets(t *testing.T) {
	reg, root := newTestRegistry(t, &fakeRunner{})
	writeBucketManifest(t, root, "main", "a.json", `{}`)
	writeBucketManifest(t, root, "extras", "b.json", `{}`)

	buckets, err := reg.Buckets()
	if err != nil {
		t.Fatalf("Buckets failed: %v", err)
	}
	sort.Strings(buckets)
	if len(buckets) != 2 || buckets[0] != "extras" || buckets[1] != "main" {
		t.Errorf("buckets = %v", buckets)
	}
}

func TestCatalogEntrySpec(t *testing.T) {
	e := CatalogEntry{Name: "vscode", Bucket: "extras"}
	if got := e.Spec(); got != "extras/vscode" {
		t.Errorf("Spec() = %q", got)
	}
	e.Bucket = ""
	if got := e.Spec(); got != "vscode" {
		t.Errorf("Spec() = %q", got)
	}
}
