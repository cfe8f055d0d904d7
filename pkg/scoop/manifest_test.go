package scoop

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeApp lays out {root}/apps/{name}/current with the given descriptor
// contents. Empty install writes an empty record, which is still a valid
// install file.
func writeApp(t *testing.T, root, name, manifest, install string) {
	t.Helper()
	dir := filepath.Join(root, "apps", name, "current")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFileName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if install == "" {
		install = "{}"
	}
	if err := os.WriteFile(filepath.Join(dir, installFileName), []byte(install), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadApp(t *testing.T) {
	root := t.TempDir()
	writeApp(t, root, "7zip",
		`{
			"version": "24.08",
			"description": "A multi-format file archiver",
			"homepage": "https://www.7-zip.org/",
			"bin": "7z.exe",
			"checkver": {"sourceforge": "sevenzip"}
		}`,
		`{"bucket": "main"}`)

	app := readApp(root, "7zip")
	if app == nil {
		t.Fatal("readApp returned nil for a valid app")
	}
	if app.Name != "7zip" {
		t.Errorf("Name = %q", app.Name)
	}
	if app.Version != "24.08" {
		t.Errorf("Version = %q", app.Version)
	}
	if app.Description != "A multi-format file archiver" {
		t.Errorf("Description = %q", app.Description)
	}
	if app.Bucket != "main" {
		t.Errorf("Bucket = %q", app.Bucket)
	}
	if app.InstallDir != filepath.Join(root, "apps", "7zip", "current") {
		t.Errorf("InstallDir = %q", app.InstallDir)
	}
	if app.Check.SourceForge.Project != "sevenzip" {
		t.Errorf("Check = %+v", app.Check)
	}
}

func TestReadAppDescriptionList(t *testing.T) {
	root := t.TempDir()
	writeApp(t, root, "tool",
		`{"version": "1.0", "description": ["First line", "Second line"]}`, "")

	app := readApp(root, "tool")
	if app == nil {
		t.Fatal("readApp returned nil")
	}
	if app.Description != "First line" {
		t.Errorf("Description = %q, want first list element", app.Description)
	}
}

func TestReadAppMissingBucketField(t *testing.T) {
	root := t.TempDir()
	writeApp(t, root, "tool", `{"version": "1.0"}`, `{}`)

	app := readApp(root, "tool")
	if app == nil {
		t.Fatal("readApp returned nil")
	}
	if app.Bucket != UnknownBucket {
		t.Errorf("Bucket = %q, want %q", app.Bucket, UnknownBucket)
	}
	if !app.Check.IsZero() {
		t.Errorf("expected zero check config, got %+v", app.Check)
	}
}

func TestReadAppMissingInstallRecord(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "apps", "tool", "current")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFileName), []byte(`{"version": "1.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	// Both descriptor files are required; a manifest alone does not resolve.
	if app := readApp(root, "tool"); app != nil {
		t.Errorf("expected nil without an install record, got %+v", app)
	}
}

func TestReadAppCorruptInstallRecord(t *testing.T) {
	root := t.TempDir()
	writeApp(t, root, "tool", `{"version": "1.0"}`, `{not json`)

	if app := readApp(root, "tool"); app != nil {
		t.Errorf("expected nil for corrupt install record, got %+v", app)
	}
}

func TestReadAppCorruptManifest(t *testing.T) {
	root := t.TempDir()
	writeApp(t, root, "broken", `{not json`, "")

	if app := readApp(root, "broken"); app != nil {
		t.Errorf("expected nil for corrupt manifest, got %+v", app)
	}
}

func TestReadAppMissingManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "apps", "empty", "current"), 0o755); err != nil {
		t.Fatal(err)
	}
	if app := readApp(root, "empty"); app != nil {
		t.Errorf("expected nil for missing manifest, got %+v", app)
	}
}

func TestReadAppIdempotent(t *testing.T) {
	root := t.TempDir()
	writeApp(t, root, "tool",
		`{"version": "1.0", "description": "x", "bin": ["t.exe"]}`,
		`{"bucket": "extras"}`)

	first := readApp(root, "tool")
	second := readApp(root, "tool")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolving twice differed:\n%+v\n%+v", first, second)
	}
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "plain", "plain"},
		{"list", []any{"one", "two"}, "one"},
		{"list with non-string head", []any{float64(1), "two"}, "two"},
		{"nil", nil, ""},
		{"unexpected shape", map[string]any{"x": "y"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDescription(tt.input); got != tt.expected {
				t.Errorf("normalizeDescription() = %q, want %q", got, tt.expected)
			}
		})
	}
}
