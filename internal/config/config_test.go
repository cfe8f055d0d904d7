package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if !cfg.Output.Color {
		t.Error("expected Color to be true by default")
	}
	if !cfg.Output.Unicode {
		t.Error("expected Unicode to be true by default")
	}
	if cfg.Output.Verbose {
		t.Error("expected Verbose to be false by default")
	}

	if cfg.General.AutoConfirm {
		t.Error("expected AutoConfirm to be false by default")
	}
	if cfg.General.DryRun {
		t.Error("expected DryRun to be false by default")
	}

	if !cfg.Cache.Enabled {
		t.Error("expected cache to be enabled by default")
	}
	if cfg.Cache.TTLMinutes != 60 {
		t.Errorf("expected TTL 60 minutes, got %d", cfg.Cache.TTLMinutes)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !cfg.Output.Color {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[general]
scoop_root = "D:\\scoop"
auto_confirm = true

[check]
user_agent = "custom/2.0"
github_token = "token123"

[cache]
enabled = false
ttl_minutes = 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.General.ScoopRoot != `D:\scoop` {
		t.Errorf("ScoopRoot = %q", cfg.General.ScoopRoot)
	}
	if !cfg.General.AutoConfirm {
		t.Error("expected AutoConfirm true")
	}
	if cfg.Check.UserAgent != "custom/2.0" {
		t.Errorf("UserAgent = %q", cfg.Check.UserAgent)
	}
	if cfg.Check.GitHubToken != "token123" {
		t.Errorf("GitHubToken = %q", cfg.Check.GitHubToken)
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled")
	}
	if cfg.Cache.TTLMinutes != 5 {
		t.Errorf("TTLMinutes = %d", cfg.Cache.TTLMinutes)
	}
}

func TestRootPrecedence(t *testing.T) {
	cfg := Default()
	cfg.General.ScoopRoot = "/configured/root"
	if got := cfg.Root(); got != "/configured/root" {
		t.Errorf("Root() = %q, want configured override", got)
	}

	cfg.General.ScoopRoot = ""
	t.Setenv("SCOOP", "/env/root")
	if got := cfg.Root(); got != "/env/root" {
		t.Errorf("Root() = %q, want SCOOP env value", got)
	}
}

func TestDiscoverScoopRootFallback(t *testing.T) {
	t.Setenv("SCOOP", "")
	home, _ := os.UserHomeDir()
	if got := DiscoverScoopRoot(); got != filepath.Join(home, "scoop") {
		t.Errorf("DiscoverScoopRoot() = %q", got)
	}
}

func TestShouldUseColor(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Color: true}}

	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	if !cfg.ShouldUseColor() {
		t.Error("expected ShouldUseColor() to return true")
	}

	t.Setenv("NO_COLOR", "1")
	if cfg.ShouldUseColor() {
		t.Error("expected NO_COLOR to disable colors")
	}
}
