package tui

import (
	"testing"

	"ladle/internal/config"
	"ladle/pkg/scoop"
)

func newTestModel() *Model {
	m := NewModel(nil, config.Default())
	m.SetSize(80, 24)
	m.installed = []scoop.App{
		{Name: "git", Version: "2.44.0"},
		{Name: "neovim", Version: "0.9.5"},
		{Name: "ripgrep", Version: "14.1.0"},
	}
	return m
}

func TestMoveCursorClamps(t *testing.T) {
	m := newTestModel()

	m.MoveCursor(-5)
	if got := m.Cursor(); got != 0 {
		t.Errorf("cursor below zero: %d", got)
	}

	m.MoveCursor(100)
	if got := m.Cursor(); got != 2 {
		t.Errorf("cursor past end: %d", got)
	}
}

func TestTabCycling(t *testing.T) {
	m := newTestModel()

	if m.activeView != ViewInstalled {
		t.Fatalf("initial view = %v", m.activeView)
	}

	m.NextTab()
	if m.activeView != ViewSearch {
		t.Errorf("after NextTab: %v", m.activeView)
	}

	m.PrevTab()
	m.PrevTab()
	if m.activeView != ViewUpdates {
		t.Errorf("PrevTab should wrap to last tab, got %v", m.activeView)
	}
}

func TestFilteredInstalled(t *testing.T) {
	m := newTestModel()

	if got := len(m.FilteredInstalled()); got != 3 {
		t.Fatalf("no filter should return all apps, got %d", got)
	}

	m.filterText = "nvim"
	filtered := m.FilteredInstalled()
	if len(filtered) != 1 || filtered[0].Name != "neovim" {
		t.Errorf("fuzzy filter %q matched %v", m.filterText, filtered)
	}

	m.filterText = "zzzz"
	if got := len(m.FilteredInstalled()); got != 0 {
		t.Errorf("non-matching filter returned %d apps", got)
	}
}

func TestFuzzyEntries(t *testing.T) {
	entries := []scoop.CatalogEntry{
		{Name: "firefox", Bucket: "extras"},
		{Name: "7zip", Bucket: "main"},
		{Name: "vscode", Bucket: "extras"},
	}

	got := fuzzyEntries(entries, "ffox")
	if len(got) != 1 || got[0].Name != "firefox" {
		t.Errorf("fuzzyEntries(ffox) = %v", got)
	}
}

func TestDetailsNavigation(t *testing.T) {
	m := newTestModel()

	m.ShowDetails(nil)
	if m.activeView != ViewInstalled {
		t.Error("nil app should not open details")
	}

	app := &m.installed[0]
	m.ShowDetails(app)
	if m.activeView != ViewDetails {
		t.Fatal("details view not active")
	}
	if m.selectedApp != app {
		t.Error("selected app not recorded")
	}

	m.GoBack()
	if m.activeView != ViewInstalled {
		t.Errorf("GoBack returned to %v", m.activeView)
	}
}

func TestConfirmDialog(t *testing.T) {
	m := newTestModel()

	ran := false
	m.ShowConfirm("Uninstall git?", func() { ran = true })
	if !m.showConfirm {
		t.Fatal("dialog not shown")
	}

	m.ConfirmNo()
	if ran {
		t.Error("ConfirmNo ran the action")
	}
	if m.showConfirm {
		t.Error("dialog still visible after ConfirmNo")
	}

	m.ShowConfirm("Uninstall git?", func() { ran = true })
	m.ConfirmYes()
	if !ran {
		t.Error("ConfirmYes did not run the action")
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	in := "héllo wörld, ça va très bien"

	got := truncate(in, 10)
	if got != "héllo w..." {
		t.Errorf("truncate = %q", got)
	}

	if truncate("short", 20) != "short" {
		t.Error("short strings must pass through untouched")
	}
	if truncate(in, 0) != in {
		t.Error("non-positive width must pass the string through")
	}
}

func TestInvalidateApps(t *testing.T) {
	m := newTestModel()

	m.appCache.Put("installed", m.installed)
	m.checkCache.Put("checks", []scoop.CheckResult{})

	m.InvalidateApps()

	if _, ok := m.appCache.Get("installed"); ok {
		t.Error("app cache survived invalidation")
	}
	if _, ok := m.checkCache.Get("checks"); ok {
		t.Error("check cache survived invalidation")
	}
}
