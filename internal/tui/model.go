package tui

import (
	"github.com/sahilm/fuzzy"

	"ladle/internal/config"
	"ladle/pkg/scoop"
)

// View represents different views in the TUI
type View int

const (
	ViewInstalled View = iota
	ViewSearch
	ViewUpdates
	ViewDetails
	ViewHelp
)

// Tab represents a navigable tab
type Tab struct {
	Name string
	View View
}

// DefaultTabs returns the default tab configuration
func DefaultTabs() []Tab {
	return []Tab{
		{Name: "Installed", View: ViewInstalled},
		{Name: "Search", View: ViewSearch},
		{Name: "Updates", View: ViewUpdates},
	}
}

// Model holds the application state
type Model struct {
	ready    bool
	quitting bool

	width  int
	height int

	tabs       []Tab
	activeTab  int
	activeView View
	prevView   View

	registry *scoop.Registry
	config   *config.Config

	installed     []scoop.App
	catalog       []scoop.CatalogEntry
	searchResults []scoop.CatalogEntry
	checkResults  []scoop.CheckResult
	selectedApp   *scoop.App

	// Query results survive tab switches until a mutating operation
	// invalidates them or the TTL runs out.
	appCache     *cache[[]scoop.App]
	catalogCache *cache[[]scoop.CatalogEntry]
	checkCache   *cache[[]scoop.CheckResult]

	loading      bool
	loadingMsg   string
	errorMsg     string
	successMsg   string
	filterText   string
	searchQuery  string
	inputMode    bool
	inputPrompt  string
	inputValue   string
	inputHandler func(string)

	cursors map[View]int
	scrolls map[View]int

	styles *Styles
	keys   KeyMap

	showConfirm   bool
	confirmTitle  string
	confirmAction func()
}

// NewModel creates a new TUI model
func NewModel(registry *scoop.Registry, cfg *config.Config) *Model {
	ttl := cfg.CacheTTL()
	return &Model{
		tabs:         DefaultTabs(),
		activeTab:    0,
		activeView:   ViewInstalled,
		registry:     registry,
		config:       cfg,
		appCache:     newCache[[]scoop.App](ttl),
		catalogCache: newCache[[]scoop.CatalogEntry](ttl),
		checkCache:   newCache[[]scoop.CheckResult](ttl),
		cursors:      make(map[View]int),
		scrolls:      make(map[View]int),
		styles:       DefaultStyles(),
		keys:         DefaultKeyMap(),
	}
}

// SetSize sets the terminal size
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor returns the cursor position for the current view
func (m *Model) Cursor() int {
	return m.cursors[m.activeView]
}

// SetCursor sets the cursor position for the current view
func (m *Model) SetCursor(pos int) {
	m.cursors[m.activeView] = pos
}

// Scroll returns the scroll offset for the current view
func (m *Model) Scroll() int {
	return m.scrolls[m.activeView]
}

// SetScroll sets the scroll offset for the current view
func (m *Model) SetScroll(offset int) {
	m.scrolls[m.activeView] = offset
}

// VisibleHeight returns the height available for list content.
// Header (1), tabs (1), list title (2), footer (1), padding (2).
func (m *Model) VisibleHeight() int {
	h := m.height - 7
	if h < 1 {
		h = 1
	}
	return h
}

// ItemCount returns the number of list items in the current view
func (m *Model) ItemCount() int {
	switch m.activeView {
	case ViewInstalled:
		return len(m.FilteredInstalled())
	case ViewSearch:
		return len(m.searchResults)
	case ViewUpdates:
		return len(m.checkResults)
	default:
		return 0
	}
}

// appSource adapts a slice of apps for fuzzy matching on name.
type appSource []scoop.App

func (s appSource) String(i int) string { return s[i].Name }
func (s appSource) Len() int            { return len(s) }

// FilteredInstalled returns installed apps matching the current filter
func (m *Model) FilteredInstalled() []scoop.App {
	if m.filterText == "" {
		return m.installed
	}

	matches := fuzzy.FindFrom(m.filterText, appSource(m.installed))
	filtered := make([]scoop.App, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, m.installed[match.Index])
	}
	return filtered
}

// entrySource adapts catalog entries for fuzzy matching on name.
type entrySource []scoop.CatalogEntry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// fuzzyEntries ranks catalog entries against a query by name similarity.
func fuzzyEntries(entries []scoop.CatalogEntry, query string) []scoop.CatalogEntry {
	matches := fuzzy.FindFrom(query, entrySource(entries))
	results := make([]scoop.CatalogEntry, 0, len(matches))
	for _, match := range matches {
		results = append(results, entries[match.Index])
	}
	return results
}

// SelectedInstalled returns the app under the cursor in the installed view
func (m *Model) SelectedInstalled() *scoop.App {
	items := m.FilteredInstalled()
	cursor := m.cursors[ViewInstalled]
	if cursor >= 0 && cursor < len(items) {
		return &items[cursor]
	}
	return nil
}

// SelectedSearchResult returns the entry under the cursor in the search view
func (m *Model) SelectedSearchResult() *scoop.CatalogEntry {
	cursor := m.cursors[ViewSearch]
	if cursor >= 0 && cursor < len(m.searchResults) {
		return &m.searchResults[cursor]
	}
	return nil
}

// SelectedCheckResult returns the result under the cursor in the updates view
func (m *Model) SelectedCheckResult() *scoop.CheckResult {
	cursor := m.cursors[ViewUpdates]
	if cursor >= 0 && cursor < len(m.checkResults) {
		return &m.checkResults[cursor]
	}
	return nil
}

// MoveCursor moves the cursor by delta, clamping to valid range
func (m *Model) MoveCursor(delta int) {
	count := m.ItemCount()
	if count == 0 {
		return
	}

	newPos := m.Cursor() + delta
	if newPos < 0 {
		newPos = 0
	}
	if newPos >= count {
		newPos = count - 1
	}
	m.SetCursor(newPos)

	visibleHeight := m.VisibleHeight()
	scroll := m.Scroll()

	if newPos < scroll {
		m.SetScroll(newPos)
	} else if newPos >= scroll+visibleHeight {
		m.SetScroll(newPos - visibleHeight + 1)
	}
}

// GoToTop moves cursor to the top
func (m *Model) GoToTop() {
	m.SetCursor(0)
	m.SetScroll(0)
}

// GoToBottom moves cursor to the bottom
func (m *Model) GoToBottom() {
	count := m.ItemCount()
	if count == 0 {
		return
	}
	m.SetCursor(count - 1)

	visibleHeight := m.VisibleHeight()
	if count > visibleHeight {
		m.SetScroll(count - visibleHeight)
	}
}

// NextTab switches to the next tab
func (m *Model) NextTab() {
	m.activeTab = (m.activeTab + 1) % len(m.tabs)
	m.activeView = m.tabs[m.activeTab].View
}

// PrevTab switches to the previous tab
func (m *Model) PrevTab() {
	m.activeTab--
	if m.activeTab < 0 {
		m.activeTab = len(m.tabs) - 1
	}
	m.activeView = m.tabs[m.activeTab].View
}

// SetTab switches to a specific tab by index
func (m *Model) SetTab(index int) {
	if index >= 0 && index < len(m.tabs) {
		m.activeTab = index
		m.activeView = m.tabs[m.activeTab].View
	}
}

// ShowDetails shows the details view for the selected app
func (m *Model) ShowDetails(app *scoop.App) {
	if app == nil {
		return
	}
	m.selectedApp = app
	m.prevView = m.activeView
	m.activeView = ViewDetails
}

// GoBack returns to the previous view
func (m *Model) GoBack() {
	if m.activeView == ViewDetails || m.activeView == ViewHelp {
		m.activeView = m.prevView
	}
}

// InvalidateApps drops cached installed and update data after a
// mutating operation.
func (m *Model) InvalidateApps() {
	m.appCache.Clear()
	m.checkCache.Clear()
	m.catalogCache.Clear()
}

// SetLoading sets the loading state
func (m *Model) SetLoading(loading bool, msg string) {
	m.loading = loading
	m.loadingMsg = msg
}

// SetError sets an error message
func (m *Model) SetError(msg string) {
	m.errorMsg = msg
	m.successMsg = ""
}

// SetSuccess sets a success message
func (m *Model) SetSuccess(msg string) {
	m.successMsg = msg
	m.errorMsg = ""
}

// ClearMessages clears all messages
func (m *Model) ClearMessages() {
	m.errorMsg = ""
	m.successMsg = ""
}

// StartInput starts input mode
func (m *Model) StartInput(prompt string, handler func(string)) {
	m.inputMode = true
	m.inputPrompt = prompt
	m.inputValue = ""
	m.inputHandler = handler
}

// FinishInput finishes input mode and calls the handler
func (m *Model) FinishInput() {
	if m.inputHandler != nil {
		m.inputHandler(m.inputValue)
	}
	m.inputMode = false
	m.inputPrompt = ""
	m.inputValue = ""
	m.inputHandler = nil
}

// CancelInput cancels input mode
func (m *Model) CancelInput() {
	m.inputMode = false
	m.inputPrompt = ""
	m.inputValue = ""
	m.inputHandler = nil
}

// ShowConfirm shows a confirmation dialog
func (m *Model) ShowConfirm(title string, action func()) {
	m.showConfirm = true
	m.confirmTitle = title
	m.confirmAction = action
}

// ConfirmYes executes the confirmation action
func (m *Model) ConfirmYes() {
	if m.confirmAction != nil {
		m.confirmAction()
	}
	m.showConfirm = false
	m.confirmTitle = ""
	m.confirmAction = nil
}

// ConfirmNo cancels the confirmation
func (m *Model) ConfirmNo() {
	m.showConfirm = false
	m.confirmTitle = ""
	m.confirmAction = nil
}
