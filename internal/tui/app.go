package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ladle/internal/config"
	"ladle/pkg/scoop"
)

// Messages for async operations
type (
	appsLoadedMsg struct {
		apps []scoop.App
		err  error
	}

	searchResultsMsg struct {
		query   string
		results []scoop.CatalogEntry
		err     error
	}

	checksLoadedMsg struct {
		results []scoop.CheckResult
		err     error
	}

	operationCompleteMsg struct {
		message string
		err     error
	}
)

// App wraps the Model with bubbletea components
type App struct {
	*Model
	spinner   spinner.Model
	textInput textinput.Model

	// pendingCmd runs once the confirmation dialog or input prompt resolves
	pendingCmd tea.Cmd
}

// NewApp creates a new TUI application
func NewApp(registry *scoop.Registry, cfg *config.Config) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.CharLimit = 100
	ti.Width = 40

	return &App{
		Model:     NewModel(registry, cfg),
		spinner:   sp,
		textInput: ti,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadApps(false),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		a.ready = true

	case tea.KeyMsg:
		// Confirmation dialog swallows all keys
		if a.showConfirm {
			switch msg.String() {
			case "y", "Y", "enter":
				a.ConfirmYes()
				if cmd := a.pendingCmd; cmd != nil {
					a.pendingCmd = nil
					cmds = append(cmds, cmd)
				}
			case "n", "N", "esc", "q":
				a.ConfirmNo()
				a.pendingCmd = nil
			}
			return a, tea.Batch(cmds...)
		}

		if a.inputMode {
			switch msg.String() {
			case "enter":
				a.FinishInput()
				if cmd := a.pendingCmd; cmd != nil {
					a.pendingCmd = nil
					cmds = append(cmds, cmd)
				}
				return a, tea.Batch(cmds...)
			case "esc":
				a.CancelInput()
				return a, nil
			default:
				var cmd tea.Cmd
				a.textInput, cmd = a.textInput.Update(msg)
				a.inputValue = a.textInput.Value()
				if a.inputPrompt == "Filter: " {
					// Live filtering as the user types
					a.filterText = a.inputValue
					a.SetCursor(0)
					a.SetScroll(0)
				}
				cmds = append(cmds, cmd)
				return a, tea.Batch(cmds...)
			}
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			if a.activeView == ViewHelp {
				a.GoBack()
			} else {
				a.prevView = a.activeView
				a.activeView = ViewHelp
			}

		case key.Matches(msg, a.keys.Tab1):
			a.SetTab(0)
		case key.Matches(msg, a.keys.Tab2):
			a.SetTab(1)
		case key.Matches(msg, a.keys.Tab3):
			a.SetTab(2)
			if len(a.checkResults) == 0 && !a.loading {
				cmds = append(cmds, a.loadChecks(false))
			}

		case key.Matches(msg, a.keys.PrevTab):
			a.PrevTab()
		case key.Matches(msg, a.keys.NextTab):
			a.NextTab()

		case key.Matches(msg, a.keys.Back):
			a.GoBack()
			a.ClearMessages()

		case key.Matches(msg, a.keys.Up):
			a.MoveCursor(-1)
		case key.Matches(msg, a.keys.Down):
			a.MoveCursor(1)
		case key.Matches(msg, a.keys.PageUp):
			a.MoveCursor(-a.VisibleHeight())
		case key.Matches(msg, a.keys.PageDown):
			a.MoveCursor(a.VisibleHeight())
		case key.Matches(msg, a.keys.Home):
			a.GoToTop()
		case key.Matches(msg, a.keys.End):
			a.GoToBottom()

		case key.Matches(msg, a.keys.Enter):
			if a.activeView == ViewInstalled {
				a.ShowDetails(a.SelectedInstalled())
			}

		case key.Matches(msg, a.keys.Search):
			a.SetTab(1)
			a.startSearch()

		case key.Matches(msg, a.keys.Filter):
			if a.activeView == ViewInstalled {
				a.startFilter()
			}

		case key.Matches(msg, a.keys.Refresh):
			switch a.activeView {
			case ViewInstalled:
				cmds = append(cmds, a.loadApps(true))
			case ViewUpdates:
				cmds = append(cmds, a.loadChecks(true))
			}

		case key.Matches(msg, a.keys.Install):
			if a.activeView == ViewSearch {
				if entry := a.SelectedSearchResult(); entry != nil && !entry.Installed {
					spec := entry.Spec()
					a.confirmThen(fmt.Sprintf("Install %s?", spec), a.installApp(spec))
				}
			}

		case key.Matches(msg, a.keys.Uninstall):
			if a.activeView == ViewInstalled || a.activeView == ViewDetails {
				if app := a.detailOrSelected(); app != nil {
					name := app.Name
					a.confirmThen(fmt.Sprintf("Uninstall %s?", name), a.uninstallApp(name))
				}
			}

		case key.Matches(msg, a.keys.Update):
			switch a.activeView {
			case ViewInstalled, ViewDetails:
				if app := a.detailOrSelected(); app != nil {
					name := app.Name
					a.confirmThen(fmt.Sprintf("Update %s?", name), a.updateApp(name))
				}
			case ViewUpdates:
				if res := a.SelectedCheckResult(); res != nil && res.HasUpdate() {
					name := res.App.Name
					a.confirmThen(fmt.Sprintf("Update %s to %s?", name, res.Latest), a.updateApp(name))
				}
			}

		case key.Matches(msg, a.keys.Check):
			cmds = append(cmds, a.loadChecks(true))
		}

	case appsLoadedMsg:
		a.SetLoading(false, "")
		if msg.err != nil {
			a.SetError(msg.err.Error())
		} else {
			a.installed = msg.apps
		}

	case searchResultsMsg:
		a.SetLoading(false, "")
		if msg.err != nil {
			a.SetError(msg.err.Error())
		} else {
			a.searchQuery = msg.query
			a.searchResults = msg.results
			a.cursors[ViewSearch] = 0
			a.scrolls[ViewSearch] = 0
			if len(msg.results) == 0 {
				a.SetError("No apps found")
			}
		}

	case checksLoadedMsg:
		a.SetLoading(false, "")
		if msg.err != nil {
			a.SetError(msg.err.Error())
		} else {
			a.checkResults = msg.results
		}

	case operationCompleteMsg:
		a.SetLoading(false, "")
		if msg.err != nil {
			a.SetError(msg.err.Error())
		} else {
			a.SetSuccess(msg.message)
			a.InvalidateApps()
			cmds = append(cmds, a.loadApps(true))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// detailOrSelected returns the detail-view app when in details, otherwise
// the app under the installed-list cursor.
func (a *App) detailOrSelected() *scoop.App {
	if a.activeView == ViewDetails {
		return a.selectedApp
	}
	return a.SelectedInstalled()
}

// confirmThen shows the dialog and stashes the command to run on "yes".
func (a *App) confirmThen(title string, cmd tea.Cmd) {
	a.pendingCmd = cmd
	a.ShowConfirm(title, nil)
}

// View implements tea.Model
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n")
	b.WriteString(a.renderContent())
	b.WriteString(a.renderFooter())

	if a.showConfirm {
		return a.renderDialog()
	}

	return b.String()
}

func (a *App) renderHeader() string {
	title := a.styles.Header.Render(" ladle ")

	var right string
	if a.loading {
		right = a.spinner.View() + " " + a.loadingMsg
	} else if a.errorMsg != "" {
		right = a.styles.Error.Render(a.errorMsg)
	} else if a.successMsg != "" {
		right = a.styles.Success.Render(a.successMsg)
	}

	padding := a.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if padding < 0 {
		padding = 0
	}

	return title + strings.Repeat(" ", padding) + right
}

func (a *App) renderTabs() string {
	var tabs []string
	for i, tab := range a.tabs {
		style := a.styles.TabInactive
		if i == a.activeTab {
			style = a.styles.TabActive
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("[%d] %s", i+1, tab.Name)))
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Background(ColorBgAlt).
		Padding(0, 1).
		Render(strings.Join(tabs, " "))
}

func (a *App) renderContent() string {
	height := a.height - 4

	var content string
	switch a.activeView {
	case ViewInstalled:
		content = a.renderInstalledView()
	case ViewSearch:
		content = a.renderSearchView()
	case ViewUpdates:
		content = a.renderUpdatesView()
	case ViewDetails:
		content = a.renderDetailsView()
	case ViewHelp:
		content = a.renderHelpView()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Render(content)
}

func (a *App) renderInstalledView() string {
	var b strings.Builder

	apps := a.FilteredInstalled()

	title := fmt.Sprintf("Installed Apps (%d)", len(apps))
	if a.filterText != "" {
		title += fmt.Sprintf(" - Filter: %s", a.filterText)
	}
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")

	if a.inputMode && a.inputPrompt == "Filter: " {
		b.WriteString(a.styles.InputPrompt.Render("Filter: "))
		b.WriteString(a.textInput.View())
		b.WriteString("\n\n")
	}

	if len(apps) == 0 {
		b.WriteString(a.styles.Description.Render("No apps found"))
		return b.String()
	}

	visibleHeight := a.VisibleHeight()
	scroll := a.Scroll()
	cursor := a.Cursor()

	end := scroll + visibleHeight
	if end > len(apps) {
		end = len(apps)
	}

	for i := scroll; i < end; i++ {
		b.WriteString(a.renderAppLine(apps[i], i == cursor))
		b.WriteString("\n")
	}

	if len(apps) > visibleHeight {
		b.WriteString(a.styles.Description.Render(fmt.Sprintf("\n  (%d/%d)", cursor+1, len(apps))))
	}

	return b.String()
}

func (a *App) renderAppLine(app scoop.App, selected bool) string {
	cursor := "  "
	if selected {
		cursor = a.styles.ListItemSelected.Render("> ")
	}

	name := a.styles.AppName.Render(app.Name)
	if !selected {
		name = lipgloss.NewStyle().Foreground(ColorText).Render(app.Name)
	}

	version := a.styles.AppVersion.Render(app.Version)
	bucket := a.styles.AppBucket.Render(app.Bucket)

	desc := truncate(app.Description, a.width-50)

	return fmt.Sprintf("%s%-25s %-12s %-10s %s", cursor, name, version, bucket,
		a.styles.Description.Render(desc))
}

func (a *App) renderEntryLine(entry scoop.CatalogEntry, selected bool) string {
	cursor := "  "
	if selected {
		cursor = a.styles.ListItemSelected.Render("> ")
	}

	name := a.styles.AppName.Render(entry.Name)
	if !selected {
		name = lipgloss.NewStyle().Foreground(ColorText).Render(entry.Name)
	}

	mark := "   "
	if entry.Installed {
		mark = a.styles.Success.Render(" * ")
	}

	version := a.styles.AppVersion.Render(entry.Version)
	bucket := a.styles.AppBucket.Render(entry.Bucket)

	desc := truncate(entry.Description, a.width-55)

	return fmt.Sprintf("%s%s%-25s %-12s %-10s %s", cursor, mark, name, version, bucket,
		a.styles.Description.Render(desc))
}

func (a *App) renderSearchView() string {
	var b strings.Builder

	if a.inputMode && a.inputPrompt == "Search: " {
		b.WriteString(a.styles.InputPrompt.Render("Search: "))
		b.WriteString(a.textInput.View())
		b.WriteString("\n\n")
	} else if a.searchQuery != "" {
		b.WriteString(a.styles.Title.Render(fmt.Sprintf("Results for '%s' (%d)", a.searchQuery, len(a.searchResults))))
		b.WriteString("\n\n")
	} else {
		b.WriteString(a.styles.Title.Render("Search Buckets"))
		b.WriteString("\n")
		b.WriteString(a.styles.Description.Render("Press s to search"))
		b.WriteString("\n\n")
	}

	if len(a.searchResults) == 0 {
		return b.String()
	}

	visibleHeight := a.VisibleHeight() - 2
	scroll := a.Scroll()
	cursor := a.Cursor()

	end := scroll + visibleHeight
	if end > len(a.searchResults) {
		end = len(a.searchResults)
	}

	for i := scroll; i < end; i++ {
		b.WriteString(a.renderEntryLine(a.searchResults[i], i == cursor))
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderUpdatesView() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Version Checks"))
	b.WriteString("\n\n")

	if len(a.checkResults) == 0 {
		if a.loading {
			b.WriteString(a.styles.Description.Render("Checking..."))
		} else {
			b.WriteString(a.styles.Description.Render("Press c to check installed apps for new versions"))
		}
		return b.String()
	}

	visibleHeight := a.VisibleHeight()
	scroll := a.Scroll()
	cursor := a.Cursor()

	end := scroll + visibleHeight
	if end > len(a.checkResults) {
		end = len(a.checkResults)
	}

	for i := scroll; i < end; i++ {
		res := a.checkResults[i]

		prefix := "  "
		if i == cursor {
			prefix = a.styles.ListItemSelected.Render("> ")
		}

		var status string
		switch {
		case res.Latest == "":
			status = a.styles.Description.Render("unknown")
		case res.HasUpdate():
			status = a.styles.Warning.Render(res.App.Version + " -> " + res.Latest)
		default:
			status = a.styles.Success.Render("up to date")
		}

		b.WriteString(fmt.Sprintf("%s%-25s %s\n", prefix,
			a.styles.AppName.Render(res.App.Name), status))
	}

	return b.String()
}

func (a *App) renderDetailsView() string {
	var b strings.Builder

	if a.selectedApp == nil {
		b.WriteString(a.styles.Error.Render("No app selected"))
		return b.String()
	}

	app := a.selectedApp

	b.WriteString(a.styles.Title.Render(app.Name))
	b.WriteString(" ")
	b.WriteString(a.styles.AppBucket.Render(app.Bucket))
	b.WriteString("\n\n")

	b.WriteString(a.styles.Info.Render("Version: "))
	b.WriteString(a.styles.AppVersion.Render(app.Version))
	b.WriteString("\n\n")

	if app.Description != "" {
		b.WriteString(a.styles.Description.Render(app.Description))
		b.WriteString("\n\n")
	}

	if app.Homepage != "" {
		b.WriteString(a.styles.Info.Render("Homepage: "))
		b.WriteString(app.Homepage)
		b.WriteString("\n")
	}

	if app.Executable != "" {
		b.WriteString(a.styles.Info.Render("Executable: "))
		b.WriteString(app.Executable)
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Info.Render("Directory: "))
	b.WriteString(app.InstallDir)
	b.WriteString("\n\n")

	b.WriteString("  [u] Update   [d] Uninstall   [esc] Back\n")

	return b.String()
}

func (a *App) renderHelpView() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "Navigation",
			keys: []struct{ key, desc string }{
				{"j/k or Up/Down", "Move cursor"},
				{"g/G", "Go to top/bottom"},
				{"1-3", "Switch tabs"},
				{"tab/shift+tab", "Next/previous tab"},
			},
		},
		{
			title: "Actions",
			keys: []struct{ key, desc string }{
				{"Enter", "View details"},
				{"s", "Search buckets"},
				{"/", "Filter installed list"},
				{"i", "Install selected"},
				{"d", "Uninstall selected"},
				{"u", "Update selected"},
				{"c", "Check for new versions"},
				{"r", "Refresh current view"},
			},
		},
		{
			title: "General",
			keys: []struct{ key, desc string }{
				{"?", "Toggle help"},
				{"Esc/b", "Go back"},
				{"q", "Quit"},
			},
		},
	}

	for _, section := range sections {
		b.WriteString(a.styles.Info.Render(section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			b.WriteString(fmt.Sprintf("  %-20s %s\n",
				a.styles.HelpKey.Render(k.key),
				a.styles.HelpDesc.Render(k.desc)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderFooter() string {
	var hints []string

	switch a.activeView {
	case ViewInstalled:
		hints = []string{"enter:details", "/:filter", "u:update", "d:uninstall", "c:check"}
	case ViewSearch:
		hints = []string{"s:search", "i:install"}
	case ViewUpdates:
		hints = []string{"c:check", "u:update"}
	case ViewDetails:
		hints = []string{"u:update", "d:uninstall", "esc:back"}
	default:
		hints = []string{}
	}

	hints = append(hints, "?:help", "q:quit")

	return lipgloss.NewStyle().
		Width(a.width).
		Background(ColorBgAlt).
		Foreground(ColorMuted).
		Padding(0, 1).
		Render(strings.Join(hints, "  "))
}

func (a *App) renderDialog() string {
	dialog := a.styles.Dialog.Render(
		a.styles.DialogTitle.Render(a.confirmTitle) + "\n\n" +
			a.styles.Success.Render("[Y]es") + " " +
			lipgloss.NewStyle().Foreground(ColorMuted).Render("[N]o"),
	)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, dialog,
		lipgloss.WithWhitespaceChars(" "))
}

func (a *App) startSearch() {
	a.textInput.SetValue("")
	a.textInput.Focus()
	a.StartInput("Search: ", func(query string) {
		if query == "" {
			return
		}
		a.SetLoading(true, "Searching...")
		a.pendingCmd = a.searchCatalog(query)
	})
}

func (a *App) startFilter() {
	a.textInput.SetValue(a.filterText)
	a.textInput.Focus()
	a.StartInput("Filter: ", func(filter string) {
		a.filterText = filter
		a.SetCursor(0)
		a.SetScroll(0)
	})
}

// Async commands

func (a *App) loadApps(force bool) tea.Cmd {
	return func() tea.Msg {
		const key = "installed"
		if !force {
			if apps, ok := a.appCache.Get(key); ok {
				return appsLoadedMsg{apps: apps}
			}
		}

		apps, err := a.registry.Installed(context.Background())
		if err != nil {
			return appsLoadedMsg{err: err}
		}
		a.appCache.Put(key, apps)
		return appsLoadedMsg{apps: apps}
	}
}

func (a *App) searchCatalog(query string) tea.Cmd {
	return func() tea.Msg {
		const key = "catalog"
		entries, ok := a.catalogCache.Get(key)
		if !ok {
			var err error
			entries, err = a.registry.Catalog(context.Background())
			if err != nil {
				return searchResultsMsg{query: query, err: err}
			}
			a.catalogCache.Put(key, entries)
		}

		matches := fuzzyEntries(entries, query)
		return searchResultsMsg{query: query, results: matches}
	}
}

func (a *App) loadChecks(force bool) tea.Cmd {
	return func() tea.Msg {
		a.SetLoading(true, "Checking versions...")
		const key = "checks"
		if !force {
			if results, ok := a.checkCache.Get(key); ok {
				return checksLoadedMsg{results: results}
			}
		}

		ctx := context.Background()
		apps, err := a.registry.Installed(ctx)
		if err != nil {
			return checksLoadedMsg{err: err}
		}

		results := a.registry.CheckAll(ctx, apps)
		sort.Slice(results, func(i, j int) bool {
			return results[i].App.Name < results[j].App.Name
		})
		a.checkCache.Put(key, results)
		return checksLoadedMsg{results: results}
	}
}

func (a *App) installApp(spec string) tea.Cmd {
	return func() tea.Msg {
		a.SetLoading(true, "Installing "+spec+"...")
		if err := a.registry.Install(context.Background(), spec); err != nil {
			return operationCompleteMsg{err: err}
		}
		return operationCompleteMsg{message: "Installed " + spec}
	}
}

func (a *App) uninstallApp(name string) tea.Cmd {
	return func() tea.Msg {
		a.SetLoading(true, "Uninstalling "+name+"...")
		if err := a.registry.Uninstall(context.Background(), name); err != nil {
			return operationCompleteMsg{err: err}
		}
		if a.activeView == ViewDetails {
			a.GoBack()
		}
		return operationCompleteMsg{message: "Uninstalled " + name}
	}
}

func (a *App) updateApp(name string) tea.Cmd {
	return func() tea.Msg {
		a.SetLoading(true, "Updating "+name+"...")
		if err := a.registry.Update(context.Background(), name); err != nil {
			return operationCompleteMsg{err: err}
		}
		return operationCompleteMsg{message: "Updated " + name}
	}
}

// truncate shortens s to max runes, whole characters only. Non-positive
// widths pass the string through untouched.
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return s
}

// Run starts the TUI application
func Run(registry *scoop.Registry, cfg *config.Config) error {
	app := NewApp(registry, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
