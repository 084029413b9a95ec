// Package tui provides the interactive Bubble Tea dashboard for costplan.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/config"
	"github.com/theirongolddev/costplan/internal/model"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/source"
	"github.com/theirongolddev/costplan/internal/store"
	"github.com/theirongolddev/costplan/internal/tui/components"
	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the portfolio finishes loading.
type DataLoadedMsg struct {
	Result   *pipeline.LoadResult
	Err      error
	LoadTime time.Duration
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshDataMsg is sent when a background reload completes.
type RefreshDataMsg DataLoadedMsg

const (
	tabOverview = iota
	tabProjects
	tabCompare
)

// Options configures the dashboard.
type Options struct {
	Engine       *pipeline.Engine
	PortfolioDir string
	SortBy       string
	UseCache     bool
	NeedSetup    bool
}

// App is the root Bubble Tea model.
type App struct {
	eng      *pipeline.Engine
	dir      string
	useCache bool

	// Data
	projects   []model.PortfolioProject
	fileErrors int
	loaded     bool
	loadErr    error
	loadTime   time.Duration
	refreshing bool

	// Derived from projects
	timeline   []model.TimelineEntry
	agg        model.PortfolioAggregate
	comparison []model.ProjectComparison

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    int // selected project on the Projects tab
	sortIdx   int // index into pipeline.SortOrders

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool
	setupErr  error

	// Loading - channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	sortIdx := max(slices.Index(pipeline.SortOrders, opts.SortBy), 0)

	return App{
		eng:       opts.Engine,
		dir:       opts.PortfolioDir,
		useCache:  opts.UseCache,
		needSetup: opts.NeedSetup,
		sortIdx:   sortIdx,
		spinner:   sp,
		loadSub:   make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.eng, a.dir, a.useCache, a.loadSub),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	a.timeline = a.eng.UnifiedTimeline(a.projects)
	a.agg = a.eng.PortfolioAggregate(a.projects, a.timeline)
	a.comparison = a.eng.CompareProjects(a.projects, pipeline.SortOrders[a.sortIdx])
	a.cursor = min(max(a.cursor, 0), max(len(a.projects)-1, 0))
}

func (a *App) applyResult(r *pipeline.LoadResult, err error, took time.Duration) {
	a.loadTime = took
	a.loadErr = err
	if r != nil {
		a.projects = r.Projects
		a.fileErrors = r.FileErrors
	}
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabProjects && a.cursor > 0 {
				a.cursor--
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabProjects && a.cursor < len(a.projects)-1 {
				a.cursor++
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}

		// First-run setup intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if !a.refreshing {
				a.refreshing = true
				return a, refreshDataCmd(a.eng, a.dir, a.useCache)
			}
			return a, nil
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		switch a.activeTab {
		case tabProjects:
			switch key {
			case "j", "down":
				if a.cursor < len(a.projects)-1 {
					a.cursor++
				}
				return a, nil
			case "k", "up":
				if a.cursor > 0 {
					a.cursor--
				}
				return a, nil
			case "g":
				a.cursor = 0
				return a, nil
			case "G":
				a.cursor = max(len(a.projects)-1, 0)
				return a, nil
			}
		case tabCompare:
			if key == "s" {
				a.sortIdx = (a.sortIdx + 1) % len(pipeline.SortOrders)
				a.comparison = a.eng.CompareProjects(a.projects, pipeline.SortOrders[a.sortIdx])
				return a, nil
			}
		}

		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.applyResult(msg.Result, msg.Err, msg.LoadTime)

		if a.needSetup {
			cfg, _ := config.Load()
			a.setupVals = SetupValuesFrom(cfg)
			a.setupForm = NewSetupForm(len(a.projects), a.dir, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case RefreshDataMsg:
		a.refreshing = false
		a.applyResult(msg.Result, msg.Err, msg.LoadTime)
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.needSetup = false
		a.setupForm = nil
		a.setupErr = a.saveSetupConfig()
		if a.setupErr != nil {
			return a, nil
		}
		// Contingency and directory changes need a fresh summarize.
		a.refreshing = true
		return a, refreshDataCmd(a.eng, a.dir, a.useCache)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// saveSetupConfig persists the form answers and applies them to the
// running dashboard.
func (a *App) saveSetupConfig() error {
	cfg, _ := config.Load()
	if err := a.setupVals.Apply(&cfg); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	cli.CurrencySymbol = cfg.Currency.Symbol
	a.eng.ContingencyPercent = cfg.Forecast.ContingencyPercent
	a.sortIdx = max(slices.Index(pipeline.SortOrders, cfg.General.DefaultSort), 0)
	if cfg.General.PortfolioDir != "" {
		a.dir = cfg.General.PortfolioDir
	}
	return config.Save(cfg)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  costplan needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	h := max(a.height, 5)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ costplan"))
	b.WriteString(subtitleStyle.Render(" · Portfolio Cost Planner"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := min(max(a.width-30, 20), 40)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(fmt.Sprintf(" Parsing project files %d/%d\n\n", a.progress, a.progressMax)))
		b.WriteString(components.ProgressBar(float64(a.progress)/float64(a.progressMax), barW))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Scanning " + a.dir))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o p c", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k g G", "Move through projects"},
		{"s", "Cycle comparison order"},
		{"r", "Reload portfolio"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusText() (string, bool) {
	switch {
	case a.loadErr != nil:
		return "load failed: " + a.loadErr.Error(), true
	case a.setupErr != nil:
		return "setup not saved: " + a.setupErr.Error(), true
	case a.fileErrors > 0:
		return fmt.Sprintf("%d file(s) unreadable", a.fileErrors), true
	case a.refreshing:
		return "reloading...", false
	}
	return fmt.Sprintf("%d projects · %s · %.1fs", len(a.projects), a.dir, a.loadTime.Seconds()), false
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	status, warn := a.statusText()
	statusBar := components.RenderStatusBar(w, "[?]help  [r]eload  [q]uit", status, warn)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case len(a.projects) == 0:
		content = a.renderEmpty(cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw, contentH)
	case a.activeTab == tabProjects:
		content = a.renderProjectsTab(cw, contentH)
	case a.activeTab == tabCompare:
		content = a.renderCompareTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderEmpty(cw int) string {
	body := fmt.Sprintf("No project files found in %s.\n\nAdd .json or .yaml project files there and press r, or run `costplan setup` to pick another directory.", a.dir)
	return "\n" + components.ContentCard("Empty portfolio", body, cw)
}

// ─── Loading ────────────────────────────────────────────────────

// loadPortfolio tries the cache first and falls back to a full parse.
func loadPortfolio(eng *pipeline.Engine, dir string, useCache bool, progressFn pipeline.ProgressFunc) (*pipeline.LoadResult, error) {
	ctx := context.Background()
	if useCache {
		if cache, err := store.Open(pipeline.CachePath()); err == nil {
			cr, loadErr := eng.LoadWithCache(ctx, dir, cache, progressFn)
			_ = cache.Close()
			if loadErr == nil {
				return &cr.LoadResult, nil
			}
		}
	}
	return eng.Load(ctx, dir, progressFn)
}

// loadDataCmd starts loading in a background goroutine. It streams
// ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(eng *pipeline.Engine, dir string, useCache bool, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so workers aren't stalled; the next update catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			result, err := loadPortfolio(eng, dir, useCache, progressFn)
			sub <- DataLoadedMsg{Result: result, Err: err, LoadTime: time.Since(start)}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// refreshDataCmd reloads the portfolio in the background (no progress UI).
func refreshDataCmd(eng *pipeline.Engine, dir string, useCache bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := loadPortfolio(eng, dir, useCache, nil)
		return RefreshDataMsg{Result: result, Err: err, LoadTime: time.Since(start)}
	}
}

// CountProjectFiles reports how many project files dir holds, or -1 when
// it cannot be scanned.
func CountProjectFiles(dir string) int {
	files, err := source.ScanDir(dir)
	if err != nil {
		return -1
	}
	return len(files)
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
