// Package tui provides the interactive Bubble Tea dashboard for remanager.
package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/loaishar/RealEstateManager/internal/cli"
	"github.com/loaishar/RealEstateManager/internal/config"
	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/session"
	"github.com/loaishar/RealEstateManager/internal/tui/components"
	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

// Options configures the dashboard.
type Options struct {
	Store      *session.Store
	Config     config.Config
	ConfigPath string    // settings are saved here; empty means config.ConfigPath()
	AsOf       time.Time // reference date for statuses; zero means today
	Logger     *log.Logger
	NeedSetup  bool // open the setup wizard first
}

// App is the root Bubble Tea model.
type App struct {
	store    *session.Store
	cfg      config.Config
	cfgPath  string
	currency cli.Currency
	asOf     time.Time
	log      *log.Logger

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     components.Flash

	// Per-tab state
	sched    scheduleState
	settings settingsState

	// Modal huh form. While set it receives every key.
	form     *huh.Form
	formKind formKind
	formVals *formValues

	// File import/export in flight
	busy    bool
	spinner spinner.Model
}

const (
	tabSchedule = iota
	tabAnalytics
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
	maxFormWidth     = 72
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := opts.Store
	if store == nil {
		store = session.New(ledger.Ledger{}, logger)
	}
	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		store:    store,
		cfg:      opts.Config,
		cfgPath:  cfgPath,
		currency: cli.NewCurrency(opts.Config.Currency),
		asOf:     model.DateOf(asOf),
		log:      logger.WithPrefix("tui"),
		spinner:  sp,
	}
	if opts.NeedSetup {
		a.openSetupForm()
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth()).WithHeight(a.formHeight())
		}
		return a, nil

	case importLoadedMsg:
		return a.handleImportLoaded(msg)

	case fileWrittenMsg:
		a.busy = false
		if msg.err != nil {
			a.setError(fmt.Errorf("writing %s: %w", msg.what, msg.err))
			return a, nil
		}
		a.log.Info("file written", "what", msg.what, "path", msg.path)
		a.setFlash(fmt.Sprintf("Saved %s to %s", msg.what, msg.path))
		return a, nil

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Forward everything else (huh group changes, cursor blinks) to the form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabSchedule && !a.sched.searching {
			a.sched.move(-1, len(a.visiblePayments()))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabSchedule && !a.sched.searching {
			a.sched.move(1, len(a.visiblePayments()))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Modal forms capture all input until completed or cancelled.
	if a.form != nil {
		if key == "esc" {
			return a.cancelForm(), nil
		}
		return a.updateForm(msg)
	}

	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.activeTab == tabSchedule && a.sched.searching {
		return a.updateScheduleSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.flash = components.Flash{}

	switch a.activeTab {
	case tabSchedule:
		if next, cmd, ok := a.handleScheduleKey(key); ok {
			return next, cmd
		}
	case tabSettings:
		if next, cmd, ok := a.handleSettingsKey(key); ok {
			return next, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "1", "2", "3":
		a.activeTab = components.TabIdxByKey(rune(key[0]))
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "]", "tab":
		a.cycleUnit(1)
	case "[", "shift+tab":
		a.cycleUnit(-1)
	case "U":
		return a, a.openUnitForm()
	case "D":
		if unit := a.store.Ledger().Active(); unit != "" {
			return a, a.openDeleteUnitForm(unit)
		}
	case "i":
		if a.busy {
			return a, nil
		}
		if a.store.Ledger().Active() == "" {
			a.setError(session.ErrNoActiveUnit)
			return a, nil
		}
		return a, a.openImportForm()
	case "E":
		return a.export(formatCSV)
	case "W":
		return a.export(formatXLSX)
	case "S":
		if a.busy {
			return a, nil
		}
		a.busy = true
		return a, tea.Batch(sampleCmd(a.cfg.General.ExportPath()), a.spinner.Tick)
	}
	return a, nil
}

// cycleUnit makes the next (or previous) unit active.
func (a *App) cycleUnit(step int) {
	l := a.store.Ledger()
	names := l.Names()
	if len(names) < 2 {
		return
	}
	i := slices.Index(names, l.Active())
	next := names[(i+step+len(names))%len(names)]
	if err := a.store.SelectUnit(next); err != nil {
		a.setError(err)
		return
	}
	a.sched.reset()
}

func (a App) export(format string) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	unit, ok := a.store.Ledger().ActiveUnit()
	if !ok {
		a.setError(session.ErrNoActiveUnit)
		return a, nil
	}
	a.busy = true
	return a, tea.Batch(
		exportCmd(a.cfg.General.ExportPath(), unit, format, time.Now()),
		a.spinner.Tick,
	)
}

func (a App) handleImportLoaded(msg importLoadedMsg) (tea.Model, tea.Cmd) {
	a.busy = false
	if msg.err != nil {
		a.log.Warn("import failed", "path", msg.path, "err", msg.err)
		a.setError(fmt.Errorf("reading %s: %w", msg.path, msg.err))
		return a, nil
	}
	imp, err := a.store.BeginImport(msg.path, msg.table)
	if err != nil {
		a.setError(err)
		return a, nil
	}
	return a, a.openMappingForm(imp, nil)
}

func (a *App) setFlash(text string) {
	a.flash = components.Flash{Text: text}
}

func (a *App) setError(err error) {
	a.flash = components.Flash{Text: err.Error(), Err: true}
}

func (a App) window() int {
	if a.cfg.General.UpcomingWindowDays > 0 {
		return a.cfg.General.UpcomingWindowDays
	}
	return ledger.DefaultUpcomingWindow
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) formWidth() int {
	return max(min(a.width-8, maxFormWidth), 30)
}

func (a App) formHeight() int {
	return max(a.height-6, 10)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  remanager needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	body := titleStyle.Render("◈ "+a.formKind.title()) + "\n\n" + a.form.View()
	if a.flash.Text != "" {
		style := lipgloss.NewStyle().Foreground(t.GreenBright)
		if a.flash.Err {
			style = style.Foreground(t.Red)
		}
		body += "\n" + style.Render(a.flash.Text)
	}
	body += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render("esc cancel")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
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
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1 2 3", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"[ ]", "Previous / Next unit"},
			{"j k g G", "Move in schedule"},
			{"Enter", "Payment details"},
		}},
		{"Schedule", []struct{ key, desc string }{
			{"n", "New payment"},
			{"e", "Edit payment"},
			{"d", "Delete payment"},
			{"/", "Search milestones"},
			{"f", "Cycle status filter"},
		}},
		{"Units & files", []struct{ key, desc string }{
			{"U", "Add unit"},
			{"D", "Delete unit"},
			{"i", "Import CSV / XLSX"},
			{"E", "Export CSV"},
			{"W", "Export XLSX"},
			{"S", "Save sample CSV"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.name))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height
	l := a.store.Ledger()

	// 1. Header: tab bar + unit bar
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		components.RenderUnitBar(l.Names(), l.Active(), w)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.flash, a.statusRight())

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabSchedule:
		content = a.renderScheduleTab(cw, contentH)
	case tabAnalytics:
		content = a.renderAnalyticsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.activeTab == tabSchedule && a.sched.detail:
		return "[esc]back [e]dit [d]elete [?]help"
	case a.activeTab == tabSchedule:
		return "[n]ew [e]dit [d]el [/]search [f]ilter [i]mport [E]xport [?]help"
	case a.activeTab == tabSettings:
		return "[j/k]move [enter]edit [?]help [q]uit"
	default:
		return "[[ ]]unit [U]add unit [?]help [q]uit"
	}
}

func (a App) statusRight() string {
	right := a.cfg.Currency.Code + " · as of " + cli.FormatDate(a.asOf)
	if a.busy {
		right = a.spinner.View() + " working · " + right
	}
	return right
}

// ─── Helpers ────────────────────────────────────────────────────

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

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
