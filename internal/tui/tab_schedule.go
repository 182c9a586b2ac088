package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/analytics"
	"github.com/loaishar/RealEstateManager/internal/cli"
	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/session"
	"github.com/loaishar/RealEstateManager/internal/tui/components"
	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

// scheduleState holds the schedule tab state.
type scheduleState struct {
	cursor int
	offset int  // first visible row
	detail bool // full payment detail instead of the table

	searching   bool
	searchInput textinput.Model
	search      string
	status      model.Status // "" shows every status
}

func (s *scheduleState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func (s *scheduleState) clamp(n int) {
	s.cursor = min(s.cursor, n-1)
	s.cursor = max(s.cursor, 0)
	if n == 0 {
		s.detail = false
	}
}

// reset returns to the top of an unfiltered table, e.g. after switching
// units.
func (s *scheduleState) reset() {
	s.cursor = 0
	s.offset = 0
	s.detail = false
	s.search = ""
	s.status = ""
}

// selectID moves the cursor to the payment with id, if it is visible.
func (s *scheduleState) selectID(id string, visible []model.Payment) {
	if i := slices.IndexFunc(visible, func(p model.Payment) bool { return p.ID == id }); i >= 0 {
		s.cursor = i
		return
	}
	s.clamp(len(visible))
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "milestone contains..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 40
	return ti
}

// nextStatusFilter cycles "" -> each status -> "".
func nextStatusFilter(s model.Status) model.Status {
	i := slices.Index(model.Statuses, s)
	if i == len(model.Statuses)-1 {
		return ""
	}
	return model.Statuses[i+1]
}

// visiblePayments returns the active unit's payments after search and
// status filtering.
func (a App) visiblePayments() []model.Payment {
	u, ok := a.store.Ledger().ActiveUnit()
	if !ok {
		return nil
	}
	return ledger.Filter(u.Payments, ledger.Query{
		Search: a.sched.search,
		Status: a.sched.status,
		AsOf:   a.asOf,
		Window: a.window(),
	})
}

func (a App) selectedPayment() (model.Payment, bool) {
	visible := a.visiblePayments()
	if a.sched.cursor < 0 || a.sched.cursor >= len(visible) {
		return model.Payment{}, false
	}
	return visible[a.sched.cursor], true
}

// handleScheduleKey handles schedule keys. ok is false when the key is not
// a schedule key.
func (a App) handleScheduleKey(key string) (next App, cmd tea.Cmd, ok bool) {
	ss := &a.sched
	n := len(a.visiblePayments())

	if ss.detail {
		switch key {
		case "esc", "q", "enter":
			ss.detail = false
			return a, nil, true
		}
	}

	switch key {
	case "j", "down":
		ss.move(1, n)
	case "k", "up":
		ss.move(-1, n)
	case "g", "home":
		ss.cursor, ss.offset = 0, 0
	case "G", "end":
		ss.move(n, n)
	case "enter":
		ss.detail = n > 0
	case "/":
		ss.searching = true
		ss.searchInput = newSearchInput()
		ss.searchInput.SetValue(ss.search)
		ss.searchInput.Focus()
		return a, ss.searchInput.Cursor.BlinkCmd(), true
	case "f":
		ss.status = nextStatusFilter(ss.status)
		ss.cursor, ss.offset = 0, 0
	case "esc":
		if ss.search == "" && ss.status == "" {
			return a, nil, false
		}
		ss.search, ss.status = "", ""
		ss.cursor, ss.offset = 0, 0
	case "n":
		if a.store.Ledger().Active() == "" {
			a.setError(session.ErrNoActiveUnit)
			return a, nil, true
		}
		return a, a.openPaymentForm(nil), true
	case "e":
		p, found := a.selectedPayment()
		if !found {
			return a, nil, true
		}
		return a, a.openPaymentForm(&p), true
	case "d":
		p, found := a.selectedPayment()
		if !found {
			return a, nil, true
		}
		return a, a.openDeletePaymentForm(p), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

// updateScheduleSearch handles key events while in search mode.
func (a App) updateScheduleSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.sched.search = strings.TrimSpace(a.sched.searchInput.Value())
		a.sched.searching = false
		a.sched.cursor, a.sched.offset = 0, 0
		a.sched.detail = false
		return a, nil
	case "esc":
		a.sched.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.sched.searchInput, cmd = a.sched.searchInput.Update(msg)
	return a, cmd
}

// ─── Rendering ──────────────────────────────────────────────────

func (a App) summaryCards(cw int) string {
	u, ok := a.store.Ledger().ActiveUnit()
	if !ok {
		return ""
	}
	s := analytics.Summarize(u)
	return components.MetricCardRow([]components.Metric{
		{Label: "Total Value", Value: a.currency.Format(s.TotalAmount),
			Delta: fmt.Sprintf("%d payments", s.Payments)},
		{Label: "Covered Amount", Value: a.currency.Format(s.CoveredAmount),
			Delta: fmt.Sprintf("%d of %d covered", s.CoveredPayments, s.Payments)},
		{Label: "Remaining Balance", Value: a.currency.Format(s.RemainingAmount)},
		{Label: "Progress", Value: cli.FormatPercent(s.CompletionPercentage),
			Delta: a.nextDueLine(u.Payments)},
	}, cw)
}

func (a App) nextDueLine(payments []model.Payment) string {
	p, ok := analytics.NextDue(payments, a.asOf)
	if !ok {
		return "nothing due"
	}
	return "next " + cli.FormatRelativeDays(p.DueDate, a.asOf)
}

func (a App) renderScheduleTab(cw, h int) string {
	t := theme.Active
	l := a.store.Ledger()
	if l.Active() == "" {
		return components.ContentCard("Schedule",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("No units yet. Press U to add one."), cw)
	}

	cards := a.summaryCards(cw)
	tableH := h - lipgloss.Height(cards)

	visible := a.visiblePayments()
	if a.sched.detail && a.sched.cursor < len(visible) {
		return cards + "\n" + a.renderPaymentDetail(visible[a.sched.cursor], cw)
	}
	return cards + "\n" + a.renderScheduleTable(visible, cw, tableH)
}

type scheduleColumn struct {
	title string
	width int
	right bool
}

func (a App) scheduleColumns(inner int) []scheduleColumn {
	cols := []scheduleColumn{
		{"#", 3, true},
		{"Milestone", 0, false},
		{"Due Date", 10, false},
		{"Amount", 16, true},
		{"Cumulative", 16, true},
		{"Status", 9, false},
		{"Covered", 7, false},
	}
	if !a.isCompactLayout() {
		cols = append(cols, scheduleColumn{"Due", 16, false})
	}

	used := 0
	for _, c := range cols {
		used += c.width + 1
	}
	cols[1].width = max(inner-used, 12)
	return cols
}

func (a App) renderScheduleTable(payments []model.Payment, cw, h int) string {
	t := theme.Active
	ss := a.sched
	innerW := components.CardInnerWidth(cw)
	cols := a.scheduleColumns(innerW)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	if ss.searching {
		b.WriteString(ss.searchInput.View())
		b.WriteString("\n")
	}

	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = cli.Pad(c.title, c.width, c.right)
	}
	b.WriteString(headerStyle.Render(strings.Join(cells, " ")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	if len(payments) == 0 {
		msg := "No payments yet. Press n to add one or i to import a file."
		if ss.search != "" || ss.status != "" {
			msg = "No payments match. Press esc to clear the filter."
		}
		b.WriteString(mutedStyle.Render(msg))
		b.WriteString("\n")
	}

	// card border (2) + title (1) + header (2) + hint (2)
	rows := max(h-7, 3)
	if ss.searching {
		rows--
	}
	offset := ss.offset
	if ss.cursor < offset {
		offset = ss.cursor
	}
	if ss.cursor >= offset+rows {
		offset = ss.cursor - rows + 1
	}
	end := min(offset+rows, len(payments))

	for i := offset; i < end; i++ {
		b.WriteString(a.renderScheduleRow(i, payments[i], cols, i == ss.cursor))
		b.WriteString("\n")
	}

	b.WriteString(space.Render(" "))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d", min(ss.cursor+1, len(payments)), len(payments))))
	b.WriteString(mutedStyle.Render("  [enter] details  [/] search  [f] filter  [n/e/d] new/edit/delete"))

	return components.ContentCard(a.scheduleTitle(), b.String(), cw)
}

func (a App) scheduleTitle() string {
	title := "Schedule · " + a.store.Ledger().Active()
	if a.sched.status != "" {
		title += " · " + a.sched.status.Title()
	}
	if a.sched.search != "" {
		title += fmt.Sprintf(" · %q", a.sched.search)
	}
	return title
}

func (a App) renderScheduleRow(idx int, p model.Payment, cols []scheduleColumn, selected bool) string {
	t := theme.Active
	bg := t.Surface
	if selected {
		bg = t.SurfaceBright
	}
	base := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
	if selected {
		base = base.Bold(true)
	}

	status := ledger.ClassifyStatus(p, a.asOf, a.window())
	values := []string{
		fmt.Sprintf("%d", idx+1),
		truncStr(p.Milestone, cols[1].width),
		cli.FormatDate(p.DueDate),
		a.currency.Format(p.Amount),
		a.currency.Format(p.Cumulative),
		status.Title(),
		cli.FormatCovered(p.Covered),
	}
	if len(cols) > len(values) {
		values = append(values, cli.FormatRelativeDays(p.DueDate, a.asOf))
	}

	parts := make([]string, len(values))
	for i, v := range values {
		style := base
		if cols[i].title == "Status" {
			style = style.Foreground(t.StatusColor(status))
		}
		parts[i] = style.Render(cli.Pad(v, cols[i].width, cols[i].right))
	}
	return strings.Join(parts, base.Render(" "))
}

func (a App) renderPaymentDetail(p model.Payment, cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	status := ledger.ClassifyStatus(p, a.asOf, a.window())
	statusStyle := valueStyle.Foreground(t.StatusColor(status)).Bold(true)

	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "Status")) + statusStyle.Render(status.Title()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")
	b.WriteString(line("Due date", cli.FormatDate(p.DueDate)+"  ("+cli.FormatRelativeDays(p.DueDate, a.asOf)+")"))
	b.WriteString(line("Amount", a.currency.Format(p.Amount)))
	b.WriteString(line("Cumulative", a.currency.Format(p.Cumulative)))
	b.WriteString(line("Covered", cli.FormatCovered(p.Covered)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("SETTLEMENT"))
	b.WriteString("\n")
	b.WriteString(line("Transferred", a.currency.FormatOptional(p.Transferred)))
	b.WriteString(line("Total covered", a.currency.FormatOptional(p.TotalCovered)))
	b.WriteString(line("Remaining", a.currency.FormatOptional(p.Remaining)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("id " + p.ID))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("[esc] back  [e] edit  [d] delete"))

	return components.ContentCard(p.Milestone, b.String(), cw)
}
