package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/loaishar/RealEstateManager/internal/csvio"
	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/session"
	"github.com/loaishar/RealEstateManager/internal/tui/components"
)

type formKind int

const (
	formNone formKind = iota
	formAddPayment
	formEditPayment
	formDeletePayment
	formAddUnit
	formDeleteUnit
	formImportPath
	formMapping
	formSetup
)

func (k formKind) title() string {
	switch k {
	case formAddPayment:
		return "New payment"
	case formEditPayment:
		return "Edit payment"
	case formDeletePayment:
		return "Delete payment"
	case formAddUnit:
		return "New unit"
	case formDeleteUnit:
		return "Delete unit"
	case formImportPath:
		return "Import payments"
	case formMapping:
		return "Map columns"
	case formSetup:
		return "remanager setup"
	default:
		return ""
	}
}

// mappingFieldsPerGroup keeps each page of column selects short enough
// for small terminals.
const mappingFieldsPerGroup = 4

// formValues holds the values huh fields write into. It lives on the heap
// so the bound pointers survive copies of App.
type formValues struct {
	// payment add/edit/delete
	paymentID    string
	milestone    string
	dueDate      string
	amount       string
	covered      bool
	transferred  string
	totalCovered string
	remaining    string

	unitName  string
	confirmed bool
	path      string

	// column mapping, index-aligned with headers
	headers []string
	mapping []model.Field

	setup *SetupValues
}

func paymentValues(p model.Payment) *formValues {
	return &formValues{
		paymentID:    p.ID,
		milestone:    p.Milestone,
		dueDate:      p.DueDate.Format(model.DateLayout),
		amount:       p.Amount.String(),
		covered:      p.Covered,
		transferred:  optionalString(p.Transferred),
		totalCovered: optionalString(p.TotalCovered),
		remaining:    optionalString(p.Remaining),
	}
}

// draft converts the entered text into a payment draft.
func (v *formValues) draft() (model.Draft, error) {
	due, ok := csvio.ParseDate(v.dueDate)
	if !ok {
		return model.Draft{}, fmt.Errorf("invalid due date %q", v.dueDate)
	}
	amount, err := parseOptionalAmount(v.amount)
	if err != nil {
		return model.Draft{}, err
	}
	d := model.Draft{
		Milestone: strings.TrimSpace(v.milestone),
		DueDate:   due,
		Amount:    amount,
		Covered:   v.covered,
	}
	if d.Transferred, err = parseOptionalAmount(v.transferred); err != nil {
		return model.Draft{}, err
	}
	if d.TotalCovered, err = parseOptionalAmount(v.totalCovered); err != nil {
		return model.Draft{}, err
	}
	if d.Remaining, err = parseOptionalAmount(v.remaining); err != nil {
		return model.Draft{}, err
	}
	return d, nil
}

// mappingValue returns the chosen column mapping.
func (v *formValues) mappingValue() csvio.Mapping {
	m := make(csvio.Mapping, len(v.headers))
	for i, h := range v.headers {
		if v.mapping[i] != model.FieldNone {
			m[h] = v.mapping[i]
		}
	}
	return m
}

func optionalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func parseOptionalAmount(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return &d, nil
}

// ─── Validators ─────────────────────────────────────────────────

func requiredText(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("due date is required")
	}
	if _, ok := csvio.ParseDate(s); !ok {
		return errors.New("use a date like 2024-09-10")
	}
	return nil
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("amount is required")
	}
	return validateOptionalAmount(s)
}

func validateOptionalAmount(s string) error {
	_, err := parseOptionalAmount(s)
	return err
}

func validateUnitName(existing []string) func(string) error {
	return func(s string) error {
		name := strings.TrimSpace(s)
		if name == "" {
			return errors.New("unit name is required")
		}
		if slices.Contains(existing, name) {
			return fmt.Errorf("unit %q already exists", name)
		}
		return nil
	}
}

// ─── Form builders ──────────────────────────────────────────────

func newPaymentForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Milestone").
				Placeholder("Within 3 month(s)").
				Value(&v.milestone).
				Validate(requiredText("milestone")),
			huh.NewInput().
				Title("Due date").
				Placeholder("2024-09-10").
				Value(&v.dueDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Amount").
				Placeholder("13910").
				Value(&v.amount).
				Validate(validateAmount),
			huh.NewConfirm().
				Title("Covered?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.covered),
		),
		huh.NewGroup(
			huh.NewNote().
				Title("Settlement").
				Description("Optional. Leave blank when unknown."),
			huh.NewInput().
				Title("Transferred").
				Value(&v.transferred).
				Validate(validateOptionalAmount),
			huh.NewInput().
				Title("Total covered").
				Value(&v.totalCovered).
				Validate(validateOptionalAmount),
			huh.NewInput().
				Title("Remaining").
				Value(&v.remaining).
				Validate(validateOptionalAmount),
		),
	).WithShowHelp(true)
}

func newUnitForm(v *formValues, existing []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Unit name").
				Placeholder("Unit C").
				Value(&v.unitName).
				Validate(validateUnitName(existing)),
		),
	).WithShowHelp(true)
}

func newConfirmForm(question, detail, action string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Description(detail).
				Affirmative(action).
				Negative("Cancel").
				Value(&v.confirmed),
		),
	)
}

func newImportForm(v *formValues, unit string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File").
				Description(fmt.Sprintf("CSV, TXT or XLSX; rows are appended to %s", unit)).
				Placeholder(csvio.SampleFilename).
				Value(&v.path).
				Validate(requiredText("file path")),
		),
	).WithShowHelp(true)
}

func newMappingForm(imp session.Import, v *formValues, unit string, lastErr error) *huh.Form {
	headers := imp.Table.Headers

	options := []huh.Option[model.Field]{huh.NewOption("skip", model.FieldNone)}
	for _, f := range model.Fields {
		options = append(options, huh.NewOption(f.Label(), f))
	}

	var notes strings.Builder
	fmt.Fprintf(&notes, "%d rows, %d columns", len(imp.Table.Rows), len(headers))
	for _, w := range v.mappingValue().Check(headers) {
		notes.WriteString("\n! " + w.Message)
	}
	if lastErr != nil {
		notes.WriteString("\n✗ " + lastErr.Error())
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewNote().
				Title(imp.Source).
				Description(notes.String()),
		),
	}

	var fields []huh.Field
	for i, h := range headers {
		sel := huh.NewSelect[model.Field]().
			Title(h).
			Options(options...).
			Value(&v.mapping[i])
		if len(imp.Table.Rows) > 0 {
			sel = sel.Description("e.g. " + truncStr(imp.Table.Rows[0][h], 40))
		}
		fields = append(fields, sel)
		if len(fields) == mappingFieldsPerGroup || i == len(headers)-1 {
			groups = append(groups, huh.NewGroup(fields...))
			fields = nil
		}
	}

	v.confirmed = true
	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Import %d rows into %s?", len(imp.Table.Rows), unit)).
			Affirmative("Import").
			Negative("Cancel").
			Value(&v.confirmed),
	))

	return huh.NewForm(groups...).WithShowHelp(true)
}

// ─── Opening and closing forms ──────────────────────────────────

func (a *App) openForm(kind formKind, v *formValues, form *huh.Form) tea.Cmd {
	if a.width > 0 {
		form = form.WithWidth(a.formWidth()).WithHeight(a.formHeight())
	}
	a.form = form
	a.formKind = kind
	a.formVals = v
	return form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
}

func (a *App) openPaymentForm(p *model.Payment) tea.Cmd {
	if p == nil {
		v := &formValues{}
		return a.openForm(formAddPayment, v, newPaymentForm(v))
	}
	v := paymentValues(*p)
	return a.openForm(formEditPayment, v, newPaymentForm(v))
}

func (a *App) openDeletePaymentForm(p model.Payment) tea.Cmd {
	v := &formValues{paymentID: p.ID, milestone: p.Milestone}
	detail := fmt.Sprintf("%s due %s", a.currency.Format(p.Amount), p.DueDate.Format(model.DateLayout))
	return a.openForm(formDeletePayment, v,
		newConfirmForm(fmt.Sprintf("Delete %q?", p.Milestone), detail, "Delete", v))
}

func (a *App) openUnitForm() tea.Cmd {
	v := &formValues{}
	return a.openForm(formAddUnit, v, newUnitForm(v, a.store.Ledger().Names()))
}

func (a *App) openDeleteUnitForm(unit string) tea.Cmd {
	v := &formValues{unitName: unit}
	u, _ := a.store.Ledger().Unit(unit)
	detail := fmt.Sprintf("Removes the unit and its %d payments.", len(u.Payments))
	return a.openForm(formDeleteUnit, v,
		newConfirmForm(fmt.Sprintf("Delete %s?", unit), detail, "Delete", v))
}

func (a *App) openImportForm() tea.Cmd {
	v := &formValues{}
	return a.openForm(formImportPath, v, newImportForm(v, a.store.Ledger().Active()))
}

// openMappingForm shows the column mapping for a pending import. Choices
// already made are kept when the form is reopened after a failed confirm.
func (a *App) openMappingForm(imp session.Import, lastErr error) tea.Cmd {
	v := a.formVals
	if a.formKind != formMapping || v == nil || !slices.Equal(v.headers, imp.Table.Headers) {
		v = &formValues{headers: imp.Table.Headers, mapping: make([]model.Field, len(imp.Table.Headers))}
		for i, h := range imp.Table.Headers {
			v.mapping[i] = imp.Suggested[h]
		}
	}
	return a.openForm(formMapping, v, newMappingForm(imp, v, a.store.Ledger().Active(), lastErr))
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.completeForm()
	case huh.StateAborted:
		return a.cancelForm(), nil
	}
	return a, cmd
}

// cancelForm closes the open form without applying it. A cancelled
// mapping step discards the pending import.
func (a App) cancelForm() App {
	switch a.formKind {
	case formMapping:
		if err := a.store.CancelImport(); err != nil {
			a.log.Warn("cancel import", "err", err)
		}
		a.setFlash("Import cancelled")
	case formDeletePayment, formDeleteUnit:
		a.setFlash("Nothing deleted")
	default:
		a.flash = components.Flash{}
	}
	a.closeForm()
	return a
}

// completeForm applies a submitted form to the store.
func (a App) completeForm() (App, tea.Cmd) {
	v := a.formVals
	kind := a.formKind
	a.closeForm()

	switch kind {
	case formAddPayment:
		d, err := v.draft()
		if err != nil {
			a.setError(err)
			return a, nil
		}
		p, err := a.store.AddPayment(d)
		if err != nil {
			a.setError(err)
			return a, nil
		}
		a.sched.selectID(p.ID, a.visiblePayments())
		a.setFlash("Added " + p.Milestone)

	case formEditPayment:
		d, err := v.draft()
		if err != nil {
			a.setError(err)
			return a, nil
		}
		if err := a.store.EditPayment(v.paymentID, d); err != nil {
			a.setError(err)
			return a, nil
		}
		a.sched.selectID(v.paymentID, a.visiblePayments())
		a.setFlash("Updated " + d.Milestone)

	case formDeletePayment:
		if !v.confirmed {
			a.setFlash("Nothing deleted")
			return a, nil
		}
		if err := a.store.DeletePayment(v.paymentID); err != nil {
			a.setError(err)
			return a, nil
		}
		a.sched.detail = false
		a.sched.clamp(len(a.visiblePayments()))
		a.setFlash("Deleted " + v.milestone)

	case formAddUnit:
		name := strings.TrimSpace(v.unitName)
		if err := a.store.AddUnit(name); err != nil {
			a.setError(err)
			return a, nil
		}
		a.sched.reset()
		a.setFlash("Added unit " + name)

	case formDeleteUnit:
		if !v.confirmed {
			a.setFlash("Nothing deleted")
			return a, nil
		}
		if err := a.store.DeleteUnit(v.unitName); err != nil {
			a.setError(err)
			return a, nil
		}
		a.sched.reset()
		a.setFlash("Deleted unit " + v.unitName)

	case formImportPath:
		a.busy = true
		return a, tea.Batch(importFileCmd(strings.TrimSpace(v.path)), a.spinner.Tick)

	case formMapping:
		return a.confirmImport(v)

	case formSetup:
		return a.completeSetup(v.setup)
	}
	return a, nil
}

func (a App) confirmImport(v *formValues) (App, tea.Cmd) {
	imp, ok := a.store.PendingImport()
	if !ok {
		return a, nil
	}
	if !v.confirmed {
		_ = a.store.CancelImport()
		a.setFlash("Import cancelled")
		return a, nil
	}

	res, err := a.store.ConfirmImport(v.mappingValue())
	if err != nil {
		// Keep the import pending and let the user fix the mapping.
		a.formKind, a.formVals = formMapping, v
		return a, a.openMappingForm(imp, err)
	}

	a.sched.reset()
	msg := fmt.Sprintf("Imported %d payments from %s", len(res.Drafts), imp.Source)
	if n := len(res.Warnings); n > 0 {
		msg += fmt.Sprintf(" (%d warnings)", n)
	}
	a.setFlash(msg)
	return a, nil
}
