// Package ledger holds the in-memory payment ledger: units, their ordered
// payment schedules and the active unit selection.
//
// A Ledger value is an immutable snapshot. Every transition returns a new
// Ledger and leaves the receiver untouched, so callers can keep an old
// snapshot around (for example to discard a failed import).
package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// newID generates payment IDs.
var newID = uuid.NewString

// Ledger is a snapshot of all units and the active unit.
type Ledger struct {
	units  map[string]model.Unit
	order  []string
	active string
}

// New builds a ledger from units, assigning IDs to payments that have none
// and recomputing cumulative amounts. The first unit becomes active.
func New(units ...model.Unit) (Ledger, error) {
	l := Ledger{units: make(map[string]model.Unit, len(units))}
	for _, u := range units {
		name := strings.TrimSpace(u.Name)
		if name == "" {
			return Ledger{}, &ValidationError{Fields: []FieldError{{Field: "name", Message: "unit name is required"}}}
		}
		if _, ok := l.units[name]; ok {
			return Ledger{}, &DuplicateUnitError{Name: name}
		}

		payments := make([]model.Payment, len(u.Payments))
		for i, p := range u.Payments {
			if p.ID == "" {
				p.ID = newID()
			}
			p.DueDate = model.DateOf(p.DueDate)
			payments[i] = p
		}
		l.units[name] = model.Unit{Name: name, Payments: RecomputeCumulative(payments)}
		l.order = append(l.order, name)
	}
	if len(l.order) > 0 {
		l.active = l.order[0]
	}
	return l, nil
}

// Len returns the number of units.
func (l Ledger) Len() int {
	return len(l.order)
}

// Names returns unit names in display order.
func (l Ledger) Names() []string {
	return slices.Clone(l.order)
}

// Active returns the active unit name, or "" when the ledger is empty.
func (l Ledger) Active() string {
	return l.active
}

// Unit returns a copy of the named unit.
func (l Ledger) Unit(name string) (model.Unit, bool) {
	u, ok := l.units[name]
	if !ok {
		return model.Unit{}, false
	}
	return model.Unit{Name: u.Name, Payments: slices.Clone(u.Payments)}, true
}

// ActiveUnit returns a copy of the active unit.
func (l Ledger) ActiveUnit() (model.Unit, bool) {
	if l.active == "" {
		return model.Unit{}, false
	}
	return l.Unit(l.active)
}

// Units returns copies of all units in display order.
func (l Ledger) Units() []model.Unit {
	units := make([]model.Unit, 0, len(l.order))
	for _, name := range l.order {
		u, _ := l.Unit(name)
		units = append(units, u)
	}
	return units
}

// Payment looks up a payment by unit and ID.
func (l Ledger) Payment(unit, id string) (model.Payment, bool) {
	u, ok := l.units[unit]
	if !ok {
		return model.Payment{}, false
	}
	i := u.Index(id)
	if i < 0 {
		return model.Payment{}, false
	}
	return u.Payments[i], true
}

// AddUnit creates an empty unit and makes it active.
func (l Ledger) AddUnit(name string) (Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return l, &ValidationError{Fields: []FieldError{{Field: "name", Message: "unit name is required"}}}
	}
	if _, ok := l.units[name]; ok {
		return l, &DuplicateUnitError{Name: name}
	}

	next := l.clone()
	next.units[name] = model.Unit{Name: name}
	next.order = append(next.order, name)
	next.active = name
	return next, nil
}

// DeleteUnit removes a unit and its payments. When the active unit is
// deleted, the first remaining unit becomes active, or none if the ledger
// is now empty.
func (l Ledger) DeleteUnit(name string) (Ledger, error) {
	if _, ok := l.units[name]; !ok {
		return l, &UnitNotFoundError{Name: name}
	}

	next := l.clone()
	delete(next.units, name)
	next.order = slices.DeleteFunc(next.order, func(n string) bool { return n == name })
	if next.active == name {
		next.active = ""
		if len(next.order) > 0 {
			next.active = next.order[0]
		}
	}
	return next, nil
}

// SelectUnit makes an existing unit active.
func (l Ledger) SelectUnit(name string) (Ledger, error) {
	if _, ok := l.units[name]; !ok {
		return l, &UnitNotFoundError{Name: name}
	}
	next := l.clone()
	next.active = name
	return next, nil
}

// AddPayment validates a draft and appends it to the unit's schedule.
// The created payment is returned with its ID and cumulative amount.
func (l Ledger) AddPayment(unit string, d model.Draft) (Ledger, model.Payment, error) {
	u, ok := l.units[unit]
	if !ok {
		return l, model.Payment{}, &UnitNotFoundError{Name: unit}
	}
	if err := ValidateDraft(d); err != nil {
		return l, model.Payment{}, err
	}

	p := normalizeDraft(d).Payment(newID())
	payments := RecomputeCumulative(append(slices.Clone(u.Payments), p))
	return l.withPayments(unit, payments), payments[len(payments)-1], nil
}

// EditPayment replaces the payment with the given ID, keeping its ID and
// position in the schedule.
func (l Ledger) EditPayment(unit, id string, d model.Draft) (Ledger, error) {
	u, ok := l.units[unit]
	if !ok {
		return l, &UnitNotFoundError{Name: unit}
	}
	i := u.Index(id)
	if i < 0 {
		return l, &PaymentNotFoundError{Unit: unit, ID: id}
	}
	if err := ValidateDraft(d); err != nil {
		return l, err
	}

	payments := slices.Clone(u.Payments)
	payments[i] = normalizeDraft(d).Payment(id)
	return l.withPayments(unit, RecomputeCumulative(payments)), nil
}

// DeletePayment removes the payment with the given ID.
func (l Ledger) DeletePayment(unit, id string) (Ledger, error) {
	u, ok := l.units[unit]
	if !ok {
		return l, &UnitNotFoundError{Name: unit}
	}
	i := u.Index(id)
	if i < 0 {
		return l, &PaymentNotFoundError{Unit: unit, ID: id}
	}

	payments := slices.Delete(slices.Clone(u.Payments), i, i+1)
	return l.withPayments(unit, RecomputeCumulative(payments)), nil
}

// AppendPayments appends several drafts at once. Every draft is validated
// before anything is appended, so a bad draft leaves the ledger unchanged.
func (l Ledger) AppendPayments(unit string, drafts []model.Draft) (Ledger, error) {
	u, ok := l.units[unit]
	if !ok {
		return l, &UnitNotFoundError{Name: unit}
	}
	for i, d := range drafts {
		if err := ValidateDraft(d); err != nil {
			return l, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	payments := slices.Grow(slices.Clone(u.Payments), len(drafts))
	for _, d := range drafts {
		payments = append(payments, normalizeDraft(d).Payment(newID()))
	}
	return l.withPayments(unit, RecomputeCumulative(payments)), nil
}

func (l Ledger) clone() Ledger {
	units := make(map[string]model.Unit, len(l.units)+1)
	for k, v := range l.units {
		units[k] = v
	}
	return Ledger{
		units:  units,
		order:  slices.Clone(l.order),
		active: l.active,
	}
}

func (l Ledger) withPayments(unit string, payments []model.Payment) Ledger {
	next := l.clone()
	next.units[unit] = model.Unit{Name: unit, Payments: payments}
	return next
}
