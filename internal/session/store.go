// Package session keeps the current ledger snapshot for an interactive
// session and enforces the import confirmation step.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/loaishar/RealEstateManager/internal/csvio"
	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/model"
)

var (
	// ErrImportPending is returned by mutations attempted while an import
	// is waiting for its column mapping to be confirmed.
	ErrImportPending = errors.New("an import is waiting for confirmation")
	// ErrNoImport is returned when confirming or cancelling with nothing pending.
	ErrNoImport = errors.New("no import in progress")
	// ErrNoActiveUnit is returned when an operation needs an active unit
	// and the ledger is empty.
	ErrNoActiveUnit = errors.New("no active unit")
)

// Import is a parsed file waiting for its mapping to be confirmed.
type Import struct {
	Source    string // file name, for display
	Table     csvio.Table
	Suggested csvio.Mapping
}

// Store owns the current ledger snapshot. It is not safe for concurrent
// use; the TUI only touches it from its update loop.
type Store struct {
	ledger  ledger.Ledger
	pending *Import
	log     *log.Logger
}

// New returns a store holding l. A nil logger discards output.
func New(l ledger.Ledger, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{ledger: l, log: logger.WithPrefix("session")}
}

// Ledger returns the current snapshot.
func (s *Store) Ledger() ledger.Ledger { return s.ledger }

// PendingImport returns the import awaiting confirmation, if any.
func (s *Store) PendingImport() (Import, bool) {
	if s.pending == nil {
		return Import{}, false
	}
	return *s.pending, true
}

func (s *Store) ready() error {
	if s.pending != nil {
		return ErrImportPending
	}
	return nil
}

// AddUnit creates a unit and makes it active.
func (s *Store) AddUnit(name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	next, err := s.ledger.AddUnit(name)
	if err != nil {
		s.log.Warn("add unit rejected", "name", name, "err", err)
		return err
	}
	s.ledger = next
	s.log.Info("unit added", "unit", next.Active())
	return nil
}

// DeleteUnit removes a unit and its payments.
func (s *Store) DeleteUnit(name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	next, err := s.ledger.DeleteUnit(name)
	if err != nil {
		return err
	}
	s.ledger = next
	s.log.Info("unit deleted", "unit", name, "active", next.Active())
	return nil
}

// SelectUnit switches the active unit.
func (s *Store) SelectUnit(name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	next, err := s.ledger.SelectUnit(name)
	if err != nil {
		return err
	}
	s.ledger = next
	s.log.Debug("unit selected", "unit", name)
	return nil
}

// AddPayment appends a payment to the active unit.
func (s *Store) AddPayment(d model.Draft) (model.Payment, error) {
	if err := s.ready(); err != nil {
		return model.Payment{}, err
	}
	unit := s.ledger.Active()
	if unit == "" {
		return model.Payment{}, ErrNoActiveUnit
	}
	next, p, err := s.ledger.AddPayment(unit, d)
	if err != nil {
		s.log.Warn("add payment rejected", "unit", unit, "err", err)
		return model.Payment{}, err
	}
	s.ledger = next
	s.log.Info("payment added", "unit", unit, "id", p.ID, "amount", p.Amount.String())
	return p, nil
}

// EditPayment replaces a payment of the active unit.
func (s *Store) EditPayment(id string, d model.Draft) error {
	if err := s.ready(); err != nil {
		return err
	}
	unit := s.ledger.Active()
	if unit == "" {
		return ErrNoActiveUnit
	}
	next, err := s.ledger.EditPayment(unit, id, d)
	if err != nil {
		s.log.Warn("edit payment rejected", "unit", unit, "id", id, "err", err)
		return err
	}
	s.ledger = next
	s.log.Info("payment updated", "unit", unit, "id", id)
	return nil
}

// DeletePayment removes a payment from the active unit.
func (s *Store) DeletePayment(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	unit := s.ledger.Active()
	if unit == "" {
		return ErrNoActiveUnit
	}
	next, err := s.ledger.DeletePayment(unit, id)
	if err != nil {
		return err
	}
	s.ledger = next
	s.log.Info("payment deleted", "unit", unit, "id", id)
	return nil
}

// BeginImport holds a parsed file until its mapping is confirmed or the
// import is cancelled. Other mutations are refused meanwhile.
func (s *Store) BeginImport(source string, t csvio.Table) (Import, error) {
	if err := s.ready(); err != nil {
		return Import{}, err
	}
	imp := Import{Source: source, Table: t, Suggested: csvio.AutoMapping(t.Headers)}
	s.pending = &imp
	s.log.Info("import started", "source", source, "columns", len(t.Headers), "rows", len(t.Rows))
	return imp, nil
}

// ConfirmImport converts the pending rows with m and appends them to the
// active unit. On failure the ledger is unchanged and the import stays
// pending so the mapping can be corrected.
func (s *Store) ConfirmImport(m csvio.Mapping) (csvio.Result, error) {
	if s.pending == nil {
		return csvio.Result{}, ErrNoImport
	}
	unit := s.ledger.Active()
	if unit == "" {
		return csvio.Result{}, ErrNoActiveUnit
	}

	res, err := csvio.ApplyMapping(s.pending.Table, m)
	if err != nil {
		s.log.Warn("import rejected", "source", s.pending.Source, "err", err)
		return csvio.Result{}, err
	}
	next, err := s.ledger.AppendPayments(unit, res.Drafts)
	if err != nil {
		s.log.Warn("import rejected", "source", s.pending.Source, "err", err)
		return csvio.Result{}, fmt.Errorf("importing %s: %w", s.pending.Source, err)
	}

	for _, w := range res.Warnings {
		s.log.Warn("import mapping", "source", s.pending.Source, "warning", w.Message)
	}
	s.log.Info("import applied", "source", s.pending.Source, "unit", unit, "payments", len(res.Drafts))
	s.ledger = next
	s.pending = nil
	return res, nil
}

// CancelImport discards the pending import.
func (s *Store) CancelImport() error {
	if s.pending == nil {
		return ErrNoImport
	}
	s.log.Info("import cancelled", "source", s.pending.Source)
	s.pending = nil
	return nil
}
