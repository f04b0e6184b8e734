// Package engine implements the selection and economy rules of a build: which
// options can be selected, and what selecting or deselecting one does to the
// currency balances and selection counts.
//
// A Session owns the mutable state for one document. It is not safe for
// concurrent use; callers serialise access.
package engine

import (
	"log/slog"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/errors"
)

// Session is the live state of one build against one document
type Session struct {
	catalog  *document.Catalog
	ledger   *Ledger
	registry *Registry
	checker  *Checker
	mutator  *Mutator
	gate     *Gate
}

// NewSession creates a session with starting balances and no selections
func NewSession(catalog *document.Catalog) (*Session, error) {
	if catalog == nil {
		return nil, errors.InvalidArgument("catalog is required")
	}

	s := &Session{catalog: catalog}
	s.Reset()
	return s, nil
}

// Reset discards all selections and restores starting balances
func (s *Session) Reset() {
	s.ledger = NewLedger(s.catalog.StartingBalances())
	s.registry = NewRegistry()
	s.checker = NewChecker(s.catalog, s.ledger, s.registry)
	s.mutator = NewMutator(s.catalog, s.checker, s.ledger, s.registry)
	s.gate = NewGate(s.catalog, s.registry)
}

// Catalog returns the document index
func (s *Session) Catalog() *document.Catalog {
	return s.catalog
}

// Balance returns the current balance of a currency
func (s *Session) Balance(currency string) float64 {
	return s.ledger.Balance(currency)
}

// Balances returns every current balance
func (s *Session) Balances() map[string]float64 {
	return s.ledger.Balances()
}

// Count returns how many times an option is selected
func (s *Session) Count(id string) int {
	return s.registry.Count(id)
}

// CanSelect applies the eligibility rules to an option
func (s *Session) CanSelect(option *build.Option) bool {
	return s.checker.CanSelect(option)
}

// Explain lists why an option is not selectable, including a locked category
func (s *Session) Explain(option *build.Option) []Reason {
	reasons := s.checker.Explain(option)
	if option == nil {
		return reasons
	}
	if category, ok := s.catalog.CategoryOf(option.ID); ok && !s.gate.IsUnlocked(category) {
		reasons = append([]Reason{{Kind: ReasonCategoryLocked, Refs: []string(category.RequiresOption)}}, reasons...)
	}
	return reasons
}

// IsUnlocked reports whether a category's requirements are selected
func (s *Session) IsUnlocked(category *build.Category) bool {
	return s.gate.IsUnlocked(category)
}

// Requirements reports a category's required options
func (s *Session) Requirements(category *build.Category) []Requirement {
	return s.gate.Requirements(category)
}

// Selectable reports whether an option's category is unlocked and the option
// passes the eligibility rules
func (s *Session) Selectable(option *build.Option) bool {
	if option == nil {
		return false
	}
	category, ok := s.catalog.CategoryOf(option.ID)
	if !ok || !s.gate.IsUnlocked(category) {
		return false
	}
	return s.checker.CanSelect(option)
}

// SelectOption selects one unit of an option. It reports false, changing
// nothing, when the option is not currently selectable.
func (s *Session) SelectOption(id string) (bool, error) {
	option, ok := s.catalog.Option(id)
	if !ok {
		return false, errors.NotFoundf("option %q not found", id).WithMeta("option_id", id)
	}
	if !s.Selectable(option) {
		return false, nil
	}
	return s.mutator.Select(option), nil
}

// DeselectOption removes one unit of an option. It reports false when the
// option was not selected.
func (s *Session) DeselectOption(id string) (bool, error) {
	option, ok := s.catalog.Option(id)
	if !ok {
		return false, errors.NotFoundf("option %q not found", id).WithMeta("option_id", id)
	}
	return s.mutator.Deselect(option), nil
}

// Export returns the selection counts
func (s *Session) Export() map[string]int {
	return s.registry.Counts()
}

// Restore replaces the session state with stored counts without re-validating
// them. Used to rehydrate a persisted build.
func (s *Session) Restore(counts map[string]int) {
	s.Reset()
	s.mutator.Restore(counts)
}

// Import replaces the session state by replaying selections in document order.
// Each unit goes through SelectOption; units that are not selectable at that
// point are skipped without error. Returns the number of units applied.
func (s *Session) Import(selections map[string]int) int {
	s.Reset()

	applied := 0
	for _, option := range s.catalog.Options() {
		wanted := selections[option.ID]
		for i := 0; i < wanted; i++ {
			ok, err := s.SelectOption(option.ID)
			if err != nil || !ok {
				slog.Debug("import skipped selection",
					"option_id", option.ID,
					"requested", wanted,
					"applied", i)
				break
			}
			applied++
		}
	}
	return applied
}
