package engine

import (
	"log/slog"
	"sort"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/entities/build"
)

// Mutator is the only writer of a session's ledger and registry. Each call
// changes both together or neither.
type Mutator struct {
	catalog  *document.Catalog
	checker  *Checker
	ledger   *Ledger
	registry *Registry
}

// NewMutator creates a mutator over a session's state
func NewMutator(catalog *document.Catalog, checker *Checker, ledger *Ledger, registry *Registry) *Mutator {
	return &Mutator{
		catalog:  catalog,
		checker:  checker,
		ledger:   ledger,
		registry: registry,
	}
}

// Select spends the option's cost and records one more selection. It re-checks
// eligibility and does nothing when the option is no longer selectable.
func (m *Mutator) Select(option *build.Option) bool {
	if !m.checker.CanSelect(option) {
		return false
	}

	m.ledger.Apply(option.Cost)
	m.registry.Increment(option.ID)
	return true
}

// Deselect refunds the option's cost and removes one selection. It does nothing
// when the option is not selected.
func (m *Mutator) Deselect(option *build.Option) bool {
	if option == nil || !m.registry.Selected(option.ID) {
		return false
	}

	m.ledger.Apply(negate(option.Cost))
	m.registry.Decrement(option.ID)
	return true
}

// Restore applies stored counts without eligibility checks. Counts are clamped
// to each option's cap and unknown IDs are dropped. The ledger and registry are
// expected to be freshly reset.
func (m *Mutator) Restore(counts map[string]int) {
	for _, id := range sortedKeys(counts) {
		count := counts[id]
		option, ok := m.catalog.Option(id)
		if !ok {
			slog.Debug("dropping stored selection for unknown option", "option_id", id)
			continue
		}
		if count > option.Cap() {
			count = option.Cap()
		}
		if count <= 0 {
			continue
		}
		m.ledger.applyTimes(option.Cost, count)
		m.registry.set(id, count)
	}
}

func negate(deltas map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(deltas))
	for currency, delta := range deltas {
		out[currency] = -delta
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
