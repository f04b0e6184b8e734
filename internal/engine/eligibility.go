package engine

import (
	"log/slog"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/engine/expr"
	"github.com/KirkDiggler/build-api/internal/entities/build"
)

// ReasonKind names a failed eligibility condition
type ReasonKind string

// Eligibility conditions, in evaluation order
const (
	ReasonPrerequisite   ReasonKind = "prerequisite"
	ReasonAffordability  ReasonKind = "affordability"
	ReasonConflict       ReasonKind = "conflict"
	ReasonCapacity       ReasonKind = "capacity"
	ReasonCategoryLocked ReasonKind = "category_locked"
)

// Reason explains why an option cannot be selected right now
type Reason struct {
	Kind ReasonKind `json:"kind"`
	// Refs are the prerequisite entries, currencies or option IDs involved
	Refs []string `json:"refs,omitempty"`
}

// Checker decides whether another unit of an option may be selected. It only
// reads the ledger and registry.
type Checker struct {
	catalog  *document.Catalog
	ledger   *Ledger
	registry *Registry
}

// NewChecker creates a checker over a session's state
func NewChecker(catalog *document.Catalog, ledger *Ledger, registry *Registry) *Checker {
	return &Checker{
		catalog:  catalog,
		ledger:   ledger,
		registry: registry,
	}
}

// CanSelect reports whether prerequisites hold, every cost is covered, nothing
// selected conflicts in either direction and the repeat cap is not reached
func (c *Checker) CanSelect(option *build.Option) bool {
	if option == nil {
		return false
	}
	return len(c.unmetPrerequisites(option, true)) == 0 &&
		len(c.unaffordable(option, true)) == 0 &&
		len(c.conflicts(option, true)) == 0 &&
		c.hasCapacity(option)
}

// Explain runs the same checks as CanSelect and reports every failure
func (c *Checker) Explain(option *build.Option) []Reason {
	if option == nil {
		return nil
	}

	var reasons []Reason
	if refs := c.unmetPrerequisites(option, false); len(refs) > 0 {
		reasons = append(reasons, Reason{Kind: ReasonPrerequisite, Refs: refs})
	}
	if refs := c.unaffordable(option, false); len(refs) > 0 {
		reasons = append(reasons, Reason{Kind: ReasonAffordability, Refs: refs})
	}
	if refs := c.conflicts(option, false); len(refs) > 0 {
		reasons = append(reasons, Reason{Kind: ReasonConflict, Refs: refs})
	}
	if !c.hasCapacity(option) {
		reasons = append(reasons, Reason{Kind: ReasonCapacity, Refs: []string{option.ID}})
	}
	return reasons
}

// unmetPrerequisites returns the failing prerequisite entries. An entry naming
// a known option is a count check; anything else is an expression, and a
// malformed expression never holds.
func (c *Checker) unmetPrerequisites(option *build.Option, firstOnly bool) []string {
	var unmet []string
	for _, entry := range option.Prerequisites {
		if !c.prerequisiteHolds(option, entry) {
			unmet = append(unmet, entry)
			if firstOnly {
				return unmet
			}
		}
	}
	return unmet
}

func (c *Checker) prerequisiteHolds(option *build.Option, entry string) bool {
	if _, ok := c.catalog.Option(entry); ok {
		return c.registry.Selected(entry)
	}

	holds, err := expr.Evaluate(entry, c.registry.Selected)
	if err != nil {
		slog.Debug("prerequisite treated as unmet",
			"option_id", option.ID,
			"prerequisite", entry,
			"error", err)
		return false
	}
	return holds
}

// unaffordable returns currencies whose positive cost exceeds the balance.
// Gains and zero costs never block.
func (c *Checker) unaffordable(option *build.Option, firstOnly bool) []string {
	var short []string
	for _, currency := range sortedKeys(option.Cost) {
		cost := option.Cost[currency]
		if cost <= 0 {
			continue
		}
		if !c.ledger.Covers(currency, cost) {
			short = append(short, currency)
			if firstOnly {
				return short
			}
		}
	}
	return short
}

// conflicts returns selected options that exclude this one, whichever side
// declared the conflict
func (c *Checker) conflicts(option *build.Option, firstOnly bool) []string {
	var found []string
	seen := make(map[string]bool)

	for _, id := range option.ConflictsWith {
		if c.registry.Selected(id) && !seen[id] {
			seen[id] = true
			found = append(found, id)
			if firstOnly {
				return found
			}
		}
	}

	for _, id := range c.registry.IDs() {
		if seen[id] {
			continue
		}
		other, ok := c.catalog.Option(id)
		if !ok || !other.ConflictsWithID(option.ID) {
			continue
		}
		seen[id] = true
		found = append(found, id)
		if firstOnly {
			return found
		}
	}

	return found
}

func (c *Checker) hasCapacity(option *build.Option) bool {
	return c.registry.Count(option.ID) < option.Cap()
}
