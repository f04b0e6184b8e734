package engine

import (
	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/entities/build"
)

// Requirement is one option a gated category needs
type Requirement struct {
	OptionID  string `json:"option_id"`
	Label     string `json:"label"`
	Satisfied bool   `json:"satisfied"`
}

// Gate decides whether a category's options are available at all
type Gate struct {
	catalog  *document.Catalog
	registry *Registry
}

// NewGate creates a gate over a session's registry
func NewGate(catalog *document.Catalog, registry *Registry) *Gate {
	return &Gate{catalog: catalog, registry: registry}
}

// IsUnlocked reports whether every required option is selected. A category
// without requirements is always unlocked.
func (g *Gate) IsUnlocked(category *build.Category) bool {
	if category == nil {
		return false
	}
	for _, id := range category.RequiresOption {
		if !g.registry.Selected(id) {
			return false
		}
	}
	return true
}

// Requirements reports each required option and whether it is selected.
// Unknown IDs are labelled with the ID itself.
func (g *Gate) Requirements(category *build.Category) []Requirement {
	if category == nil || len(category.RequiresOption) == 0 {
		return nil
	}

	out := make([]Requirement, 0, len(category.RequiresOption))
	for _, id := range category.RequiresOption {
		label := id
		if option, ok := g.catalog.Option(id); ok && option.Label != "" {
			label = option.Label
		}
		out = append(out, Requirement{
			OptionID:  id,
			Label:     label,
			Satisfied: g.registry.Selected(id),
		})
	}
	return out
}
