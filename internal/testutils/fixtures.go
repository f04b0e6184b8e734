package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/entities/build"
)

// SampleDocumentJSON is a small document exercising costs, gains, repeat caps,
// prerequisites, expressions, conflicts and a gated category.
//
//	Origins:    noble (gains 10 gold), peasant (conflicts with noble)
//	Gear:       sword (10 gold), potion (3 gold, up to 3), horse (15 gold, needs noble)
//	Knighthood: requires sword and horse; knight needs "sword && (horse || noble)"
const SampleDocumentJSON = `[
  {"type": "title", "text": "Heroic Build"},
  {"type": "points", "values": {"gold": 20, "favor": 0}, "allowNegative": ["favor"]},
  {"name": "Origins", "options": [
    {"id": "noble", "label": "Noble", "cost": {"gold": -10}},
    {"id": "peasant", "label": "Peasant", "cost": {"gold": 0}, "conflictsWith": ["noble"]}
  ]},
  {"name": "Gear", "options": [
    {"id": "sword", "label": "Sword", "cost": {"gold": 10}},
    {"id": "potion", "label": "Potion", "cost": {"gold": 3}, "maxSelections": 3},
    {"id": "horse", "label": "Horse", "cost": {"gold": 15}, "prerequisites": ["noble"]}
  ]},
  {"name": "Knighthood", "requiresOption": ["sword", "horse"], "options": [
    {"id": "knight", "label": "Knight", "cost": {"favor": -1}, "prerequisites": ["sword && (horse || noble)"]}
  ]}
]`

// SampleDocumentYAML is SampleDocumentJSON written as YAML
const SampleDocumentYAML = `
- type: title
  text: Heroic Build
- type: points
  values: {gold: 20, favor: 0}
  allowNegative: [favor]
- name: Origins
  options:
    - {id: noble, label: Noble, cost: {gold: -10}}
    - {id: peasant, label: Peasant, cost: {gold: 0}, conflictsWith: [noble]}
- name: Gear
  options:
    - {id: sword, label: Sword, cost: {gold: 10}}
    - {id: potion, label: Potion, cost: {gold: 3}, maxSelections: 3}
    - {id: horse, label: Horse, cost: {gold: 15}, prerequisites: [noble]}
- name: Knighthood
  requiresOption: [sword, horse]
  options:
    - id: knight
      label: Knight
      cost: {favor: -1}
      prerequisites: ["sword && (horse || noble)"]
`

// LoadSampleDocument decodes SampleDocumentJSON
func LoadSampleDocument(t *testing.T) *build.Document {
	t.Helper()

	doc, err := document.Decode([]byte(SampleDocumentJSON), document.FormatJSON)
	require.NoError(t, err, "failed to decode sample document")
	return doc
}

// LoadSampleCatalog decodes and indexes SampleDocumentJSON
func LoadSampleCatalog(t *testing.T) *document.Catalog {
	t.Helper()

	catalog, err := document.NewCatalog(LoadSampleDocument(t))
	require.NoError(t, err, "failed to index sample document")
	return catalog
}

// NewOption builds an option for table tests
func NewOption(id string, cost map[string]float64) *build.Option {
	return &build.Option{ID: id, Label: id, Cost: cost}
}

// NewCatalog indexes a single ungated category holding options, seeded with balances
func NewCatalog(t *testing.T, balances map[string]float64, options ...*build.Option) *document.Catalog {
	t.Helper()

	catalog, err := document.NewCatalog(&build.Document{
		Points:     build.PointsConfig{Values: balances},
		Categories: []*build.Category{{Name: "Test", Options: options}},
	})
	require.NoError(t, err, "failed to index test catalog")
	return catalog
}
