// Package build contains the data types of a build document and of a player's build
package build

import (
	"encoding/json"

	"github.com/KirkDiggler/build-api/internal/errors"
)

// Entity types reported through GetType
const (
	EntityTypeOption = "option"
	EntityTypeBuild  = "build"
)

// Metadata entry types. Entries carrying one of these are not categories.
const (
	EntryTypeTitle       = "title"
	EntryTypeDescription = "description"
	EntryTypeHeaderImage = "headerImage"
	EntryTypePoints      = "points"
	EntryTypeTheme       = "theme"
)

// IsMetadataType reports whether an entry type is reserved for document metadata
func IsMetadataType(entryType string) bool {
	switch entryType {
	case EntryTypeTitle, EntryTypeDescription, EntryTypeHeaderImage, EntryTypePoints, EntryTypeTheme:
		return true
	default:
		return false
	}
}

// Option is one selectable choice. IDs are unique across the whole document.
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`

	// Cost maps currency to amount. Positive amounts are paid on selection,
	// negative amounts are paid out.
	Cost map[string]float64 `json:"cost,omitempty"`

	// Prerequisites must all hold. An entry is an option ID or a boolean
	// expression over option IDs.
	Prerequisites []string `json:"prerequisites,omitempty"`
	ConflictsWith []string `json:"conflictsWith,omitempty"`

	// MaxSelections is nil for a boolean toggle
	MaxSelections *int `json:"maxSelections,omitempty"`
}

// GetID returns the option ID
func (o *Option) GetID() string {
	return o.ID
}

// GetType returns the entity type
func (o *Option) GetType() string {
	return EntityTypeOption
}

// Cap returns the effective repeat cap: 1 for toggles, MaxSelections otherwise
func (o *Option) Cap() int {
	if o.MaxSelections == nil {
		return 1
	}
	return *o.MaxSelections
}

// IsRepeatable reports whether the option can be taken more than once
func (o *Option) IsRepeatable() bool {
	return o.Cap() > 1
}

// ConflictsWithID reports whether the option declares a conflict with id
func (o *Option) ConflictsWithID(id string) bool {
	for _, c := range o.ConflictsWith {
		if c == id {
			return true
		}
	}
	return false
}

// Category groups options and may be gated on already selected options
type Category struct {
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	RequiresOption StringList `json:"requiresOption,omitempty"`
	Options        []*Option  `json:"options"`
}

// Range is an inclusive numeric range
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PointsConfig comes from the "points" metadata entry. Only Values seeds the
// ledger; the rest is carried for authoring tools.
type PointsConfig struct {
	Values          map[string]float64 `json:"values"`
	AllowNegative   []string           `json:"allowNegative,omitempty"`
	AttributeRanges map[string]Range   `json:"attributeRanges,omitempty"`
}

// Document is a decoded build document
type Document struct {
	ID          string          `json:"id,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	HeaderImage string          `json:"headerImage,omitempty"`
	Theme       json.RawMessage `json:"theme,omitempty"`
	Points      PointsConfig    `json:"points"`
	Categories  []*Category     `json:"categories"`
}

// StringList accepts either a single string or a list of strings
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
			return nil
		}
		*l = StringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.InvalidArgumentf("expected a string or list of strings, got %s", string(data))
	}
	*l = many
	return nil
}
