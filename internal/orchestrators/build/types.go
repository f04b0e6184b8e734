package build

import (
	"github.com/KirkDiggler/build-api/internal/document"
	entities "github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/engine"
)

// LoadDocumentInput contains a raw document to decode and store
type LoadDocumentInput struct {
	// ID is optional; one is generated when empty. Loading an existing ID
	// replaces that document.
	ID     string
	Data   []byte
	Format document.Format
}

// LoadDocumentOutput contains the stored document
type LoadDocumentOutput struct {
	Document *entities.Document
	// Warnings are authoring problems found by the linter, keyed by field path.
	// They do not prevent loading; the engine fails closed on them.
	Warnings map[string][]string
}

// GetDocumentInput identifies a stored document
type GetDocumentInput struct {
	DocumentID string
}

// GetDocumentOutput contains a stored document
type GetDocumentOutput struct {
	Document *entities.Document
}

// ListDocumentsInput is empty
type ListDocumentsInput struct{}

// ListDocumentsOutput contains the IDs of stored documents
type ListDocumentsOutput struct {
	DocumentIDs []string
}

// CreateBuildInput starts an empty build against a document
type CreateBuildInput struct {
	DocumentID string
}

// CreateBuildOutput contains the new build and its evaluated state
type CreateBuildOutput struct {
	Build *entities.Build
	State *engine.State
}

// GetBuildInput identifies a build
type GetBuildInput struct {
	BuildID string
}

// GetBuildOutput contains a build and its evaluated state
type GetBuildOutput struct {
	Build *entities.Build
	State *engine.State
}

// SelectOptionInput selects one unit of an option
type SelectOptionInput struct {
	BuildID  string
	OptionID string
}

// SelectOptionOutput reports whether the selection was applied. When it was
// not, Reasons explains why.
type SelectOptionOutput struct {
	Selected bool
	Reasons  []engine.Reason
	Build    *entities.Build
	State    *engine.State
}

// DeselectOptionInput removes one unit of an option
type DeselectOptionInput struct {
	BuildID  string
	OptionID string
}

// DeselectOptionOutput reports whether a unit was removed
type DeselectOptionOutput struct {
	Deselected bool
	Build      *entities.Build
	State      *engine.State
}

// ExportBuildInput identifies a build to export
type ExportBuildInput struct {
	BuildID string
}

// ExportBuildOutput contains the portable selection map
type ExportBuildOutput struct {
	DocumentID string
	Selections map[string]int
}

// ImportBuildInput replaces a build's selections by replaying them
type ImportBuildInput struct {
	BuildID    string
	Selections map[string]int
}

// ImportBuildOutput reports how much of the import was applied
type ImportBuildOutput struct {
	Applied int
	// Skipped maps option IDs to the number of requested units that were not applied
	Skipped map[string]int
	Build   *entities.Build
	State   *engine.State
}

// RollOptionInput picks a random selectable option in a category
type RollOptionInput struct {
	BuildID  string
	Category string
}

// RollOptionOutput contains the picked option
type RollOptionOutput struct {
	OptionID string
	Build    *entities.Build
	State    *engine.State
}

// DeleteBuildInput identifies a build to delete
type DeleteBuildInput struct {
	BuildID string
}

// DeleteBuildOutput is empty
type DeleteBuildOutput struct{}
