package build

import "github.com/KirkDiggler/rpg-toolkit/core"

// Options and builds are the source and target of build events
var (
	_ core.Entity = (*Option)(nil)
	_ core.Entity = (*Build)(nil)
)

// Build is a player's persisted selection state against one document.
// Balances are not stored; they are derived from the document and the counts.
type Build struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Selections map[string]int `json:"selections"`
	Version    int64          `json:"version"`
	CreatedAt  int64          `json:"created_at"`
	UpdatedAt  int64          `json:"updated_at"`
	ExpiresAt  int64          `json:"expires_at"`
}

// GetID returns the build ID
func (b *Build) GetID() string {
	return b.ID
}

// GetType returns the entity type
func (b *Build) GetType() string {
	return EntityTypeBuild
}
