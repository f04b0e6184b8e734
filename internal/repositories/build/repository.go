// Package build defines persistence for player builds
package build

//go:generate mockgen -destination=mock/mock_repository.go -package=buildmock github.com/KirkDiggler/build-api/internal/repositories/build Repository

import (
	"context"

	"github.com/KirkDiggler/build-api/internal/entities/build"
)

// Repository stores builds. Builds expire after the configured TTL unless
// they are updated, which pushes the expiry out again.
type Repository interface {
	// Create stores a new build and stamps its timestamps
	// Returns errors.AlreadyExists if a build with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a build by ID
	// Returns errors.NotFound if the build doesn't exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces the selections of an existing build and bumps its version
	// Returns errors.NotFound if the build doesn't exist or has expired
	// Returns errors.Aborted if the stored version differs from input.Build.Version
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a build
	// Returns errors.NotFound if the build doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a build
type CreateInput struct {
	Build *build.Build
}

// CreateOutput defines the output for creating a build
type CreateOutput struct {
	Build *build.Build
}

// GetInput defines the input for getting a build
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a build
type GetOutput struct {
	Build *build.Build
}

// UpdateInput defines the input for updating a build
type UpdateInput struct {
	Build *build.Build
}

// UpdateOutput defines the output for updating a build
type UpdateOutput struct {
	Build *build.Build
}

// DeleteInput defines the input for deleting a build
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a build
type DeleteOutput struct{}
