// Package document defines persistence for build documents
package document

//go:generate mockgen -destination=mock/mock_repository.go -package=documentmock github.com/KirkDiggler/build-api/internal/repositories/document Repository

import (
	"context"

	"github.com/KirkDiggler/build-api/internal/entities/build"
)

// Repository stores decoded documents. Documents do not expire.
type Repository interface {
	// Create stores a document under its ID, replacing any previous version
	// Returns errors.InvalidArgument for a nil document or empty ID
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a document by ID
	// Returns errors.NotFound if the document doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns the IDs of every stored document, sorted
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a document
	// Returns errors.NotFound if the document doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for storing a document
type CreateInput struct {
	Document *build.Document
}

// CreateOutput defines the output for storing a document
type CreateOutput struct {
	Document *build.Document
}

// GetInput defines the input for getting a document
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a document
type GetOutput struct {
	Document *build.Document
}

// ListInput defines the input for listing documents
type ListInput struct{}

// ListOutput defines the output for listing documents
type ListOutput struct {
	IDs []string
}

// DeleteInput defines the input for deleting a document
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a document
type DeleteOutput struct{}
