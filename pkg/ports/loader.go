package ports

import (
	"context"

	"github.com/aretw0/pushdown/pkg/domain"
)

// DefinitionLoader defines how the engine retrieves automaton definitions.
// This allows the storage layer (Loam, file, memory) to be decoupled.
type DefinitionLoader interface {
	// GetDefinition retrieves a validated definition by ID.
	// It returns domain.ErrDefinitionNotFound when the ID is unknown and an
	// error matching domain.ErrMalformedDefinition when the source is invalid.
	GetDefinition(ctx context.Context, id string) (*domain.Definition, error)

	// ListDefinitions returns the IDs of every available definition, sorted.
	ListDefinitions(ctx context.Context) ([]string, error)
}
