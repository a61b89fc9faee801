package ports

import (
	"context"

	"github.com/aretw0/pushdown/pkg/domain"
)

// RunStore defines the interface for persisting finished runs.
type RunStore interface {
	// Save persists the result under result.ID.
	Save(ctx context.Context, result *domain.Result) error

	// Load retrieves a result by run ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Result, error)

	// Delete removes a run. Deleting an unknown run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of the stored runs.
	List(ctx context.Context) ([]string, error)
}
