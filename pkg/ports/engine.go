package ports

import (
	"context"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Executor is the interface transport adapters (HTTP, MCP) depend on.
// The root pushdown.Engine implements it.
type Executor interface {
	// Run executes the definition identified by id over input.
	// Aborted runs (stack overflow, step limit) are reported through
	// Result.Failure together with a non-nil error.
	Run(ctx context.Context, id, input string) (*domain.Result, error)

	// Definition returns the definition identified by id.
	Definition(ctx context.Context, id string) (*domain.Definition, error)

	// Definitions lists the available definition IDs.
	Definitions(ctx context.Context) ([]string, error)
}
