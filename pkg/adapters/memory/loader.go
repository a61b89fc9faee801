package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Loader implements ports.DefinitionLoader using an in-memory registry.
// Safe for concurrent use.
type Loader struct {
	mu   sync.RWMutex
	defs map[string]*domain.Definition
}

// NewLoader creates a Loader from already-built definitions.
// Each definition is validated once here, which also fills in default limits.
func NewLoader(defs ...*domain.Definition) (*Loader, error) {
	l := &Loader{defs: make(map[string]*domain.Definition)}
	for _, def := range defs {
		if err := l.Register(def); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Register adds a definition. A definition with the same ID is overwritten.
func (l *Loader) Register(def *domain.Definition) error {
	if def == nil || def.ID == "" {
		return fmt.Errorf("%w: definition missing ID", domain.ErrMalformedDefinition)
	}
	if err := def.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.defs[def.ID] = def
	return nil
}

// GetDefinition retrieves a definition by ID.
func (l *Loader) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	def, ok := l.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
	}
	return def, nil
}

// ListDefinitions returns all registered IDs.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.defs))
	for id := range l.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
