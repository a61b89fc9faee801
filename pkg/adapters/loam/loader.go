package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/pushdown/internal/dto"
	"github.com/aretw0/pushdown/pkg/domain"
)

// Loader adapts a Loam repository to the ports.DefinitionLoader interface.
// Each document is one automaton: the front matter (or JSON/YAML body) holds the
// transition table and the Markdown body, when present, is its description.
//
// Documents are read as raw metadata and decoded by dto.Decode, so a repository
// follows exactly the rules of a single definition file.
type Loader struct {
	Repo *loam.TypedRepository[dto.Metadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[dto.Metadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// GetDefinition resolves id against the normalized document IDs and builds the automaton.
// Both the explicit `id` key and the file name (without extension) are honoured.
// The document is fetched with Get because listed documents carry no body.
func (l *Loader) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	paths, err := l.index(ctx)
	if err != nil {
		return nil, err
	}

	path, ok := paths[trimExtension(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
	}

	doc, err := l.Repo.Get(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedDefinition, path, err)
	}

	rec, err := dto.Decode(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("automaton %s (%s): %w", trimExtension(id), path, err)
	}
	rec.ID = documentID(doc.Data, doc.ID)
	if rec.Description == "" {
		rec.Description = strings.TrimSpace(doc.Content)
	}

	def, err := rec.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("automaton %s (%s): %w", rec.ID, path, err)
	}
	return def, nil
}

// ListDefinitions lists all automata in the repository.
// Documents are not decoded here: a malformed one is still listed and only
// fails when it is requested.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	paths, err := l.index(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// index maps every automaton ID to the document that defines it.
func (l *Loader) index(ctx context.Context) (map[string]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	out := make(map[string]string, len(docs))
	for _, doc := range docs {
		id := documentID(doc.Data, doc.ID)
		if existing, ok := out[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		out[id] = doc.ID
	}
	return out, nil
}

// documentID prefers the `id` key and falls back to the file name.
func documentID(meta dto.Metadata, docID string) string {
	if raw, ok := meta["id"].(string); ok && raw != "" {
		return trimExtension(raw)
	}
	return trimExtension(docID)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext == "" {
		return filepath.ToSlash(id)
	}
	return filepath.ToSlash(strings.TrimSuffix(id, ext))
}
