package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/pushdown/internal/dto"
	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
	"gopkg.in/yaml.v3"
)

// LoadDefinition reads a definition file (YAML or JSON) and returns the validated automaton.
// When the file carries no id, the file name without extension is used.
func LoadDefinition(path string) (*domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	raw := make(map[string]any)
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrMalformedDefinition, filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrMalformedDefinition, filepath.Base(path), err)
		}
	}

	rec, err := dto.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if rec.ID == "" {
		rec.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	def, err := rec.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return def, nil
}

// NewLoader loads every given file eagerly and serves them from memory.
func NewLoader(paths ...string) (*memory.Loader, error) {
	defs := make([]*domain.Definition, 0, len(paths))
	for _, p := range paths {
		def, err := LoadDefinition(p)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return memory.NewLoader(defs...)
}

// WriteDefinition writes def as YAML, the inverse of LoadDefinition.
func WriteDefinition(path string, def *domain.Definition) error {
	data, err := yaml.Marshal(dto.FromDomain(def))
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write definition: %w", err)
	}
	return nil
}
