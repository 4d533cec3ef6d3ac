package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rafa/digimon-searcher/internal/domain"
)

// Store holds the whole catalog in memory. It is populated once and
// never mutated afterwards, so any number of requests may read it
// concurrently without locking.
type Store struct {
	digimons []domain.Digimon
}

// Load reads the dataset file at path and wraps it in a Store. A
// malformed file or an invalid record is fatal here rather than
// surfacing per-request later.
func Load(path string, log *zap.SugaredLogger) (*Store, error) {
	digimons, err := Read(path)
	if err != nil {
		return nil, err
	}
	log.Infow("dataset loaded", "path", path, "count", len(digimons))
	return &Store{digimons: digimons}, nil
}

// New wraps an already-built collection, folding legacy fields the
// same way Load does. Used by tests and the sync tooling.
func New(digimons []domain.Digimon) *Store {
	for i := range digimons {
		foldLegacy(&digimons[i])
	}
	return &Store{digimons: digimons}
}

// All returns the collection snapshot. Callers must not modify it.
func (s *Store) All() []domain.Digimon {
	return s.digimons
}

// Count returns the number of records in the catalog.
func (s *Store) Count() int {
	return len(s.digimons)
}

// Read parses the JSON dataset at path, folds legacy singular facet
// fields into their plural counterparts and validates every record.
func Read(path string) ([]domain.Digimon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var digimons []domain.Digimon
	if err := json.Unmarshal(raw, &digimons); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	for i := range digimons {
		foldLegacy(&digimons[i])
		if digimons[i].Name == "" {
			return nil, fmt.Errorf("dataset %s: record %d has no name", path, i)
		}
	}
	return digimons, nil
}

// Save writes the collection to path as indented JSON, creating parent
// directories as needed. Indentation keeps dataset diffs readable.
func Save(path string, digimons []domain.Digimon) error {
	raw, err := json.MarshalIndent(digimons, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// foldLegacy reconciles singular legacy fields with their plural
// counterparts in both directions: a lone singular becomes a
// one-element slice, and an empty singular mirrors the first plural
// value so older clients keep working.
func foldLegacy(d *domain.Digimon) {
	d.Levels, d.Level = fold(d.Levels, d.Level)
	d.Types, d.Type = fold(d.Types, d.Type)
	d.Attributes, d.Attribute = fold(d.Attributes, d.Attribute)
	d.Images, d.Image = fold(d.Images, d.Image)
}

func fold(plural []string, singular string) ([]string, string) {
	if len(plural) == 0 && singular != "" {
		plural = []string{singular}
	}
	if singular == "" && len(plural) > 0 {
		singular = plural[0]
	}
	return plural, singular
}
