package model

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// DefaultPath is the artifact written by the trainer and read by the predictor.
const DefaultPath = "color_model.json"

// Store persists a single model at a fixed path.
type Store struct {
	Path string
}

// NewStore returns a store for path, or DefaultPath if path is empty.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Load reads the model. A missing file is ErrModelMissing.
func (s *Store) Load() (*Model, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelMissing, s.Path)
		}
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", s.Path, err)
	}
	return &m, nil
}

// Save writes the model, replacing any previous one.
func (s *Store) Save(m *Model) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	// Write then rename so a concurrent reader sees the old or new file.
	tmp, err := os.CreateTemp(dir, ".color_model-*")
	if err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace model: %w", err)
	}

	log.Printf("Saved color model (%d samples) to %s", m.Samples, s.Path)
	return nil
}
