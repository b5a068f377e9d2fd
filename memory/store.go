package memory

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store persists conversation snapshots.
type Store interface {
	// Load returns the stored turns; a missing store yields nil, nil.
	Load() ([]Turn, error)
	// Save replaces the stored turns.
	Save(turns []Turn) error
	// Reset discards every stored turn so a new conversation starts empty.
	Reset() error
	Close() error
}

// JSONStore keeps the conversation in a single JSON file.
type JSONStore struct {
	Path string
}

func NewJSONStore(path string) *JSONStore { return &JSONStore{Path: path} }

func (s *JSONStore) Load() ([]Turn, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var turns []Turn
	if err := json.Unmarshal(b, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (s *JSONStore) Save(turns []Turn) error {
	b, err := json.MarshalIndent(turns, "", " ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	// Write-then-rename so a crash never leaves a half-written history.
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func (s *JSONStore) Reset() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
