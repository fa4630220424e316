package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/shelf/internal/model"
)

// StorageKey is the fixed key the collection is persisted under.
const StorageKey = "bookmarks"

// Storage persists the whole collection. It satisfies model.Persister.
type Storage interface {
	model.Persister
	Close() error
}

// encode serializes the collection as one JSON array.
func encode(bookmarks []model.Bookmark) ([]byte, error) {
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return json.Marshal(bookmarks)
}

// decode parses a stored JSON array. Anything else, or records breaking
// model.Validate, is malformed state.
func decode(data []byte) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedState, err)
	}
	if err := model.Validate(bookmarks); err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return bookmarks, nil
}

// JSONStorage implements Storage using a JSON file named after StorageKey.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a JSONStorage keeping its file in dir.
func NewJSONStorage(dir string) *JSONStorage {
	return &JSONStorage{path: filepath.Join(dir, StorageKey+".json")}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the collection from the JSON file.
// Returns an empty collection if the file doesn't exist.
func (s *JSONStorage) Load() ([]model.Bookmark, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Bookmark{}, nil
		}
		return nil, err
	}
	return decode(data)
}

// Save writes the collection to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(bookmarks []model.Bookmark) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := encode(bookmarks)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Clear removes the JSON file.
func (s *JSONStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close is a no-op for file storage.
func (s *JSONStorage) Close() error {
	return nil
}
