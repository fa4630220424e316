package storage

import "github.com/nikbrunner/shelf/internal/model"

// MemoryStorage keeps the serialized collection in memory.
// It stands in for durable storage in tests.
type MemoryStorage struct {
	raw    []byte
	exists bool
	saves  int
	err    error
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// SetRaw replaces the stored value with data as-is.
func (s *MemoryStorage) SetRaw(data string) {
	s.raw = []byte(data)
	s.exists = true
}

// Raw returns the stored value and whether one exists.
func (s *MemoryStorage) Raw() (string, bool) {
	return string(s.raw), s.exists
}

// Saves returns how many times Save succeeded.
func (s *MemoryStorage) Saves() int {
	return s.saves
}

// FailWith makes subsequent Save and Clear calls return err.
func (s *MemoryStorage) FailWith(err error) {
	s.err = err
}

// Load decodes the stored value.
func (s *MemoryStorage) Load() ([]model.Bookmark, error) {
	if !s.exists {
		return []model.Bookmark{}, nil
	}
	return decode(s.raw)
}

// Save encodes and stores the collection.
func (s *MemoryStorage) Save(bookmarks []model.Bookmark) error {
	if s.err != nil {
		return s.err
	}
	data, err := encode(bookmarks)
	if err != nil {
		return err
	}
	s.raw = data
	s.exists = true
	s.saves++
	return nil
}

// Clear drops the stored value.
func (s *MemoryStorage) Clear() error {
	if s.err != nil {
		return s.err
	}
	s.raw = nil
	s.exists = false
	return nil
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}
