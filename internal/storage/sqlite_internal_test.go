package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/shelf/internal/model"
)

func TestSQLiteStorage_Malformed(t *testing.T) {
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "bookmarks.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", StorageKey, "{broken"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(); !errors.Is(err, model.ErrMalformedState) {
		t.Errorf("expected ErrMalformedState, got %v", err)
	}
}

func TestSQLiteStorage_ClearDeletesRow(t *testing.T) {
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "bookmarks.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Save([]model.Bookmark{{ID: "b1", Title: "A", URL: "https://a.com"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM kv WHERE key = ?", StorageKey).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected stored row to be deleted, found %d", n)
	}
}
