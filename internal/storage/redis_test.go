package storage_test

import (
	"os"
	"testing"

	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/storage"
	"gotest.tools/v3/assert"
)

// newRedisStorage connects to SHELF_TEST_REDIS_ADDR, using database 15.
func newRedisStorage(t *testing.T) *storage.RedisStorage {
	t.Helper()
	addr := os.Getenv("SHELF_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SHELF_TEST_REDIS_ADDR not set")
	}

	s := storage.NewRedisStorage(storage.RedisParams{Addr: addr, DB: 15})
	t.Cleanup(func() {
		_ = s.Clear()
		_ = s.Close()
	})
	assert.NilError(t, s.Clear())
	return s
}

func TestRedisStorage_SaveAndLoad(t *testing.T) {
	s := newRedisStorage(t)

	empty, err := s.Load()
	assert.NilError(t, err)
	assert.Equal(t, len(empty), 0)

	want := []model.Bookmark{
		{ID: "b1", Title: "Go", URL: "https://go.dev"},
		{ID: "f1", Title: "Work", IsFolder: true},
	}
	assert.NilError(t, s.Save(want))

	got, err := s.Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, got, want)
}

func TestRedisStorage_Clear(t *testing.T) {
	s := newRedisStorage(t)
	assert.NilError(t, s.Save([]model.Bookmark{{ID: "b1", Title: "Go", URL: "https://go.dev"}}))

	assert.NilError(t, s.Clear())

	got, err := s.Load()
	assert.NilError(t, err)
	assert.Equal(t, len(got), 0)
}
