package favicon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/shelf/internal/model"
	"gotest.tools/v3/assert"
)

func iconServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("domain") {
		case "ok.com":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("PNGDATA"))
		case "empty.com":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_Success(t *testing.T) {
	srv := iconServer(t)
	f := NewFetcher(time.Second)

	b := model.Bookmark{ID: "b1", Title: "ok", URL: "https://ok.com", Favicon: srv.URL + "/s2/favicons?domain=ok.com"}
	r := f.Fetch(context.Background(), &b)

	assert.Equal(t, r.Placeholder, false)
	assert.Equal(t, string(r.Icon), "PNGDATA")
	assert.Equal(t, r.StatusCode, http.StatusOK)
}

func TestFetch_FallsBackToPlaceholder(t *testing.T) {
	srv := iconServer(t)
	f := NewFetcher(time.Second)

	tests := []struct {
		name     string
		bookmark model.Bookmark
		reason   string
	}{
		{
			name:     "not found",
			bookmark: model.Bookmark{ID: "b1", URL: "https://missing.com", Favicon: srv.URL + "/s2/favicons?domain=missing.com"},
			reason:   "Not Found",
		},
		{
			name:     "empty body",
			bookmark: model.Bookmark{ID: "b2", URL: "https://empty.com", Favicon: srv.URL + "/s2/favicons?domain=empty.com"},
			reason:   "empty response",
		},
		{
			name:     "folder",
			bookmark: model.Bookmark{ID: "f1", Title: "Folder", IsFolder: true},
			reason:   "no favicon",
		},
		{
			name:     "connection refused",
			bookmark: model.Bookmark{ID: "b3", URL: "https://down.com", Favicon: "http://127.0.0.1:1/s2/favicons?domain=down.com"},
			reason:   "Connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := f.Fetch(context.Background(), &tt.bookmark)
			assert.Assert(t, r.Placeholder)
			assert.DeepEqual(t, r.Icon, Placeholder())
			assert.Equal(t, r.Error, tt.reason)
		})
	}
}

func TestFetchAll_KeepsOrderAndReportsProgress(t *testing.T) {
	srv := iconServer(t)
	f := NewFetcher(time.Second)

	bookmarks := []model.Bookmark{
		{ID: "1", URL: "https://ok.com", Favicon: srv.URL + "/?domain=ok.com"},
		{ID: "2", URL: "https://missing.com", Favicon: srv.URL + "/?domain=missing.com"},
		{ID: "3", URL: "https://ok.com/other", Favicon: srv.URL + "/?domain=ok.com"},
	}

	var calls, lastTotal atomic.Int32
	results := f.FetchAll(context.Background(), bookmarks, 2, func(completed, total int) {
		calls.Add(1)
		lastTotal.Store(int32(total))
	})

	assert.Equal(t, len(results), 3)
	assert.Equal(t, int(calls.Load()), 3)
	assert.Equal(t, int(lastTotal.Load()), 3)
	for i, r := range results {
		assert.Equal(t, r.Bookmark.ID, bookmarks[i].ID)
	}
	assert.Equal(t, results[0].Placeholder, false)
	assert.Equal(t, results[1].Placeholder, true)
}

func TestUniqueHosts(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "1", URL: "https://a.com/1", Favicon: "x"},
		{ID: "f", Title: "Folder", IsFolder: true},
		{ID: "2", URL: "https://a.com/2", Favicon: "x"},
		{ID: "3", URL: "https://b.com", Favicon: "y"},
	}

	got := UniqueHosts(bookmarks)

	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].ID, "1")
	assert.Equal(t, got[1].ID, "3")
}

func TestWriteCache(t *testing.T) {
	dir := t.TempDir()
	b := model.Bookmark{ID: "1", URL: "https://a.com:8080/x"}

	err := WriteCache(dir, []Result{{Bookmark: &b, Icon: []byte("icon")}})
	assert.NilError(t, err)

	data, err := os.ReadFile(CachePath(dir, "a.com"))
	assert.NilError(t, err)
	assert.Equal(t, string(data), "icon")
}

func TestPlaceholderIsPNG(t *testing.T) {
	p := Placeholder()
	assert.Assert(t, len(p) > 8)
	assert.Equal(t, string(p[1:4]), "PNG")
}
