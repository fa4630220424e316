package stats_test

import (
	"fmt"
	"testing"

	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/stats"
	"gotest.tools/v3/assert"
)

func TestDomains_CountsByHost(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "1", Title: "a1", URL: "http://a.com/1"},
		{ID: "2", Title: "a2", URL: "http://a.com/2"},
		{ID: "3", Title: "b1", URL: "http://b.com/1"},
	}

	got := stats.Domains(bookmarks)

	assert.DeepEqual(t, got, []stats.DomainCount{
		{Domain: "a.com", Count: 2},
		{Domain: "b.com", Count: 1},
	})
}

func TestDomains_SkipsFolders(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "f", Title: "Folder", IsFolder: true},
		{ID: "1", Title: "x", URL: "https://x.org"},
	}

	got := stats.Domains(bookmarks)

	assert.DeepEqual(t, got, []stats.DomainCount{{Domain: "x.org", Count: 1}})
}

func TestDomains_TiesKeepFirstSeenOrder(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "1", Title: "c", URL: "https://c.com"},
		{ID: "2", Title: "a", URL: "https://a.com"},
		{ID: "3", Title: "b", URL: "https://b.com"},
		{ID: "4", Title: "b2", URL: "https://b.com/2"},
	}

	got := stats.Domains(bookmarks)

	assert.DeepEqual(t, got, []stats.DomainCount{
		{Domain: "b.com", Count: 2},
		{Domain: "c.com", Count: 1},
		{Domain: "a.com", Count: 1},
	})
}

func TestDomains_CapsAtTen(t *testing.T) {
	var bookmarks []model.Bookmark
	for i := 0; i < 15; i++ {
		bookmarks = append(bookmarks, model.Bookmark{
			ID:    fmt.Sprint(i),
			Title: fmt.Sprint(i),
			URL:   fmt.Sprintf("https://site%d.example/", i),
		})
	}

	got := stats.Domains(bookmarks)

	assert.Equal(t, len(got), stats.MaxDomains)
	assert.Equal(t, got[0].Domain, "site0.example")
	assert.Equal(t, got[9].Domain, "site9.example")
}

func TestDomains_MalformedURLUsesRawString(t *testing.T) {
	bookmarks := []model.Bookmark{{ID: "1", Title: "weird", URL: "::not-a-url"}}

	got := stats.Domains(bookmarks)

	assert.DeepEqual(t, got, []stats.DomainCount{{Domain: "::not-a-url", Count: 1}})
}

func TestDomains_Empty(t *testing.T) {
	assert.Equal(t, len(stats.Domains(nil)), 0)
}
