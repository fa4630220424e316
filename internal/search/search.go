package search

import (
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkTitles implements fuzzy.Source for bookmark slice.
type bookmarkTitles []*model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// Fuzzy matches query against bookmark titles.
// Returns results sorted by match score (best first). An empty query
// returns every bookmark in input order.
func Fuzzy(bookmarks []model.Bookmark, query string) []SearchResult {
	items := make(bookmarkTitles, len(bookmarks))
	for i := range bookmarks {
		items[i] = &bookmarks[i]
	}

	if query == "" {
		results := make([]SearchResult, len(items))
		for i, b := range items {
			results[i] = SearchResult{Bookmark: b}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, items)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
