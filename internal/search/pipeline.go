package search

import (
	"slices"

	"github.com/nikbrunner/shelf/internal/model"
)

// Options configure the view derived from a collection.
type Options struct {
	ShowHidden bool
	Query      Query
	Sort       SortKey
	Direction  Direction
}

// Apply filters and sorts bookmarks into a new slice.
// The input slice and its order are never modified.
func Apply(bookmarks []model.Bookmark, opts Options) []model.Bookmark {
	view := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.IsHidden && !opts.ShowHidden {
			continue
		}
		if !opts.Query.Match(b) {
			continue
		}
		view = append(view, b)
	}

	cmp := comparator(opts.Sort)
	if opts.Direction == Descending {
		asc := cmp
		cmp = func(a, b model.Bookmark) int { return asc(b, a) }
	}
	slices.SortStableFunc(view, cmp)

	return view
}
