package search

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/shelf/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the field the view is ordered by.
type SortKey int

const (
	SortName SortKey = iota
	SortType
	SortDomain
	SortDate
)

var sortKeyNames = []string{"name", "type", "domain", "date"}

func (k SortKey) String() string {
	if int(k) < len(sortKeyNames) {
		return sortKeyNames[k]
	}
	return "unknown"
}

// ParseSortKey parses "name", "type", "domain" or "date".
func ParseSortKey(s string) (SortKey, error) {
	for i, name := range sortKeyNames {
		if strings.EqualFold(s, name) {
			return SortKey(i), nil
		}
	}
	return SortName, fmt.Errorf("unknown sort key %q (want one of %s)", s, strings.Join(sortKeyNames, ", "))
}

// Direction is the sort direction. Descending reverses the comparator.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// comparator returns a three-way compare for key in ascending order.
// Ascending date order is newest first; bookmarks without a date are oldest.
func comparator(key SortKey) func(a, b model.Bookmark) int {
	col := collate.New(language.Und)
	// Titles the collator ranks equal fall back to byte order, so
	// distinct titles never tie.
	byTitle := func(a, b model.Bookmark) int {
		if c := col.CompareString(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.Title, b.Title)
	}

	switch key {
	case SortType:
		return func(a, b model.Bookmark) int {
			if c := compareFolderFirst(a, b); c != 0 {
				return c
			}
			return byTitle(a, b)
		}
	case SortDomain:
		return func(a, b model.Bookmark) int {
			if c := compareFolderFirst(a, b); c != 0 {
				return c
			}
			if a.IsFolder {
				return 0
			}
			return strings.Compare(a.Host(), b.Host())
		}
	case SortDate:
		return func(a, b model.Bookmark) int {
			return compareInt64(dateOf(b), dateOf(a))
		}
	default:
		return byTitle
	}
}

func compareFolderFirst(a, b model.Bookmark) int {
	switch {
	case a.IsFolder == b.IsFolder:
		return 0
	case a.IsFolder:
		return -1
	default:
		return 1
	}
}

// dateOf treats a missing date as the oldest possible.
func dateOf(b model.Bookmark) int64 {
	if b.DateAdded == nil {
		return -1 << 63
	}
	return *b.DateAdded
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
