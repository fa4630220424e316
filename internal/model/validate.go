package model

import "fmt"

// Validate checks that a loaded collection keeps the record invariants:
// every record has an id and title, ids are unique, folders carry no url
// or favicon, and no two bookmarks share a url.
func Validate(bookmarks []Bookmark) error {
	ids := make(map[string]bool, len(bookmarks))
	urls := make(map[string]bool, len(bookmarks))

	for i, b := range bookmarks {
		switch {
		case b.ID == "":
			return fmt.Errorf("%w: record %d has no id", ErrMalformedState, i)
		case b.Title == "":
			return fmt.Errorf("%w: record %q has no title", ErrMalformedState, b.ID)
		case ids[b.ID]:
			return fmt.Errorf("%w: duplicate id %q", ErrMalformedState, b.ID)
		}
		ids[b.ID] = true

		if b.IsFolder {
			if b.URL != "" || b.Favicon != "" {
				return fmt.Errorf("%w: folder %q has a url", ErrMalformedState, b.ID)
			}
			continue
		}
		if b.URL == "" {
			return fmt.Errorf("%w: bookmark %q has no url", ErrMalformedState, b.ID)
		}
		if urls[b.URL] {
			return fmt.Errorf("%w: duplicate url %s", ErrMalformedState, b.URL)
		}
		urls[b.URL] = true
	}
	return nil
}
