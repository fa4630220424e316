package model

import (
	"net/url"
	"strings"
	"time"
)

// DefaultFaviconService is the host serving favicons by domain.
const DefaultFaviconService = "www.google.com"

// Bookmark is one entry in the collection. Folders carry no URL or favicon.
type Bookmark struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
	DateAdded   *int64 `json:"dateAdded,omitempty"` // epoch milliseconds, nil = unknown
	IsFolder    bool   `json:"isFolder"`
	IsHidden    bool   `json:"isHidden,omitempty"`
}

// NewBookmarkParams holds the caller-supplied fields for a new Bookmark.
type NewBookmarkParams struct {
	Title       string
	URL         string
	Description string
	IsFolder    bool
	DateAdded   *int64 // optional, defaults to the store clock
}

// Candidate is a parsed import record that has not been inserted yet.
type Candidate struct {
	Title       string
	URL         string
	Description string
	DateAdded   *int64
}

// Host returns the host portion of the bookmark URL.
// A URL that does not parse falls back to the raw string.
func (b Bookmark) Host() string {
	return Host(b.URL)
}

// Added returns DateAdded as a time, or the zero time when unknown.
func (b Bookmark) Added() time.Time {
	if b.DateAdded == nil {
		return time.Time{}
	}
	return time.UnixMilli(*b.DateAdded)
}

// Host extracts the host of rawURL, falling back to rawURL itself.
func Host(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return rawURL
	}
	return strings.ToLower(parsed.Hostname())
}

// FaviconURL returns the favicon service URL for rawURL, or "" when the URL has no host.
func FaviconURL(service, rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	if service == "" {
		service = DefaultFaviconService
	}
	return "https://" + service + "/s2/favicons?domain=" + url.QueryEscape(parsed.Hostname())
}

// Millis converts t to an epoch-millisecond pointer.
func Millis(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}
