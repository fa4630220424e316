package search

import (
	"regexp"
	"strings"

	"github.com/nikbrunner/shelf/internal/model"
)

// Mode is how a query string is interpreted.
type Mode int

const (
	ModeNone     Mode = iota // empty query, matches everything
	ModePlain                // case-insensitive substring
	ModeWildcard             // '*' matches any sequence, anchored
	ModeRegex                // /pattern/, case-insensitive
)

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeWildcard:
		return "wildcard"
	case ModeRegex:
		return "regex"
	default:
		return "none"
	}
}

// Query is a search string resolved once into its mode.
type Query struct {
	raw     string
	mode    Mode
	needle  string
	pattern *regexp.Regexp
	invalid bool
}

// ParseQuery detects the mode of q and compiles it.
// An invalid regex produces a query that matches nothing.
func ParseQuery(q string) Query {
	query := Query{raw: q}

	switch {
	case q == "":
		query.mode = ModeNone
	case len(q) >= 2 && strings.HasPrefix(q, "/") && strings.HasSuffix(q, "/"):
		query.mode = ModeRegex
		re, err := regexp.Compile("(?i)" + q[1:len(q)-1])
		if err != nil {
			query.invalid = true
		} else {
			query.pattern = re
		}
	case strings.Contains(q, "*"):
		query.mode = ModeWildcard
		parts := strings.Split(q, "*")
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		query.pattern = regexp.MustCompile("(?is)^" + strings.Join(parts, ".*") + "$")
	default:
		query.mode = ModePlain
		query.needle = strings.ToLower(q)
	}

	return query
}

// Mode returns the detected mode.
func (q Query) Mode() Mode {
	return q.mode
}

// Valid is false for a regex query whose pattern failed to compile.
func (q Query) Valid() bool {
	return !q.invalid
}

// String returns the raw query.
func (q Query) String() string {
	return q.raw
}

// Match reports whether b satisfies the query.
func (q Query) Match(b model.Bookmark) bool {
	switch q.mode {
	case ModeNone:
		return true
	case ModePlain:
		return strings.Contains(strings.ToLower(Haystack(b)), q.needle)
	default:
		if q.pattern == nil {
			return false
		}
		return q.pattern.MatchString(Haystack(b))
	}
}

// Haystack is the text a query is matched against: title, url and
// description joined by spaces. Empty fields are left out.
func Haystack(b model.Bookmark) string {
	parts := []string{b.Title}
	if b.URL != "" {
		parts = append(parts, b.URL)
	}
	if b.Description != "" {
		parts = append(parts, b.Description)
	}
	return strings.Join(parts, " ")
}
