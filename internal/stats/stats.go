package stats

import (
	"slices"

	"github.com/nikbrunner/shelf/internal/model"
)

// MaxDomains caps the number of entries returned by Domains.
const MaxDomains = 10

// DomainCount is the number of bookmarks sharing a host.
type DomainCount struct {
	Domain string
	Count  int
}

// Domains counts non-folder bookmarks per host, most frequent first.
// Ties keep the order in which hosts were first seen.
func Domains(bookmarks []model.Bookmark) []DomainCount {
	var counts []DomainCount
	index := make(map[string]int)

	for _, b := range bookmarks {
		if b.IsFolder || b.URL == "" {
			continue
		}
		host := b.Host()
		if i, ok := index[host]; ok {
			counts[i].Count++
			continue
		}
		index[host] = len(counts)
		counts = append(counts, DomainCount{Domain: host, Count: 1})
	}

	slices.SortStableFunc(counts, func(a, b DomainCount) int {
		return b.Count - a.Count
	})

	if len(counts) > MaxDomains {
		counts = counts[:MaxDomains]
	}
	return counts
}
