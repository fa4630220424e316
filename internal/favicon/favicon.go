package favicon

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/shelf/internal/model"
)

// maxIconBytes bounds how much of a response body is kept.
const maxIconBytes = 1 << 20

// placeholderPNG is a 1x1 transparent PNG.
const placeholderPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// Placeholder returns the generic icon used when a favicon can't be fetched.
func Placeholder() []byte {
	data, _ := base64.StdEncoding.DecodeString(placeholderPNG)
	return data
}

// Result holds the fetch outcome for a single bookmark.
type Result struct {
	Bookmark    *model.Bookmark
	Icon        []byte
	Placeholder bool   // Icon is the generic placeholder
	StatusCode  int    // HTTP status code (0 if no request was made or it failed)
	Error       string // Why the placeholder was used
}

// ProgressFunc is called after each favicon is fetched.
// completed is the number of favicons fetched so far, total is the total count.
type ProgressFunc func(completed, total int)

// Fetcher downloads favicons. Failures never surface as errors; they
// degrade to the placeholder.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Fetch downloads the favicon of a single bookmark.
func (f *Fetcher) Fetch(ctx context.Context, bookmark *model.Bookmark) Result {
	result := Result{Bookmark: bookmark}

	if bookmark.IsFolder || bookmark.Favicon == "" {
		return placeholder(result, "no favicon")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bookmark.Favicon, nil)
	if err != nil {
		return placeholder(result, err.Error())
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return placeholder(result, normalizeError(err.Error()))
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return placeholder(result, http.StatusText(resp.StatusCode))
	}

	icon, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return placeholder(result, normalizeError(err.Error()))
	}
	if len(icon) == 0 {
		return placeholder(result, "empty response")
	}

	result.Icon = icon
	return result
}

// FetchAll fetches favicons for all bookmarks using a bounded pool of
// workers. Results are in input order.
func (f *Fetcher) FetchAll(ctx context.Context, bookmarks []model.Bookmark, concurrency int, onProgress ProgressFunc) []Result {
	if len(bookmarks) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(bookmarks))
	jobs := make(chan int, len(bookmarks))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = f.Fetch(ctx, &bookmarks[idx])

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(bookmarks))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range bookmarks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// UniqueHosts keeps the first non-folder bookmark per host.
func UniqueHosts(bookmarks []model.Bookmark) []model.Bookmark {
	seen := make(map[string]bool)
	var out []model.Bookmark
	for _, b := range bookmarks {
		if b.IsFolder || b.Favicon == "" {
			continue
		}
		host := b.Host()
		if seen[host] {
			continue
		}
		seen[host] = true
		out = append(out, b)
	}
	return out
}

// CachePath returns the file a host's icon is cached in.
func CachePath(dir, host string) string {
	name := strings.NewReplacer("/", "_", ":", "_", "\\", "_").Replace(host)
	return filepath.Join(dir, name+".png")
}

// WriteCache stores each result's icon under dir, one file per host.
func WriteCache(dir string, results []Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, r := range results {
		if r.Bookmark == nil {
			continue
		}
		path := CachePath(dir, r.Bookmark.Host())
		if err := os.WriteFile(path, r.Icon, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func placeholder(result Result, reason string) Result {
	result.Icon = Placeholder()
	result.Placeholder = true
	result.Error = reason
	return result
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"),
		strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
