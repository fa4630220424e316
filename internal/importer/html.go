package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nikbrunner/shelf/internal/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// ErrParse is returned when the input cannot be read.
var ErrParse = errors.New("cannot parse bookmark file")

// ParseHTML parses a Netscape bookmark file and returns one candidate per
// anchor with a non-empty href and text, in document order.
// Folder headings and everything else are ignored; malformed markup is
// tolerated and yields whatever anchors are recoverable.
// The encoding is sniffed from a BOM or meta charset, falling back to
// windows-1252 for input that is not valid UTF-8.
func ParseHTML(r io.Reader) ([]model.Candidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	doc, err := html.Parse(bytes.NewReader(decode(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	candidates := []model.Candidate{}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			href := getAttr(n, "href")
			title := getTextContent(n)
			if href != "" && title != "" {
				candidates = append(candidates, model.Candidate{
					Title:       title,
					URL:         href,
					Description: getAttr(n, "description"),
					DateAdded:   parseAddDate(getAttr(n, "add_date")),
				})
			}
			return // Don't recurse into A
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return candidates, nil
}

// decode converts data to UTF-8. Undecodable input is parsed as-is.
func decode(data []byte) []byte {
	enc, _, _ := charset.DetermineEncoding(data, "")
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return data
	}
	return decoded
}

// parseAddDate converts an ADD_DATE value (unix seconds) to epoch milliseconds.
func parseAddDate(v string) *int64 {
	if v == "" {
		return nil
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ts <= 0 {
		return nil
	}
	ms := ts * 1000
	return &ms
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
