package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/shelf/internal/model"
)

// DefaultFileName is the name of the generated download.
const DefaultFileName = "bookmarks.html"

// DefaultExportPath returns bookmarks.html in the working directory.
func DefaultExportPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, DefaultFileName), nil
}

// ExportHTML renders the collection, in order, as a Netscape bookmark file.
func ExportHTML(bookmarks []model.Bookmark) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, bookmark := range bookmarks {
		writeItem(&b, bookmark)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeItem writes one DT entry: a heading for folders, an anchor otherwise.
func writeItem(b *strings.Builder, bookmark model.Bookmark) {
	const prefix = "    "

	if bookmark.IsFolder {
		fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(bookmark.Title))
		return
	}

	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\"", prefix, html.EscapeString(bookmark.URL))
	if bookmark.DateAdded != nil {
		fmt.Fprintf(b, " ADD_DATE=\"%d\"", *bookmark.DateAdded/1000)
	}
	if bookmark.Description != "" {
		fmt.Fprintf(b, " DESCRIPTION=\"%s\"", html.EscapeString(bookmark.Description))
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(bookmark.Title))
}
