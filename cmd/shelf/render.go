package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/stats"
)

// listStyles holds the lipgloss styles for list and stats output.
// Industrial design: grayscale with single desaturated teal accent.
type listStyles struct {
	Title  lipgloss.Style
	Folder lipgloss.Style
	Item   lipgloss.Style
	URL    lipgloss.Style
	Desc   lipgloss.Style
	Meta   lipgloss.Style
	Hidden lipgloss.Style
}

func defaultListStyles() listStyles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}

	return listStyles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Folder: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Item:   lipgloss.NewStyle().Foreground(primary),
		URL:    lipgloss.NewStyle().Foreground(subtle),
		Desc:   lipgloss.NewStyle().Foreground(subtle).Italic(true),
		Meta:   lipgloss.NewStyle().Foreground(subtle),
		Hidden: lipgloss.NewStyle().Foreground(subtle).Strikethrough(true),
	}
}

// renderList writes one block per record: title line, then url and description.
func renderList(w io.Writer, bookmarks []model.Bookmark, s listStyles) {
	for _, b := range bookmarks {
		title := s.Item.Render(b.Title)
		if b.IsFolder {
			title = s.Folder.Render("▸ " + b.Title)
		}
		if b.IsHidden {
			title += " " + s.Hidden.Render("hidden")
		}

		meta := b.ID
		if b.DateAdded != nil {
			meta += "  " + b.Added().Format(time.DateOnly)
		}
		fmt.Fprintf(w, "%s  %s\n", title, s.Meta.Render(meta))

		if b.URL != "" {
			fmt.Fprintf(w, "   %s\n", s.URL.Render(b.URL))
		}
		if b.Description != "" {
			fmt.Fprintf(w, "   %s\n", s.Desc.Render(b.Description))
		}
	}
}

// renderStats writes totals followed by the top domains table.
func renderStats(w io.Writer, bookmarks, folders int, domains []stats.DomainCount, s listStyles) {
	fmt.Fprintln(w, s.Title.Render("Statistics"))
	fmt.Fprintf(w, "  %s %d\n", s.Meta.Render("Bookmarks:"), bookmarks)
	fmt.Fprintf(w, "  %s %d\n", s.Meta.Render("Folders:"), folders)

	if len(domains) == 0 {
		return
	}

	width := 0
	for _, d := range domains {
		width = max(width, len(d.Domain))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Title.Render("Top domains"))
	for _, d := range domains {
		pad := strings.Repeat(" ", width-len(d.Domain))
		fmt.Fprintf(w, "  %s%s  %s\n", s.Item.Render(d.Domain), pad, s.URL.Render(fmt.Sprint(d.Count)))
	}
}
