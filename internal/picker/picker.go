package picker

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// CopyFunc writes text to the clipboard.
type CopyFunc func(text string) error

// Picker is a simple TUI for selecting one bookmark from a view.
type Picker struct {
	bookmarks []model.Bookmark
	results   []search.SearchResult
	title     string
	keys      KeyMap
	copy      CopyFunc

	filter    textinput.Model
	filtering bool

	cursor    int
	selected  bool
	cancelled bool
	status    string
	width     int
	height    int
}

// New creates a new Picker over bookmarks. title is shown in the header.
func New(bookmarks []model.Bookmark, title string) Picker {
	filter := textinput.New()
	filter.Placeholder = "Filter..."
	filter.Prompt = "/"
	filter.CharLimit = 100

	return Picker{
		bookmarks: bookmarks,
		results:   search.Fuzzy(bookmarks, ""),
		title:     title,
		keys:      DefaultKeyMap(),
		copy:      clipboard.WriteAll,
		filter:    filter,
		width:     80,
		height:    24,
	}
}

// WithCopyFunc replaces the clipboard writer.
func (p Picker) WithCopyFunc(fn CopyFunc) Picker {
	p.copy = fn
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		if p.filtering {
			return p.updateFilter(msg)
		}

		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Select):
			if len(p.results) > 0 {
				p.selected = true
				return p, tea.Quit
			}

		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}

		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}

		case key.Matches(msg, p.keys.Filter):
			p.filtering = true
			p.status = ""
			cmd := p.filter.Focus()
			return p, cmd

		case key.Matches(msg, p.keys.YankURL):
			if b := p.current(); b != nil && b.URL != "" {
				if err := p.copy(b.URL); err != nil {
					p.status = "Copy failed: " + err.Error()
				} else {
					p.status = "Copied " + b.URL
				}
			}
		}
	}

	return p, nil
}

// updateFilter handles keys while the filter input is focused.
func (p Picker) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		p.filtering = false
		p.filter.Blur()
		p.filter.Reset()
		p.applyFilter()
		return p, nil
	case tea.KeyEnter:
		p.filtering = false
		p.filter.Blur()
		return p, nil
	case tea.KeyCtrlC:
		p.cancelled = true
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.applyFilter()
	return p, cmd
}

func (p *Picker) applyFilter() {
	p.results = search.Fuzzy(p.bookmarks, p.filter.Value())
	if p.cursor >= len(p.results) {
		p.cursor = max(len(p.results)-1, 0)
	}
}

func (p Picker) current() *model.Bookmark {
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Bookmark
	}
	return nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	// Header
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d results)", p.title, len(p.results))))
	b.WriteString("\n\n")

	if p.filtering || p.filter.Value() != "" {
		b.WriteString(p.filter.View())
		b.WriteString("\n\n")
	}

	// List items, two lines each
	start, end := visibleRange((p.height-chromeLines)/2, p.cursor, len(p.results))
	width := p.width - 3
	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(truncate(result.Bookmark.Title, width))))
		b.WriteString(fmt.Sprintf("   %s\n", urlStyle.Render(truncate(result.Bookmark.URL, width))))
	}

	// Footer
	b.WriteString("\n")
	if p.status != "" {
		b.WriteString(footerStyle.Render(p.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("j/k: move  /: filter  y: copy URL  Enter: open  q/Esc: cancel"))

	return b.String()
}

// SelectedBookmark returns the selected bookmark, or nil if cancelled.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected {
		return nil
	}
	return p.current()
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
