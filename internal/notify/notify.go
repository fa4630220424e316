package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/shelf/internal/model"
)

// Styles for each notification level.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// DefaultStyles uses the grayscale palette with a teal accent.
func DefaultStyles() Styles {
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	danger := lipgloss.AdaptiveColor{Light: "#A04040", Dark: "#C06060"}

	return Styles{
		Success: lipgloss.NewStyle().Foreground(accent),
		Error:   lipgloss.NewStyle().Foreground(danger).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(subtle),
	}
}

// Printer writes one styled line per notification.
type Printer struct {
	w      io.Writer
	styles Styles
	quiet  bool
}

// NewPrinter creates a Printer writing to w. A quiet printer only shows errors.
func NewPrinter(w io.Writer, quiet bool) *Printer {
	return &Printer{w: w, styles: DefaultStyles(), quiet: quiet}
}

// Notify implements model.Notifier.
func (p *Printer) Notify(n model.Notification) {
	var style lipgloss.Style
	var marker string
	switch n.Level {
	case model.LevelSuccess:
		if p.quiet {
			return
		}
		style, marker = p.styles.Success, "✓"
	case model.LevelError:
		style, marker = p.styles.Error, "✗"
	default:
		if p.quiet {
			return
		}
		style, marker = p.styles.Info, "•"
	}
	fmt.Fprintln(p.w, style.Render(marker+" "+n.Message))
}
