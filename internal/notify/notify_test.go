package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nikbrunner/shelf/internal/model"
)

func TestPrinter_WritesMessages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Notify(model.Notification{Level: model.LevelSuccess, Message: "Bookmark added"})
	p.Notify(model.Notification{Level: model.LevelError, Message: "duplicate"})
	p.Notify(model.Notification{Level: model.LevelInfo, Message: "nothing new"})

	out := buf.String()
	for _, want := range []string{"Bookmark added", "duplicate", "nothing new"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
}

func TestPrinter_QuietShowsOnlyErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Notify(model.Notification{Level: model.LevelSuccess, Message: "Bookmark added"})
	p.Notify(model.Notification{Level: model.LevelInfo, Message: "nothing new"})
	p.Notify(model.Notification{Level: model.LevelError, Message: "duplicate"})

	out := buf.String()
	if strings.Contains(out, "Bookmark added") || strings.Contains(out, "nothing new") {
		t.Errorf("quiet printer should drop success and info, got %q", out)
	}
	if !strings.Contains(out, "duplicate") {
		t.Errorf("quiet printer should keep errors, got %q", out)
	}
}
