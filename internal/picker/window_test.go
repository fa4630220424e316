package picker

import (
	"fmt"
	"testing"

	"github.com/nikbrunner/shelf/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name       string
		maxVisible int
		cursor     int
		total      int
		wantStart  int
		wantEnd    int
	}{
		{name: "fits", maxVisible: 10, cursor: 3, total: 5, wantStart: 0, wantEnd: 5},
		{name: "cursor in first page", maxVisible: 3, cursor: 2, total: 10, wantStart: 0, wantEnd: 3},
		{name: "cursor past first page", maxVisible: 3, cursor: 5, total: 10, wantStart: 3, wantEnd: 6},
		{name: "cursor at end", maxVisible: 3, cursor: 9, total: 10, wantStart: 7, wantEnd: 10},
		{name: "zero window shows one", maxVisible: 0, cursor: 4, total: 10, wantStart: 4, wantEnd: 5},
		{name: "empty", maxVisible: 3, cursor: 0, total: 0, wantStart: 0, wantEnd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleRange(tt.maxVisible, tt.cursor, tt.total)
			assert.Equal(t, start, tt.wantStart)
			assert.Equal(t, end, tt.wantEnd)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text     string
		maxWidth int
		want     string
	}{
		{text: "short", maxWidth: 10, want: "short"},
		{text: "exact", maxWidth: 5, want: "exact"},
		{text: "Development", maxWidth: 6, want: "Devel…"},
		{text: "日本語のタイトル", maxWidth: 4, want: "日本語…"},
		{text: "abc", maxWidth: 1, want: "…"},
		{text: "abc", maxWidth: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.text, tt.maxWidth), func(t *testing.T) {
			assert.Equal(t, truncate(tt.text, tt.maxWidth), tt.want)
		})
	}
}

func TestPicker_ViewScrollsToCursor(t *testing.T) {
	var bookmarks []model.Bookmark
	for i := 0; i < 20; i++ {
		bookmarks = append(bookmarks, model.Bookmark{
			ID:    fmt.Sprintf("b%d", i),
			Title: fmt.Sprintf("Item %02d", i),
			URL:   fmt.Sprintf("https://item%02d.example", i),
		})
	}

	p, _ := press(New(bookmarks, "items"), windowSize(80, 13))
	p.cursor = 15

	view := p.View()
	assert.Assert(t, is.Contains(view, "Item 15"))
	assert.Assert(t, !contains(view, "Item 00"))
}
