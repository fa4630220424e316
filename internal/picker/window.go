package picker

import "unicode/utf8"

const ellipsis = "…"

// chromeLines is the header, filter and footer space around the list.
const chromeLines = 7

// visibleRange returns the slice bounds of a list window of maxVisible
// items that keeps cursor on screen.
func visibleRange(maxVisible, cursor, total int) (start, end int) {
	if maxVisible < 1 {
		maxVisible = 1
	}
	if total <= maxVisible {
		return 0, total
	}

	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	end = min(start+maxVisible, total)
	return start, end
}

// truncate shortens text to maxWidth runes, ending in an ellipsis.
func truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	if maxWidth == 1 {
		return ellipsis
	}
	return string(runes[:maxWidth-1]) + ellipsis
}
