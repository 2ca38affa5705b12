package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	glyphRows = 5

	// minBigClockWidth is the narrowest terminal the block clock is drawn in.
	minBigClockWidth = 40
)

// clockFont holds the block glyphs for the clock face, rows separated by '|'.
// Digits are four cells wide except '1'; the colon is a single cell.
var clockFont = map[rune]string{
	'0': "████|█  █|█  █|█  █|████",
	'1': " █ |██ | █ | █ |███",
	'2': "████|   █|████|█   |████",
	'3': "████|   █|████|   █|████",
	'4': "█  █|█  █|████|   █|   █",
	'5': "████|█   |████|   █|████",
	'6': "████|█   |████|█  █|████",
	'7': "████|   █|  █ | █  | █  ",
	'8': "████|█  █|████|█  █|████",
	'9': "████|█  █|████|   █|████",
	':': " |█| |█| ",
}

// glyph returns the rows for r, or false when the font has no such glyph.
func glyph(r rune) ([]string, bool) {
	g, ok := clockFont[r]
	if !ok {
		return nil, false
	}
	return strings.Split(g, "|"), true
}

// renderBigTime draws a MM:SS string in block digits. Terminals narrower
// than minBigClockWidth get the plain string in bold instead.
func renderBigTime(timeStr string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minBigClockWidth {
		return style.Render(timeStr)
	}

	var rows [glyphRows]strings.Builder
	for _, r := range timeStr {
		g, ok := glyph(r)
		if !ok {
			continue
		}
		for i := range rows {
			if rows[i].Len() > 0 {
				rows[i].WriteByte(' ')
			}
			rows[i].WriteString(g[i])
		}
	}

	out := make([]string, glyphRows)
	for i := range rows {
		out[i] = style.Render(rows[i].String())
	}
	return strings.Join(out, "\n")
}
