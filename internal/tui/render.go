package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"
)

// overlayCenter composites a modal on top of the base view, centered within
// (width, height). Only the rows the modal covers are rebuilt; the rest of
// the base passes through untouched. The modal is padded to a rectangle so
// ragged lines do not let the base bleed through.
func overlayCenter(base, overlay string, width, height int) string {
	baseLines := splitLines(base)
	modalLines := splitLines(overlay)
	mw := maxLineWidth(modalLines)

	x := (width - mw) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(modalLines)) / 2
	if y < 0 {
		y = 0
	}

	for i, line := range modalLines {
		row := y + i
		if row >= len(baseLines) || row >= height {
			break
		}
		baseLines[row] = spliceRow(baseLines[row], padRight(line, mw), x, width)
	}
	return strings.Join(baseLines, "\n")
}

// spliceRow rebuilds one terminal row with mid inserted at column x, keeping
// whatever of the row remains visible on either side. Widths are ANSI-aware
// so styled text lines up.
func spliceRow(row, mid string, x, width int) string {
	row = padRight(row, width)

	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(mid)
	right := ansi.TruncateLeft(row, end, "")
	if gap := width - end - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + mid + right
}

// renderHints formats key bindings as a "key action" hint line.
func renderHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ·  ")
}

// ---------------------------------------------------------------------------
// String utilities
// ---------------------------------------------------------------------------

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to width cells, appending an ellipsis if truncated.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
