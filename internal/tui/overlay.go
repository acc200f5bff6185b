package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Active overlay.
const (
	overlayNone = iota
	overlayHelp
	overlaySSHUser
)

const ansiReset = "\033[0m"

// renderOverlay dims base and draws box centered over it. Rows of box that
// fall below the base view are dropped.
func renderOverlay(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	for i, row := range rows {
		rows[i] = overlayDimStyle.Render(row)
	}

	boxRows := strings.Split(box, "\n")
	top, left := centerBox(width, height, lipgloss.Width(box), len(boxRows))

	for i, fg := range boxRows {
		if r := top + i; r < len(rows) {
			rows[r] = spliceRow(rows[r], fg, left)
		}
	}
	return strings.Join(rows, "\n")
}

// centerBox returns the top-left cell for a boxW x boxH box in a width x
// height screen, never closer than one cell to the top or left edge.
func centerBox(width, height, boxW, boxH int) (top, left int) {
	return max((height-boxH)/2, 1), max((width-boxW)/2, 1)
}

// spliceRow replaces the cells of bg starting at column left with fg. Styling
// of bg on either side is kept; fg is isolated by resets.
func spliceRow(bg, fg string, left int) string {
	out := ansi.Truncate(bg, left, "") + ansiReset + fg + ansiReset
	if end, bgW := left+lipgloss.Width(fg), lipgloss.Width(bg); end < bgW {
		out += ansi.Cut(bg, end, bgW)
	}
	return out
}
