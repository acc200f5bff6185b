package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel indices.
const (
	panelPeers = 0
	panelPrefs = 1
)

// panelLayout holds computed dimensions for the two-panel layout.
type panelLayout struct {
	leftWidth     int
	rightWidth    int
	contentHeight int
}

// innerHeight is the number of content rows inside a panel, below its title.
func (l panelLayout) innerHeight() int {
	h := l.contentHeight - 3 // borders + title
	if h < 1 {
		h = 1
	}
	return h
}

func computeLayout(width, height int, splitRatio float64) panelLayout {
	// Reserve: 1 line header, 1 line status bar
	contentHeight := height - 2
	if contentHeight < 3 {
		contentHeight = 3
	}

	usable := width - 1 // 1 for divider
	leftWidth := int(float64(usable) * splitRatio)
	rightWidth := usable - leftWidth

	if leftWidth < 20 {
		leftWidth = 20
	}
	if rightWidth < 20 {
		rightWidth = 20
	}

	return panelLayout{
		leftWidth:     leftWidth,
		rightWidth:    rightWidth,
		contentHeight: contentHeight,
	}
}

func renderPanels(leftTitle, leftContent, rightTitle, rightContent string, layout panelLayout, focusedPanel int) string {
	leftStyle := unfocusedBorderStyle
	rightStyle := unfocusedBorderStyle
	leftTitleStyle := hintStyle
	rightTitleStyle := hintStyle
	if focusedPanel == panelPeers {
		leftStyle = focusedBorderStyle
		leftTitleStyle = sectionHeaderStyle
	} else {
		rightStyle = focusedBorderStyle
		rightTitleStyle = sectionHeaderStyle
	}

	// Inner dimensions (subtract 2 for border on each side)
	leftInner := max(layout.leftWidth-2, 1)
	rightInner := max(layout.rightWidth-2, 1)
	innerHeight := max(layout.contentHeight-2, 1)

	left := leftStyle.
		Width(leftInner).
		Height(innerHeight).
		Render(truncateContent(leftTitleStyle.Render(leftTitle)+"\n"+leftContent, leftInner, innerHeight))

	right := rightStyle.
		Width(rightInner).
		Height(innerHeight).
		Render(truncateContent(rightTitleStyle.Render(rightTitle)+"\n"+rightContent, rightInner, innerHeight))

	divider := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(strings.TrimSuffix(strings.Repeat("│\n", lipgloss.Height(left)), "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
}

// truncateContent ensures content fits within the given dimensions.
func truncateContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")

	if len(lines) > height {
		lines = lines[:height]
	}

	// Truncate long lines (ANSI-aware)
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}

	return strings.Join(lines, "\n")
}
