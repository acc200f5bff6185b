package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	left := " " + getKeyHints(m)

	right := ""
	if m.state.Holding() || m.state.Toggling {
		right = lipgloss.NewStyle().Foreground(colorCyan).Render(m.state.StatusMessage) + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	switch m.activeOverlay {
	case overlaySSHUser:
		return keyHint("Enter", "save") + "  " + keyHint("Esc", "cancel")
	case overlayHelp:
		return keyHint("Esc", "close")
	}
	if m.prefsForm.IsEditing() {
		return keyHint("Enter", "apply") + "  " + keyHint("Esc", "cancel")
	}

	base := keyHint("q", "quit") + "  " + keyHint("?", "help") + "  " + keyHint("Tab", "switch") +
		"  " + keyHint("t", toggleHint(m))

	if m.focusedPanel == panelPeers {
		return base + "  " + keyHint("c", "copy IP") + "  " + keyHint("s", "ssh") + "  " +
			keyHint("u", "ssh user") + "  " + keyHint("a", "admin")
	}
	return base + "  " + keyHint("Space", "toggle") + "  " + keyHint("Enter", "edit")
}

func toggleHint(m *Model) string {
	if m.state.Connected {
		return "disconnect"
	}
	return "connect"
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}
