package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tailtray/tailtray/internal/applet"
)

func renderHeader(st *applet.State, loginName, spin string, width int) string {
	dotColor := colorDim
	if st.Connected {
		dotColor = colorGreen
	}
	dot := lipgloss.NewStyle().Foreground(dotColor).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("Tailscale")

	left := fmt.Sprintf(" %s %s", dot, name)
	if st.TailnetName != "" {
		left += "  " + hintStyle.Render(st.TailnetName)
	}
	if loginName != "" {
		left += "  " + hintStyle.Render(loginName)
	}

	right := renderConnectionBadge(st, spin) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderConnectionBadge(st *applet.State, spin string) string {
	switch {
	case st.Toggling:
		return badgeBusyStyle.Render(spin + " " + st.StatusMessage)
	case strings.HasPrefix(st.StatusMessage, "Error:"):
		return badgeErrorStyle.Render("✗ " + st.StatusMessage)
	case st.Connected:
		msg := st.StatusMessage
		if msg == applet.MsgConnected {
			msg = fmt.Sprintf("%s · %d/%d online", msg, st.OnlineCount(), len(st.Peers))
		}
		return badgeConnectedStyle.Render("● " + msg)
	case st.StatusMessage == applet.MsgNotRunning:
		return badgeErrorStyle.Render("⚠ " + st.StatusMessage)
	default:
		return badgeDisconnectedStyle.Render("○ " + st.StatusMessage)
	}
}
