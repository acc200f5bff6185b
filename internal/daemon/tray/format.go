package tray

import (
	"fmt"

	"github.com/tailtray/tailtray/internal/tailscale"
)

// CopiedLabel replaces an address in the menu right after it was copied.
const CopiedLabel = "Copied!"

func formatSelfTitle(self tailscale.Node, copiedIP string) string {
	ip := self.PrimaryIP()
	if ip == "" {
		return "This device: " + self.DisplayName()
	}
	if ip == copiedIP {
		return fmt.Sprintf("This device: %s (%s)", self.DisplayName(), CopiedLabel)
	}
	return fmt.Sprintf("This device: %s (%s)", self.DisplayName(), ip)
}

func formatPeerTitle(p tailscale.Peer, copiedIP string) string {
	dot := "○"
	if p.Online {
		dot = "●"
	}
	title := fmt.Sprintf("%s %s", dot, p.DisplayName())
	if p.OS != "" {
		title += " [" + p.OS + "]"
	}
	if p.ExitNode {
		title += " (exit node)"
	}
	if ip := p.PrimaryIP(); ip != "" && ip == copiedIP {
		title += " " + CopiedLabel
	}
	return title
}

func formatCopyTitle(ip string) string {
	if ip == "" {
		return "Copy IP"
	}
	return "Copy IP (" + ip + ")"
}

func formatSSHTitle(target string) string {
	return "SSH to " + target
}

func formatOverflow(hidden int) string {
	if hidden == 1 {
		return "…and 1 more peer"
	}
	return fmt.Sprintf("…and %d more peers", hidden)
}

func toggleTitle(connected bool) string {
	if connected {
		return "Disconnect"
	}
	return "Connect"
}
