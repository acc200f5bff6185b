package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tailtray/tailtray/internal/models"
	"github.com/tailtray/tailtray/internal/tailscale"
)

// PeerList is the peer list component for the left panel.
type PeerList struct {
	peers        []tailscale.Peer
	flatItems    []peerItem // Flattened list for cursor navigation
	cursor       int
	scrollOffset int
	height       int
}

type peerItem struct {
	peer      tailscale.Peer
	isHeader  bool
	headerStr string
}

// NewPeerList creates a new peer list.
func NewPeerList() *PeerList {
	return &PeerList{}
}

// SetPeers replaces the peers and keeps the cursor on the same host when possible.
func (pl *PeerList) SetPeers(peers []tailscale.Peer) {
	selected := ""
	if p, ok := pl.Selected(); ok {
		selected = p.HostName
	}

	pl.peers = peers
	pl.rebuild()

	pl.cursor = 0
	for i, item := range pl.flatItems {
		if !item.isHeader && item.peer.HostName == selected {
			pl.cursor = i
			break
		}
	}
	pl.skipHeaders(1)
	pl.ensureVisible()
}

// SetHeight sets the visible height.
func (pl *PeerList) SetHeight(h int) {
	pl.height = h
}

// Selected returns the peer under the cursor.
func (pl *PeerList) Selected() (tailscale.Peer, bool) {
	if pl.cursor < 0 || pl.cursor >= len(pl.flatItems) {
		return tailscale.Peer{}, false
	}
	item := pl.flatItems[pl.cursor]
	if item.isHeader {
		return tailscale.Peer{}, false
	}
	return item.peer, true
}

// MoveUp moves the cursor up, skipping headers.
func (pl *PeerList) MoveUp() {
	if len(pl.flatItems) == 0 {
		return
	}
	pl.cursor--
	if pl.cursor < 0 {
		pl.cursor = 0
	}
	pl.skipHeaders(-1)
	pl.ensureVisible()
}

// MoveDown moves the cursor down, skipping headers.
func (pl *PeerList) MoveDown() {
	if len(pl.flatItems) == 0 {
		return
	}
	pl.cursor++
	if pl.cursor >= len(pl.flatItems) {
		pl.cursor = len(pl.flatItems) - 1
	}
	pl.skipHeaders(1)
	pl.ensureVisible()
}

func (pl *PeerList) skipHeaders(direction int) {
	for pl.cursor >= 0 && pl.cursor < len(pl.flatItems) && pl.flatItems[pl.cursor].isHeader {
		pl.cursor += direction
	}
	if pl.cursor < 0 {
		pl.cursor = 0
		for pl.cursor < len(pl.flatItems) && pl.flatItems[pl.cursor].isHeader {
			pl.cursor++
		}
	}
	if pl.cursor >= len(pl.flatItems) {
		pl.cursor = len(pl.flatItems) - 1
		for pl.cursor >= 0 && pl.flatItems[pl.cursor].isHeader {
			pl.cursor--
		}
	}
}

func (pl *PeerList) ensureVisible() {
	if pl.height <= 0 {
		return
	}
	if pl.cursor < pl.scrollOffset {
		pl.scrollOffset = pl.cursor
	}
	if pl.cursor >= pl.scrollOffset+pl.height {
		pl.scrollOffset = pl.cursor - pl.height + 1
	}
}

// rebuild groups peers into Online and Offline sections. Input order is kept.
func (pl *PeerList) rebuild() {
	var online, offline []tailscale.Peer
	for _, p := range pl.peers {
		if p.Online {
			online = append(online, p)
		} else {
			offline = append(offline, p)
		}
	}

	var items []peerItem
	for _, sec := range []struct {
		name  string
		peers []tailscale.Peer
	}{
		{"Online", online},
		{"Offline", offline},
	} {
		if len(sec.peers) == 0 {
			continue
		}
		items = append(items, peerItem{
			isHeader:  true,
			headerStr: fmt.Sprintf("%s (%d)", sec.name, len(sec.peers)),
		})
		for _, p := range sec.peers {
			items = append(items, peerItem{peer: p})
		}
	}
	pl.flatItems = items
	if pl.scrollOffset >= len(items) {
		pl.scrollOffset = 0
	}
}

// View renders the peer list.
func (pl *PeerList) View(width int, copiedIP string, users *models.SSHUsers) string {
	if len(pl.flatItems) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("No peers.")
	}

	height := pl.height
	if height <= 0 {
		height = len(pl.flatItems)
	}
	end := pl.scrollOffset + height
	if end > len(pl.flatItems) {
		end = len(pl.flatItems)
	}

	var lines []string
	for i := pl.scrollOffset; i < end; i++ {
		item := pl.flatItems[i]

		if item.isHeader {
			line := sectionHeaderStyle.Render(item.headerStr)
			if i > 0 {
				line = "\n" + line
			}
			lines = append(lines, line)
			continue
		}

		row := formatPeerRow(item.peer, copiedIP, users.Lookup(item.peer.HostName))
		// Truncate to fit panel width (2 for indent prefix)
		if maxWidth := width - 2; maxWidth > 0 {
			row = ansi.Truncate(row, maxWidth, "…")
		}

		line := row
		if i == pl.cursor {
			line = selectedItemStyle.Width(width - 2).Render(ansi.Strip(row))
		}
		lines = append(lines, "  "+line)
	}

	if pl.scrollOffset > 0 {
		lines = append([]string{lipgloss.NewStyle().Foreground(colorDim).Render("  ▲ more")}, lines...)
	}
	if end < len(pl.flatItems) {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render("  ▼ more"))
	}

	return strings.Join(lines, "\n")
}

// formatPeerRow renders one peer: status dot, name, address, OS and tags.
func formatPeerRow(p tailscale.Peer, copiedIP, sshUser string) string {
	dot := peerOfflineStyle.Render("○")
	name := peerOfflineStyle.Render(p.DisplayName())
	if p.Online {
		dot = peerOnlineStyle.Render("●")
		name = settingsValueStyle.Render(p.DisplayName())
	}

	parts := []string{dot, name}
	if ip := p.PrimaryIP(); ip != "" {
		if ip == copiedIP {
			parts = append(parts, peerCopiedStyle.Render("Copied!"))
		} else {
			parts = append(parts, hintStyle.Render(ip))
		}
	}
	if p.OS != "" {
		parts = append(parts, hintStyle.Render("["+p.OS+"]"))
	}
	if p.ExitNode {
		parts = append(parts, peerExitStyle.Render("exit node"))
	}
	if sshUser != "" {
		parts = append(parts, peerUserStyle.Render("ssh:"+sshUser))
	}
	return strings.Join(parts, " ")
}
