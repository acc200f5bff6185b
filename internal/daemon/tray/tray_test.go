package tray

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/tailtray/tailtray/internal/tailscale"
)

func TestFormatPeerTitle(t *testing.T) {
	base := tailscale.Peer{
		Node: tailscale.Node{HostName: "nas", DNSName: "nas.example.ts.net.", IPs: []string{"100.64.0.7"}},
		OS:   "linux",
	}

	tests := []struct {
		name     string
		peer     func() tailscale.Peer
		copied   string
		expected string
	}{
		{
			name:     "offline",
			peer:     func() tailscale.Peer { return base },
			expected: "○ nas [linux]",
		},
		{
			name: "online exit node",
			peer: func() tailscale.Peer {
				p := base
				p.Online = true
				p.ExitNode = true
				return p
			},
			expected: "● nas [linux] (exit node)",
		},
		{
			name:     "just copied",
			peer:     func() tailscale.Peer { return base },
			copied:   "100.64.0.7",
			expected: "○ nas [linux] Copied!",
		},
		{
			name: "no os",
			peer: func() tailscale.Peer {
				p := base
				p.OS = ""
				return p
			},
			expected: "○ nas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPeerTitle(tt.peer(), tt.copied); got != tt.expected {
				t.Errorf("formatPeerTitle() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatSelfTitle(t *testing.T) {
	self := tailscale.Node{HostName: "laptop", IPs: []string{"100.64.0.1"}}

	if got := formatSelfTitle(self, ""); got != "This device: laptop (100.64.0.1)" {
		t.Errorf("formatSelfTitle() = %q", got)
	}
	if got := formatSelfTitle(self, "100.64.0.1"); got != "This device: laptop (Copied!)" {
		t.Errorf("formatSelfTitle() copied = %q", got)
	}
	if got := formatSelfTitle(tailscale.Node{HostName: "laptop"}, ""); got != "This device: laptop" {
		t.Errorf("formatSelfTitle() no ip = %q", got)
	}
}

func TestFormatOverflow(t *testing.T) {
	if got := formatOverflow(1); got != "…and 1 more peer" {
		t.Errorf("formatOverflow(1) = %q", got)
	}
	if got := formatOverflow(4); got != "…and 4 more peers" {
		t.Errorf("formatOverflow(4) = %q", got)
	}
}

func TestToggleTitle(t *testing.T) {
	if toggleTitle(true) != "Disconnect" || toggleTitle(false) != "Connect" {
		t.Error("unexpected toggle titles")
	}
}

func TestIcon_DecodesAsPNG(t *testing.T) {
	for _, connected := range []bool{true, false} {
		data := icon(connected)
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("icon(%v) is not a PNG: %v", connected, err)
		}
		if b := img.Bounds(); b.Dx() != iconSize || b.Dy() != iconSize {
			t.Errorf("icon(%v) size = %v", connected, b)
		}
	}
	if bytes.Equal(icon(true), icon(false)) {
		t.Error("connected and disconnected icons should differ")
	}
}
