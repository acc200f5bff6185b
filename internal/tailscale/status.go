package tailscale

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// BackendState is the daemon's coarse connectivity state.
type BackendState string

// Backend states reported by `tailscale status --json`.
const (
	BackendNoState          BackendState = "NoState"
	BackendNeedsLogin       BackendState = "NeedsLogin"
	BackendNeedsMachineAuth BackendState = "NeedsMachineAuth"
	BackendStopped          BackendState = "Stopped"
	BackendStarting         BackendState = "Starting"
	BackendRunning          BackendState = "Running"
)

// Running reports whether the daemon considers itself connected.
func (s BackendState) Running() bool {
	return s == BackendRunning
}

// Node is the part of a status entry shared by the local node and its peers.
type Node struct {
	HostName string
	DNSName  string
	IPs      []string
}

// PrimaryIP returns the first mesh address, or "" when none is assigned.
func (n Node) PrimaryIP() string {
	if len(n.IPs) == 0 {
		return ""
	}
	return n.IPs[0]
}

// DisplayName returns the first label of the DNS name when one is known,
// otherwise the host name.
func (n Node) DisplayName() string {
	if n.DNSName == "" {
		return n.HostName
	}
	label, _, _ := strings.Cut(n.DNSName, ".")
	if label == "" {
		return n.HostName
	}
	return label
}

// Peer is one remote node of the tailnet.
type Peer struct {
	Node
	OS       string
	Online   bool
	ExitNode bool // this peer carries the local node's internet traffic
}

// Status is an immutable snapshot of one successful status poll.
// Callers must treat it as read-only; a new poll produces a new value.
type Status struct {
	BackendState   BackendState
	Self           Node
	Peers          []Peer
	TailnetName    string
	ExitNodeActive bool
}

// OnlinePeers returns the number of peers currently online.
func (s *Status) OnlinePeers() int {
	n := 0
	for _, p := range s.Peers {
		if p.Online {
			n++
		}
	}
	return n
}

// Raw payload of `tailscale status --json`. Extra fields are ignored.
type rawStatus struct {
	BackendState   *string             `json:"BackendState"`
	Self           *rawNode            `json:"Self"`
	Peer           map[string]*rawNode `json:"Peer"`
	CurrentTailnet *rawTailnet         `json:"CurrentTailnet"`
}

type rawNode struct {
	HostName     string   `json:"HostName"`
	DNSName      string   `json:"DNSName"`
	TailscaleIPs []string `json:"TailscaleIPs"`
	OS           string   `json:"OS"`
	Online       bool     `json:"Online"`
	ExitNode     bool     `json:"ExitNode"`
}

type rawTailnet struct {
	Name string `json:"Name"`
}

// ParseStatus builds a Status from the raw status payload.
// The payload is accepted or rejected as a whole.
func ParseStatus(data []byte) (*Status, error) {
	var raw rawStatus
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse status JSON: %w", err)
	}
	if raw.BackendState == nil {
		return nil, errors.New("status JSON has no BackendState")
	}
	if raw.Self == nil {
		return nil, errors.New("status JSON has no Self node")
	}

	ids := make([]string, 0, len(raw.Peer))
	for id, p := range raw.Peer {
		if p == nil {
			return nil, fmt.Errorf("status JSON has null entry for peer %s", id)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	peers := make([]Peer, 0, len(ids))
	exitNodeActive := false
	for _, id := range ids {
		p := raw.Peer[id]
		peers = append(peers, Peer{
			Node:     toNode(p),
			OS:       p.OS,
			Online:   p.Online,
			ExitNode: p.ExitNode,
		})
		exitNodeActive = exitNodeActive || p.ExitNode
	}
	SortPeers(peers)

	tailnet := ""
	if raw.CurrentTailnet != nil {
		tailnet = raw.CurrentTailnet.Name
	}

	return &Status{
		BackendState:   BackendState(*raw.BackendState),
		Self:           toNode(raw.Self),
		Peers:          peers,
		TailnetName:    tailnet,
		ExitNodeActive: exitNodeActive,
	}, nil
}

func toNode(r *rawNode) Node {
	return Node{
		HostName: r.HostName,
		DNSName:  r.DNSName,
		IPs:      r.TailscaleIPs,
	}
}

// SortPeers orders peers online first, then by case-insensitive host name.
// Equal folded names fall back to the exact name and then the primary IP.
func SortPeers(peers []Peer) {
	sort.SliceStable(peers, func(i, j int) bool {
		return peerLess(peers[i], peers[j])
	})
}

func peerLess(a, b Peer) bool {
	if a.Online != b.Online {
		return a.Online
	}
	la, lb := strings.ToLower(a.HostName), strings.ToLower(b.HostName)
	if la != lb {
		return la < lb
	}
	if a.HostName != b.HostName {
		return a.HostName < b.HostName
	}
	return a.PrimaryIP() < b.PrimaryIP()
}
