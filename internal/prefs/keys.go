package prefs

import "github.com/tailtray/tailtray/internal/tailscale"

// Key names one field of the reconciled preference set. Keys double as the
// identifiers of the settings protocol.
type Key string

// Preference keys.
const (
	KeyAcceptDNS         Key = "accept_dns"
	KeyAcceptRoutes      Key = "accept_routes"
	KeyShieldsUp         Key = "shields_up"
	KeySSH               Key = "ssh"
	KeyAdvertiseExitNode Key = "advertise_exit_node"
	KeyExitNodeAllowLAN  Key = "exit_node_allow_lan"
	KeyWebClient         Key = "webclient"
	KeyHostname          Key = "hostname"
	KeyAdvertiseRoutes   Key = "advertise_routes"
)

// Keys lists every writable key in display order.
var Keys = []Key{
	KeyAcceptDNS,
	KeyAcceptRoutes,
	KeyShieldsUp,
	KeySSH,
	KeyAdvertiseExitNode,
	KeyExitNodeAllowLAN,
	KeyWebClient,
	KeyHostname,
	KeyAdvertiseRoutes,
}

// Pass-through boolean keys and the daemon flag each maps to.
// KeyAdvertiseExitNode is absent: it is written through the route list.
var boolFlags = map[Key]tailscale.Flag{
	KeyAcceptDNS:        tailscale.FlagAcceptDNS,
	KeyAcceptRoutes:     tailscale.FlagAcceptRoutes,
	KeyShieldsUp:        tailscale.FlagShieldsUp,
	KeySSH:              tailscale.FlagSSH,
	KeyExitNodeAllowLAN: tailscale.FlagExitNodeAllowLAN,
	KeyWebClient:        tailscale.FlagWebClient,
}

var labels = map[Key]string{
	KeyAcceptDNS:         "Accept DNS",
	KeyAcceptRoutes:      "Accept routes",
	KeyShieldsUp:         "Shields up",
	KeySSH:               "SSH server",
	KeyAdvertiseExitNode: "Advertise exit node",
	KeyExitNodeAllowLAN:  "Exit node LAN access",
	KeyWebClient:         "Web client",
	KeyHostname:          "Hostname",
	KeyAdvertiseRoutes:   "Advertised routes",
}

// IsBool reports whether the key takes a boolean value.
func (k Key) IsBool() bool {
	if k == KeyAdvertiseExitNode {
		return true
	}
	_, ok := boolFlags[k]
	return ok
}

// Valid reports whether k is a known key.
func (k Key) Valid() bool {
	_, ok := labels[k]
	return ok
}

// Label returns a human-readable name for the key.
func (k Key) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}
