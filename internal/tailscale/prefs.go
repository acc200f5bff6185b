package tailscale

import (
	"encoding/json"
	"fmt"
)

// Prefs is the daemon's own preference vocabulary, as reported by
// `tailscale debug prefs`. The exit-node advertisement has no field of its
// own here: it lives inside AdvertiseRoutes.
type Prefs struct {
	CorpDNS                bool
	RouteAll               bool
	ShieldsUp              bool
	RunSSH                 bool
	RunWebClient           bool
	ExitNodeAllowLANAccess bool
	Hostname               string
	AdvertiseRoutes        []string
	LoginName              string
}

type rawPrefs struct {
	CorpDNS                bool       `json:"CorpDNS"`
	RouteAll               bool       `json:"RouteAll"`
	ShieldsUp              bool       `json:"ShieldsUp"`
	RunSSH                 bool       `json:"RunSSH"`
	RunWebClient           bool       `json:"RunWebClient"`
	ExitNodeAllowLANAccess bool       `json:"ExitNodeAllowLANAccess"`
	Hostname               string     `json:"Hostname"`
	AdvertiseRoutes        []string   `json:"AdvertiseRoutes"`
	Config                 *rawConfig `json:"Config"`
}

type rawConfig struct {
	UserProfile *struct {
		LoginName string `json:"LoginName"`
	} `json:"UserProfile"`
}

// ParsePrefs decodes the payload of `tailscale debug prefs`.
func ParsePrefs(data []byte) (*Prefs, error) {
	var raw rawPrefs
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prefs JSON: %w", err)
	}

	login := ""
	if raw.Config != nil && raw.Config.UserProfile != nil {
		login = raw.Config.UserProfile.LoginName
	}

	return &Prefs{
		CorpDNS:                raw.CorpDNS,
		RouteAll:               raw.RouteAll,
		ShieldsUp:              raw.ShieldsUp,
		RunSSH:                 raw.RunSSH,
		RunWebClient:           raw.RunWebClient,
		ExitNodeAllowLANAccess: raw.ExitNodeAllowLANAccess,
		Hostname:               raw.Hostname,
		AdvertiseRoutes:        raw.AdvertiseRoutes,
		LoginName:              login,
	}, nil
}
