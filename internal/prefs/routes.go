package prefs

import (
	"strings"
)

// Universal-default routes. Advertising either one is how the daemon encodes
// "offer this node as an exit node".
const (
	DefaultRouteV4 = "0.0.0.0/0"
	DefaultRouteV6 = "::/0"
)

// IsDefaultRoute reports whether route is one of the universal-default entries.
func IsDefaultRoute(route string) bool {
	return route == DefaultRouteV4 || route == DefaultRouteV6
}

// HasExitNode reports whether routes advertise exit-node capability.
func HasExitNode(routes []string) bool {
	for _, r := range routes {
		if IsDefaultRoute(r) {
			return true
		}
	}
	return false
}

// StripDefaults returns routes without the universal-default entries,
// preserving the order of the rest.
func StripDefaults(routes []string) []string {
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		if !IsDefaultRoute(r) {
			out = append(out, r)
		}
	}
	return out
}

// WithExitNode recomputes the full advertised list: the non-default routes,
// followed by both defaults when enable is set. The result never contains
// duplicate defaults.
func WithExitNode(routes []string, enable bool) []string {
	out := StripDefaults(routes)
	if enable {
		out = append(out, DefaultRouteV4, DefaultRouteV6)
	}
	return out
}

// ParseRoutes splits a user-supplied route list on commas and whitespace.
func ParseRoutes(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// JoinRoutes renders routes the way `tailscale set --advertise-routes` takes them.
func JoinRoutes(routes []string) string {
	return strings.Join(routes, ",")
}

// UserRoutes turns an edited route list into the list to write back.
// Defaults typed by the user are dropped; they are re-appended only when
// exit-node advertisement is already enabled, so editing routes never flips
// the exit-node setting.
func UserRoutes(input string, exitNode bool) []string {
	return WithExitNode(ParseRoutes(input), exitNode)
}
