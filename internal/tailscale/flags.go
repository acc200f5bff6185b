package tailscale

// Flag is a `tailscale set` flag name, without the leading dashes.
type Flag string

// Flags understood by `tailscale set`.
const (
	FlagAcceptDNS        Flag = "accept-dns"
	FlagAcceptRoutes     Flag = "accept-routes"
	FlagShieldsUp        Flag = "shields-up"
	FlagSSH              Flag = "ssh"
	FlagExitNodeAllowLAN Flag = "exit-node-allow-lan-access"
	FlagWebClient        Flag = "webclient"
	FlagHostname         Flag = "hostname"
	FlagAdvertiseRoutes  Flag = "advertise-routes"
)

// boolArg renders a boolean flag the way the CLI expects: present for true,
// explicit =false otherwise.
func boolArg(flag Flag, value bool) string {
	if value {
		return "--" + string(flag)
	}
	return "--" + string(flag) + "=false"
}

func stringArg(flag Flag, value string) string {
	return "--" + string(flag) + "=" + value
}
