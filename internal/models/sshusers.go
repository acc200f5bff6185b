package models

import "sort"

// SSHUsers maps peer host names to the user name used for SSH.
// This corresponds to ssh_users.yaml in the config directory.
type SSHUsers struct {
	Version int               `yaml:"version"`
	Users   map[string]string `yaml:"users"`
}

// NewSSHUsers creates an empty set.
func NewSSHUsers() *SSHUsers {
	return &SSHUsers{Version: 1, Users: make(map[string]string)}
}

// Lookup returns the user configured for host, or "".
func (u *SSHUsers) Lookup(host string) string {
	if u == nil {
		return ""
	}
	return u.Users[host]
}

// Set stores user for host. An empty user removes the entry.
func (u *SSHUsers) Set(host, user string) {
	if u.Users == nil {
		u.Users = make(map[string]string)
	}
	if user == "" {
		delete(u.Users, host)
		return
	}
	u.Users[host] = user
}

// Hosts returns the configured host names in sorted order.
func (u *SSHUsers) Hosts() []string {
	hosts := make([]string, 0, len(u.Users))
	for h := range u.Users {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}
