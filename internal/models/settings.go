package models

import "time"

// Defaults for settings.yaml.
const (
	DefaultTailscalePath   = "tailscale"
	DefaultPollInterval    = "3s"
	DefaultAdminConsoleURL = "https://login.tailscale.com/admin/machines"
)

// DefaultTerminals is the terminal fallback order used to launch SSH.
// Each entry is the terminal binary followed by the flag that introduces the
// command to run.
var DefaultTerminals = [][]string{
	{"cosmic-term", "-e"},
	{"gnome-terminal", "--"},
	{"konsole", "-e"},
	{"xterm", "-e"},
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
	// OnError limits notifications to failed toggles.
	OnError bool `yaml:"on_error"`
}

// Settings represents the user's tailtray settings.
// This corresponds to settings.yaml in the config directory.
type Settings struct {
	Version         int                 `yaml:"version"`
	TailscalePath   string              `yaml:"tailscale_path"`
	PollInterval    string              `yaml:"poll_interval"`
	AdminConsoleURL string              `yaml:"admin_console_url"`
	Terminals       [][]string          `yaml:"terminals"`
	Notifications   NotificationsConfig `yaml:"notifications"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	terminals := make([][]string, len(DefaultTerminals))
	for i, t := range DefaultTerminals {
		terminals[i] = append([]string(nil), t...)
	}
	return &Settings{
		Version:         1,
		TailscalePath:   DefaultTailscalePath,
		PollInterval:    DefaultPollInterval,
		AdminConsoleURL: DefaultAdminConsoleURL,
		Terminals:       terminals,
		Notifications: NotificationsConfig{
			Enabled: true,
			OnError: true,
		},
	}
}

// FillDefaults replaces blank fields with their defaults.
func (s *Settings) FillDefaults() {
	def := NewSettings()
	if s.Version == 0 {
		s.Version = def.Version
	}
	if s.TailscalePath == "" {
		s.TailscalePath = def.TailscalePath
	}
	if s.PollInterval == "" {
		s.PollInterval = def.PollInterval
	}
	if s.AdminConsoleURL == "" {
		s.AdminConsoleURL = def.AdminConsoleURL
	}
	if len(s.Terminals) == 0 {
		s.Terminals = def.Terminals
	}
}

// PollEvery returns the parsed poll interval. Unparseable or non-positive
// values fall back to the default.
func (s *Settings) PollEvery() time.Duration {
	d, err := time.ParseDuration(s.PollInterval)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultPollInterval)
	}
	return d
}
