package models

import (
	"testing"
	"time"
)

func TestSettings_PollEvery(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		expected time.Duration
	}{
		{name: "default", interval: "3s", expected: 3 * time.Second},
		{name: "custom", interval: "750ms", expected: 750 * time.Millisecond},
		{name: "garbage", interval: "soon", expected: 3 * time.Second},
		{name: "negative", interval: "-1s", expected: 3 * time.Second},
		{name: "empty", interval: "", expected: 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{PollInterval: tt.interval}
			if got := s.PollEvery(); got != tt.expected {
				t.Errorf("PollEvery() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewSettings_TerminalsAreCopied(t *testing.T) {
	s := NewSettings()
	s.Terminals[0][0] = "changed"
	if DefaultTerminals[0][0] != "cosmic-term" {
		t.Errorf("DefaultTerminals mutated: %v", DefaultTerminals[0])
	}
}

func TestSSHUsers(t *testing.T) {
	var nilUsers *SSHUsers
	if nilUsers.Lookup("x") != "" {
		t.Error("nil Lookup should be empty")
	}

	u := &SSHUsers{}
	u.Set("b", "bob")
	u.Set("a", "alice")
	u.Set("c", "")
	if hosts := u.Hosts(); len(hosts) != 2 || hosts[0] != "a" {
		t.Errorf("Hosts() = %v", hosts)
	}
	u.Set("a", "")
	if u.Lookup("a") != "" {
		t.Error("empty user should remove entry")
	}
}
