package models

import "time"

// InstanceInfo identifies the running tray process.
type InstanceInfo struct {
	Version       int       `yaml:"version"`
	PID           int       `yaml:"pid"`
	TailscalePath string    `yaml:"tailscale_path"`
	StartedAt     time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info for the current process.
func NewInstanceInfo(pid int, tailscalePath string) *InstanceInfo {
	return &InstanceInfo{
		Version:       1,
		PID:           pid,
		TailscalePath: tailscalePath,
		StartedAt:     time.Now().UTC(),
	}
}
