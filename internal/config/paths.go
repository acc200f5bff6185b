// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

// DirName is the name of the tailtray directory under the user config dir.
const DirName = "tailtray"

// DirEnv overrides the config directory when set.
const DirEnv = "TAILTRAY_CONFIG_DIR"

// File names
const (
	SettingsFileName = "settings.yaml"
	SSHUsersFileName = "ssh_users.yaml"
	InstanceFileName = "tailtrayd.yaml"
)

// Dir returns the path to the tailtray config directory (~/.config/tailtray/).
func Dir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

// SettingsFile returns the path to the settings.yaml file.
func SettingsFile() (string, error) {
	return inDir(SettingsFileName)
}

// SSHUsersFile returns the path to the ssh_users.yaml file.
func SSHUsersFile() (string, error) {
	return inDir(SSHUsersFileName)
}

// InstanceFile returns the path to the tray instance file.
func InstanceFile() (string, error) {
	return inDir(InstanceFileName)
}

func inDir(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureDir creates the config directory if it doesn't exist.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return EnsureDirAt(dir)
}

// EnsureDirAt creates dir if it doesn't exist.
func EnsureDirAt(dir string) error {
	return os.MkdirAll(dir, 0755)
}
