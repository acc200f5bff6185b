package config

import (
	"github.com/tailtray/tailtray/internal/models"
)

// LoadSSHUsers loads the per-host SSH usernames from ssh_users.yaml.
// A missing file yields an empty set.
func LoadSSHUsers() (*models.SSHUsers, error) {
	path, err := SSHUsersFile()
	if err != nil {
		return nil, err
	}
	users, err := LoadYAMLOrDefault(path, models.NewSSHUsers)
	if err != nil {
		return nil, err
	}
	if users.Users == nil {
		users.Users = make(map[string]string)
	}
	return users, nil
}

// SaveSSHUsers saves the per-host SSH usernames to ssh_users.yaml.
func SaveSSHUsers(users *models.SSHUsers) error {
	path, err := SSHUsersFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, users)
}

// SetSSHUser stores user for host, or removes the entry when user is empty.
func SetSSHUser(host, user string) error {
	users, err := LoadSSHUsers()
	if err != nil {
		return err
	}
	users.Set(host, user)
	return SaveSSHUsers(users)
}
