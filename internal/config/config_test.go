package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tailtray/tailtray/internal/models"
)

func useTempDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "tailtray")
	t.Setenv(DirEnv, dir)
	return dir
}

func TestDir_EnvOverride(t *testing.T) {
	dir := useTempDir(t)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}

	path, err := SSHUsersFile()
	if err != nil {
		t.Fatalf("SSHUsersFile() error = %v", err)
	}
	if path != filepath.Join(dir, SSHUsersFileName) {
		t.Errorf("SSHUsersFile() = %q", path)
	}
}

func TestLoadSettings_DefaultsWhenMissing(t *testing.T) {
	useTempDir(t)

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.TailscalePath != models.DefaultTailscalePath {
		t.Errorf("TailscalePath = %q", s.TailscalePath)
	}
	if s.PollEvery() != 3*time.Second {
		t.Errorf("PollEvery() = %v", s.PollEvery())
	}
	if len(s.Terminals) != len(models.DefaultTerminals) {
		t.Errorf("Terminals = %v", s.Terminals)
	}
}

func TestLoadSettings_PartialFileKeepsDefaults(t *testing.T) {
	dir := useTempDir(t)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := []byte("tailscale_path: /opt/ts/tailscale\npoll_interval: 5s\n")
	if err := os.WriteFile(filepath.Join(dir, SettingsFileName), data, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.TailscalePath != "/opt/ts/tailscale" {
		t.Errorf("TailscalePath = %q", s.TailscalePath)
	}
	if s.PollEvery() != 5*time.Second {
		t.Errorf("PollEvery() = %v", s.PollEvery())
	}
	if s.AdminConsoleURL != models.DefaultAdminConsoleURL {
		t.Errorf("AdminConsoleURL = %q", s.AdminConsoleURL)
	}
}

func TestLoadSettings_Malformed(t *testing.T) {
	dir := useTempDir(t)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, SettingsFileName), []byte("poll_interval: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSettings(); err == nil {
		t.Error("expected parse error")
	}
}

func TestSSHUsers_RoundTrip(t *testing.T) {
	useTempDir(t)

	if err := SetSSHUser("build-box", "deploy"); err != nil {
		t.Fatalf("SetSSHUser() error = %v", err)
	}
	if err := SetSSHUser("nas", "admin"); err != nil {
		t.Fatalf("SetSSHUser() error = %v", err)
	}

	users, err := LoadSSHUsers()
	if err != nil {
		t.Fatalf("LoadSSHUsers() error = %v", err)
	}
	if got := users.Lookup("build-box"); got != "deploy" {
		t.Errorf("Lookup(build-box) = %q", got)
	}
	if hosts := users.Hosts(); len(hosts) != 2 || hosts[0] != "build-box" || hosts[1] != "nas" {
		t.Errorf("Hosts() = %v", hosts)
	}

	if err := SetSSHUser("nas", ""); err != nil {
		t.Fatalf("SetSSHUser() error = %v", err)
	}
	users, err = LoadSSHUsers()
	if err != nil {
		t.Fatalf("LoadSSHUsers() error = %v", err)
	}
	if got := users.Lookup("nas"); got != "" {
		t.Errorf("Lookup(nas) = %q after unset", got)
	}
}

func TestSaveYAML_LeavesNoTempFiles(t *testing.T) {
	dir := useTempDir(t)

	if err := SaveSettings(models.NewSettings()); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != SettingsFileName {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v", names)
	}
}

func TestInstanceInfo(t *testing.T) {
	useTempDir(t)

	running, info, err := IsInstanceRunning()
	if err != nil || running || info != nil {
		t.Fatalf("IsInstanceRunning() = %v, %v, %v before save", running, info, err)
	}

	if err := SaveInstanceInfo(models.NewInstanceInfo(os.Getpid(), "tailscale")); err != nil {
		t.Fatalf("SaveInstanceInfo() error = %v", err)
	}
	running, info, err = IsInstanceRunning()
	if err != nil {
		t.Fatalf("IsInstanceRunning() error = %v", err)
	}
	if !running || info.PID != os.Getpid() {
		t.Errorf("IsInstanceRunning() = %v, %+v", running, info)
	}

	if err := RemoveInstanceInfo(); err != nil {
		t.Fatalf("RemoveInstanceInfo() error = %v", err)
	}
	if err := RemoveInstanceInfo(); err != nil {
		t.Errorf("second RemoveInstanceInfo() error = %v", err)
	}
}
