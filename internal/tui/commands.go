package tui

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func loadPrefsCmd(loader PrefsLoader) tea.Cmd {
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		set, err := loader.Load(context.Background())
		return PrefsLoadedMsg{Set: set, Err: err}
	}
}

func sshCmd(target string) tea.Cmd {
	c := exec.Command("ssh", target) //nolint:noctx // tea.ExecProcess requires *exec.Cmd, not CommandContext
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return SSHFinishedMsg{Err: fmt.Errorf("ssh %s: %w", target, err)}
		}
		return SSHFinishedMsg{}
	})
}

func saveSSHUserCmd(save func(host, user string) error, host, user string) tea.Cmd {
	return func() tea.Msg {
		if save == nil {
			return SSHUserSavedMsg{Host: host, User: user}
		}
		if err := save(host, user); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to save SSH user: %w", err)}
		}
		return SSHUserSavedMsg{Host: host, User: user}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}
