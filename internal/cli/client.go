package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tailtray/tailtray/internal/config"
	"github.com/tailtray/tailtray/internal/models"
	"github.com/tailtray/tailtray/internal/prefs"
	"github.com/tailtray/tailtray/internal/tailscale"
)

// loadSettings reads settings.yaml and applies the --tailscale override.
func loadSettings() (*models.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if tailscalePath != "" {
		settings.TailscalePath = tailscalePath
	}
	return settings, nil
}

func newClient(settings *models.Settings) *tailscale.Client {
	return tailscale.NewClient(tailscale.WithBinary(settings.TailscalePath))
}

func newReconciler(client *tailscale.Client) *prefs.Reconciler {
	return prefs.NewReconciler(client)
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
