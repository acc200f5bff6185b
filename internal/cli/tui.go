package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tailtray/tailtray/internal/applet"
	"github.com/tailtray/tailtray/internal/config"
	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/launcher"
	"github.com/tailtray/tailtray/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal view",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	users, err := config.LoadSSHUsers()
	if err != nil {
		return err
	}

	client := newClient(settings)
	reconciler := newReconciler(client)
	coord := coordinator.New(client,
		coordinator.WithInterval(settings.PollEvery()),
		coordinator.WithPreferences(reconciler),
	)

	st, err := client.Status(cmd.Context())
	state := applet.NewFromStatus(st, err)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() { _ = coord.Run(ctx) }()

	return tui.Run(tui.Options{
		Controller:  coord,
		Prefs:       reconciler,
		Desktop:     launcher.New(launcher.WithTerminals(settings.Terminals)),
		State:       state,
		Settings:    settings,
		SSHUsers:    users,
		SaveSSHUser: config.SetSSHUser,
	})
}
