package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/tailscale"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Connect to the tailnet",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		msg, err := newClient(settings).Connect(cmd.Context())
		return report(msg, err)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Disconnect from the tailnet",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		msg, err := newClient(settings).Disconnect(cmd.Context())
		return report(msg, err)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Connect if disconnected, disconnect if connected",
	RunE:  runToggle,
}

// runToggle drives one coordinator cycle so the CLI toggles exactly like the tray.
func runToggle(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	c := coordinator.New(newClient(settings))
	if err := c.Submit(coordinator.NewToggle()); err != nil {
		return err
	}
	c.Step(cmd.Context())

	for _, ev := range c.Events() {
		if done, ok := ev.(coordinator.ToggleComplete); ok {
			return report(done.Message, done.Err)
		}
	}
	return errors.New("toggle did not complete")
}

func report(msg string, err error) error {
	if err != nil {
		fmt.Printf("%s %s\n", styleError.Render("Error:"), tailscale.Diagnostic(err))
		return reportedError{err}
	}
	fmt.Println(styleSuccess.Render(msg))
	return nil
}
