// Package cli implements the tailtray CLI commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tailscalePath string

var rootCmd = &cobra.Command{
	Use:   "tailtray",
	Short: "Inspect and control the local Tailscale daemon",
	Long: `tailtray talks to the local Tailscale daemon through the tailscale CLI.
It shows connection state and peers, toggles the connection, edits the
preferences a desktop user cares about, and serves the settings protocol
used by desktop settings hubs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// reportedError wraps an error that a command already printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "%s %v\n", styleError.Render("Error:"), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tailscalePath, "tailscale", "", "path to the tailscale binary (default from settings.yaml)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(sshUserCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(trayCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(versionCmd)
}
