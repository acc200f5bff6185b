// Package cmd implements the tailtrayd command line.
package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	foreground    bool
	tailscalePath string
	pollInterval  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "tailtrayd",
	Short: "Tailscale status tray applet",
	Long: `tailtrayd shows the local Tailscale connection in the system tray.
It polls the daemon through the tailscale CLI and serializes every change
(connect, disconnect, preference writes) through a single background loop.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

// Execute runs the tailtrayd command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "run without a system tray, logging events (for development)")
	rootCmd.Flags().StringVar(&tailscalePath, "tailscale", "", "path to the tailscale binary (default from settings.yaml)")
	rootCmd.Flags().DurationVar(&pollInterval, "interval", 0, "status poll interval (default from settings.yaml)")

	rootCmd.AddCommand(daemonVersionCmd)
}
