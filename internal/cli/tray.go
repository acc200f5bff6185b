package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tailtray/tailtray/internal/config"
)

var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Manage the tailtrayd tray applet",
}

var trayStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tray status",
	RunE:  runTrayStatus,
}

var trayStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tray applet",
	RunE:  runTrayStart,
}

var trayStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the tray applet",
	RunE:  runTrayStop,
}

func init() {
	trayCmd.AddCommand(trayStartCmd)
	trayCmd.AddCommand(trayStatusCmd)
	trayCmd.AddCommand(trayStopCmd)
}

func runTrayStart(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check tray status: %w", err)
	}
	if running && info != nil {
		fmt.Printf("Tray is already running (PID %d).\n", info.PID)
		return nil
	}

	fmt.Print("Starting tray...")
	if err := startTray(); err != nil {
		fmt.Println()
		return err
	}
	_, info, _ = config.IsInstanceRunning()
	if info == nil {
		fmt.Println(" started.")
		return nil
	}
	fmt.Printf(" started (PID %d).\n", info.PID)
	return nil
}

func runTrayStatus(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return err
	}
	if !running || info == nil {
		fmt.Println("Tray is not running.")
		return nil
	}

	fmt.Println("Tray is running.")
	fmt.Printf("  PID:        %d\n", info.PID)
	fmt.Printf("  Tailscale:  %s\n", info.TailscalePath)
	fmt.Printf("  Uptime:     %s\n", time.Since(info.StartedAt).Truncate(time.Second))
	return nil
}

func runTrayStop(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check tray status: %w", err)
	}
	if !running || info == nil {
		fmt.Println("Tray is not running.")
		return nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find tray process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsInstanceRunning()
		if err == nil && !stillRunning {
			fmt.Println("Tray stopped.")
			return nil
		}
	}
	return fmt.Errorf("tray did not stop within timeout")
}

// startTray starts tailtrayd in the background and waits for it to register.
func startTray() error {
	path, err := findTrayBinary()
	if err != nil {
		return err
	}

	cmd := exec.Command(path)
	if tailscalePath != "" {
		cmd.Args = append(cmd.Args, "--tailscale", tailscalePath)
	}
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start tray: %w", err)
	}

	// Wait for the instance file (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		running, _, err := config.IsInstanceRunning()
		if err == nil && running {
			return nil
		}
	}
	return fmt.Errorf("tray failed to start within timeout")
}

// findTrayBinary locates the tailtrayd binary.
func findTrayBinary() (string, error) {
	if path, err := exec.LookPath("tailtrayd"); err == nil {
		return path, nil
	}

	// Try next to the current executable
	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "tailtrayd")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	if _, err := os.Stat("./build/tailtrayd"); err == nil {
		return "./build/tailtrayd", nil
	}

	return "", fmt.Errorf("tailtrayd not found. Install or build it first")
}
