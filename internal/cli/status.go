package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tailtray/tailtray/internal/config"
	"github.com/tailtray/tailtray/internal/models"
	"github.com/tailtray/tailtray/internal/tailscale"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show connection state and peers",
	RunE:    runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the status model as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	st, err := newClient(settings).Status(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", styleError.Render("Not running:"), tailscale.Diagnostic(err))
		return reportedError{err}
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	users, err := config.LoadSSHUsers()
	if err != nil {
		users = models.NewSSHUsers()
	}

	if !isTerminal() {
		for _, p := range st.Peers {
			fmt.Println(plainPeerLine(p))
		}
		return nil
	}

	state := styleWarning.Render("○ " + string(st.BackendState))
	if st.BackendState.Running() {
		state = styleSuccess.Render("● Connected")
	}
	fmt.Printf("  %s  %s\n", state, styleHint.Render(st.TailnetName))
	fmt.Printf("    %s  %s  %s\n", styleLabel.Render("This device"), styleValue.Render(st.Self.DisplayName()), styleValue.Render(st.Self.PrimaryIP()))
	fmt.Printf("    %s        %d/%d online\n", styleLabel.Render("Peers"), st.OnlinePeers(), len(st.Peers))
	if st.ExitNodeActive {
		fmt.Printf("    %s    %s\n", styleLabel.Render("Exit node"), styleExit.Render("in use"))
	}

	if len(st.Peers) == 0 {
		return nil
	}
	fmt.Println()
	width := 0
	for _, p := range st.Peers {
		if n := len(p.DisplayName()); n > width {
			width = n
		}
	}
	for _, p := range st.Peers {
		fmt.Println("  " + peerLine(p, users.Lookup(p.HostName), width))
	}
	return nil
}

// peerLine renders one peer for terminal output.
func peerLine(p tailscale.Peer, sshUser string, nameWidth int) string {
	dot := badgeOffline.Render("○")
	if p.Online {
		dot = badgeOnline.Render("●")
	}
	name := fmt.Sprintf("%-*s", nameWidth, p.DisplayName())
	parts := []string{dot, styleValue.Render(name), styleHint.Render(p.PrimaryIP())}
	if p.OS != "" {
		parts = append(parts, styleHint.Render(p.OS))
	}
	if p.ExitNode {
		parts = append(parts, styleExit.Render("exit node"))
	}
	if sshUser != "" {
		parts = append(parts, styleLabel.Render("ssh:"+sshUser))
	}
	return strings.Join(parts, "  ")
}

// plainPeerLine renders one peer as tab-separated fields for scripts.
func plainPeerLine(p tailscale.Peer) string {
	online := "offline"
	if p.Online {
		online = "online"
	}
	return strings.Join([]string{p.HostName, p.PrimaryIP(), p.OS, online}, "\t")
}
