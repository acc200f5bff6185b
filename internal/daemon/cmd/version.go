package cmd

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tailtray/tailtray/internal/buildinfo"
	"github.com/tailtray/tailtray/internal/config"
)

var (
	dStyleBrand   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	dStyleVersion = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	dStyleLabel   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
	dStyleValue   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
)

type versionField struct {
	label string
	value string
}

// versionFields lists the build and runtime details shown by `tailtrayd version`.
func versionFields() []versionField {
	dir, err := config.Dir()
	if err != nil {
		dir = "unknown"
	}
	return []versionField{
		{"Commit", buildinfo.CommitHash},
		{"Built", buildinfo.BuildDate},
		{"OS/Arch", runtime.GOOS + "/" + runtime.GOARCH},
		{"Go", runtime.Version()},
		{"Config", dir},
	}
}

var daemonVersionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("  %s %s\n", dStyleBrand.Render("tailtrayd"), dStyleVersion.Render(buildinfo.Version))
		for _, f := range versionFields() {
			fmt.Printf("    %s %s\n", dStyleLabel.Render(fmt.Sprintf("%7s", f.label)), dStyleValue.Render(f.value))
		}
	},
}
