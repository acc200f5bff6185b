package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tailtray/tailtray/internal/config"
)

var sshUserCmd = &cobra.Command{
	Use:   "ssh-user",
	Short: "Manage per-host SSH user names",
}

var sshUserSetCmd = &cobra.Command{
	Use:   "set <host> <user>",
	Short: "Use <user> when opening SSH to <host>",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetSSHUser(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s %s → %s\n", styleSuccess.Render("Saved"), args[0], args[1])
		return nil
	},
}

var sshUserUnsetCmd = &cobra.Command{
	Use:     "unset <host>",
	Aliases: []string{"rm"},
	Short:   "Forget the SSH user for <host>",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetSSHUser(args[0], ""); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", styleSuccess.Render("Removed"), args[0])
		return nil
	},
}

var sshUserListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured SSH users",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := config.LoadSSHUsers()
		if err != nil {
			return err
		}
		hosts := users.Hosts()
		if len(hosts) == 0 {
			fmt.Println(styleHint.Render("No SSH users configured."))
			return nil
		}
		for _, h := range hosts {
			fmt.Printf("  %s  %s\n", styleValue.Render(h), styleLabel.Render(users.Lookup(h)))
		}
		return nil
	},
}

func init() {
	sshUserCmd.AddCommand(sshUserListCmd)
	sshUserCmd.AddCommand(sshUserSetCmd)
	sshUserCmd.AddCommand(sshUserUnsetCmd)
}
