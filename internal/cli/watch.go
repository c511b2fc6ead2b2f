package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/termtris/internal/config"
	"github.com/hersh/termtris/internal/netclient"
	"github.com/hersh/termtris/internal/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("server", config.DefaultServer, "spectator stream to watch")
	settings.BindPFlag(config.KeyServer, watchCmd.Flags().Lookup("server"))
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a game streamed with --spectate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(settings)
		if err != nil {
			return err
		}
		logs, err := setupLogging(cfg.LogFile)
		if err != nil {
			return err
		}
		defer logs.Close()

		client, err := netclient.New(cfg.Server)
		if err != nil {
			return fmt.Errorf("connect to %s: %w", cfg.Server, err)
		}
		defer client.Close()

		p := tea.NewProgram(tui.NewModel(cfg.Server, client), tea.WithAltScreen())
		client.SetProgram(p)
		client.Start()

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		return nil
	},
}
