package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/webterm/internal/cli"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:     "shell",
	Aliases: []string{"client"},
	Short:   "Open an interactive terminal against a webterm server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("server") {
			cfg.ServerURL, _ = cmd.Flags().GetString("server")
		}
		if cmd.Flags().Changed("state-dir") {
			cfg.StateDir, _ = cmd.Flags().GetString("state-dir")
		}
		lineMode, _ := cmd.Flags().GetBool("line")

		// Ctrl+C is a key in the TUI; SIGTERM still ends the session.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
		defer stop()

		return cli.RunShell(ctx, cfg, cli.ShellOptions{In: os.Stdin, Out: os.Stdout, LineMode: lineMode})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the history the server recorded for this terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("server") {
			cfg.ServerURL, _ = cmd.Flags().GetString("server")
		}
		sessionID, _ := cmd.Flags().GetString("session")
		limit, _ := cmd.Flags().GetInt("limit")
		return cli.PrintServerHistory(cmd.Context(), cfg, sessionID, limit, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd, historyCmd)
	for _, c := range []*cobra.Command{shellCmd, historyCmd} {
		c.Flags().String("server", "", "Server base URL (default http://localhost:8000)")
	}
	shellCmd.Flags().String("state-dir", "", "Directory holding the session id and history")
	shellCmd.Flags().Bool("line", false, "Use line mode even on a terminal")
	historyCmd.Flags().String("session", "", "Session id (default: this terminal's)")
	historyCmd.Flags().Int("limit", 50, "Maximum entries")
}
