package main

import (
	"fmt"
	"os"

	"github.com/aretw0/webterm/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "webterm",
	Short: "webterm is an interactive terminal-session engine",
	Long: `webterm pairs a terminal front-end (full-screen or line mode) with a
server that executes a closed, whitelisted set of commands and records
every session's history.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flag("config").Value.String())
	if err != nil {
		return config.Config{}, err
	}
	if f := cmd.Flag("log-level"); f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	return cfg, nil
}
