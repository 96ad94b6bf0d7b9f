package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/webterm/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Terminal API server",
	Long:  `Starts the execution service and exposes it over HTTP (execute, history, version, health and metrics).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("addr") {
			cfg.ListenAddr, _ = flags.GetString("addr")
		}
		if flags.Changed("store") {
			cfg.Store, _ = flags.GetString("store")
		}
		if flags.Changed("sanitize-errors") {
			cfg.SanitizeErrors, _ = flags.GetBool("sanitize-errors")
		}
		if flags.Changed("docs") {
			cfg.DocsEnabled, _ = flags.GetBool("docs")
		}
		if flags.Changed("default-location") {
			cfg.DefaultLocation, _ = flags.GetString("default-location")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := cli.ServeOptions{}
		if term.IsTerminal(int(os.Stderr.Fd())) {
			opts.Banner = os.Stderr
		}
		return cli.RunServer(ctx, cfg, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default :8000)")
	serveCmd.Flags().String("store", "", "History store: memory, redis or sqlite")
	serveCmd.Flags().Bool("sanitize-errors", true, "Hide internal error detail from clients")
	serveCmd.Flags().Bool("docs", false, "Serve /openapi.yaml and /docs")
	serveCmd.Flags().String("default-location", "", "Location used by a bare 'weather'")
}
