package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/admin/tg-bots/astro-miniapp/internal/app"
	"github.com/spf13/cobra"
)

const (
	appName   = "astro_miniapp"
	envPrefix = "ASTRO_MINIAPP"
)

var rootCmd = &cobra.Command{
	Use:   "astro-miniapp",
	Short: "Host for the astrology mini-app",
	Long: `Serves the astrology mini-app shell and keeps one server-side session
per WebSocket connection. Without a subcommand the server is started.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := app.NewEnvConfig(envPrefix)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return app.New(appName, cfg).Run(ctx)
}
