/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/vsvdb/pkg/api"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		bind    string
		port    int
		apiKey  string
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the vsvdb REST API server. Flags override the configuration file.
When an API key is set every /api/v1 route requires the X-API-Key header.

Examples:
  vsvdb serve
  vsvdb serve --bind 0.0.0.0 --port 9000 --api-key mysecretkey`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig := api.ServerConfig{
				Bind:   a.cfg.Server.Bind,
				Port:   a.cfg.Server.Port,
				APIKey: a.cfg.Server.APIKey,
			}
			if cmd.Flags().Changed("bind") {
				serverConfig.Bind = bind
			}
			if cmd.Flags().Changed("port") {
				serverConfig.Port = port
			}
			if cmd.Flags().Changed("api-key") {
				serverConfig.APIKey = apiKey
			}
			if serverConfig.Port < 1 || serverConfig.Port > 65535 {
				return fmt.Errorf("port %d: must be between 1 and 65535", serverConfig.Port)
			}

			dir := a.cfg.Library.DataDir
			if cmd.Flags().Changed("data-dir") {
				dir = dataDir
			}
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}

			c := getContainer()
			lib, err := c.GetLibraryFactory().OpenLibrary(dir, a.logger)
			if err != nil {
				return err
			}
			defer lib.Close()

			if serverConfig.APIKey == "" {
				a.logger.Warn("API key authentication is disabled")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			starter := c.GetServerFactory().CreateServerStarter()
			return starter.StartServer(ctx, lib, serverConfig, a.logger)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Address to bind to (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for X-API-Key authentication")
	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "Library directory (default from config)")
	return cmd
}
