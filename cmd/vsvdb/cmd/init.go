/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/vsvdb/pkg/config"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		dataDir   string
		force     bool
		printKeys bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with a generated API key",
		Long: `Write a configuration file with default settings and a freshly
generated server API key.

Examples:
  vsvdb init
  vsvdb init --config ./vsvdb.yaml --data-dir ./data --print-keys`,
		Args: cobra.NoArgs,
		// the config file may not exist yet, so skip loading it
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.GetDefaultConfigPath()
			}

			if config.ConfigExists(path) && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}

			cfg, err := config.BootstrapConfig(path, dataDir)
			if err != nil {
				return err
			}

			cmd.Printf("Configuration written to %s\n", path)
			cmd.Printf("Library directory: %s\n", cfg.Library.DataDir)
			if printKeys {
				cmd.Printf("API key: %s\n", cfg.Server.APIKey)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "Library directory (default ~/.local/share/vsvdb)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&printKeys, "print-keys", false, "Print the generated API key")
	return cmd
}
