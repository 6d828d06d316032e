/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/vsvdb/pkg/config"
	"github.com/ssargent/vsvdb/pkg/di"
	"github.com/ssargent/vsvdb/pkg/logging"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

func getContainer() *di.Container {
	if container == nil {
		container = di.NewContainer()
	}
	return container
}

// app carries the state shared by one command tree
type app struct {
	configPath string
	logLevel   string
	format     string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the vsvdb command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vsvdb",
		Short: "Dolby Vision VSVDB decoder and editor",
		Long: `vsvdb decodes, edits and re-encodes the 7-byte Dolby Vision
Vendor-Specific Video Data Block a display advertises in its EDID.

Examples:
  vsvdb decode 480376825e6d95
  vsvdb encode --base 480376825e6d95 --max-nits 1000
  vsvdb enable-lldv 480376825e6d95
  vsvdb edit`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "", "Output format: text, json or yaml")

	rootCmd.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newLLDVCmd(a),
		newFieldsCmd(a),
		newEditCmd(a),
		newLibraryCmd(a),
		newServeCmd(a),
		newInitCmd(a),
	)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the config file, applies flag overrides and sets up logging.
// A missing default config file is not an error; a missing explicit one is.
func (a *app) load(cmd *cobra.Command) error {
	path := a.configPath
	explicit := path != ""
	if !explicit {
		path = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if explicit || config.ConfigExists(path) {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.format != "" {
		cfg.Output.Format = a.format
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded", "path", path, "format", cfg.Output.Format)
	return nil
}
