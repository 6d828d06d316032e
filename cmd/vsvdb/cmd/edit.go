/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ssargent/vsvdb/pkg/shell"
)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [hex]",
		Short: "Edit a VSVDB payload interactively",
		Long: `Open the interactive editor. With an argument the payload is loaded
straight away, otherwise the editor asks for one and falls back to the
configured default on an empty answer.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), a.cfg.DefaultPayload, a.logger)
			if len(args) == 1 {
				if err := sh.Load(args[0]); err != nil {
					return err
				}
			}
			return sh.Run(cmd.Context())
		},
	}
}
