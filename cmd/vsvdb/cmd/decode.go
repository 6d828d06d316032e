/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/ssargent/vsvdb/pkg/codec"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode a VSVDB payload into its fields",
		Long: `Decode a 14-character hex payload and print every field with its raw
bits and meaning. Without an argument the configured default payload is used.

Examples:
  vsvdb decode 480376825e6d95
  vsvdb decode 4D4E4A725A7776 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := a.cfg.DefaultPayload
			if len(args) == 1 {
				payload = args[0]
			}

			c := codec.NewRecordCodec()
			fs, err := c.DecodeHex(payload)
			if err != nil {
				return err
			}
			rep, err := c.Describe(fs)
			if err != nil {
				return err
			}

			a.logger.Debug("decoded payload", "hex", rep.Hex)
			return a.output(cmd.OutOrStdout(), rep, func(w io.Writer) error {
				return outputReportTable(w, rep)
			})
		},
	}
}
