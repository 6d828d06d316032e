/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/vsvdb/pkg/api"
	"github.com/ssargent/vsvdb/pkg/codec"
)

func newLLDVCmd(a *app) *cobra.Command {
	var selfTest bool

	cmd := &cobra.Command{
		Use:     "enable-lldv [hex]",
		Aliases: []string{"lldv"},
		Short:   "Set the LLDV-HDMI bit of a VSVDB payload",
		Long: `Set the LLDV-HDMI interface bit (bit 0 of byte 2) and leave the other
55 bits untouched. A warning is printed when the bit is already set.

Examples:
  vsvdb enable-lldv 480376825e6d95
  vsvdb lldv --self-test`,
		Args: func(cmd *cobra.Command, args []string) error {
			if selfTest {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if selfTest {
				return runLLDVSelfTest(cmd.OutOrStdout())
			}

			payload := strings.TrimSpace(args[0])
			out, changed, err := codec.EnableLLDVHDMI(payload)
			if err != nil {
				return err
			}
			in, _ := codec.ParseHex(payload)

			if !changed {
				a.logger.Warn("payload is already enabled with LLDV-HDMI", "hex", in.String())
			}

			result := api.LLDVResponse{Input: in.String(), Output: out, Changed: changed}
			return a.output(cmd.OutOrStdout(), result, func(w io.Writer) error {
				if changed {
					_, err := fmt.Fprintf(w, "Update %s to %s to enable LLDV-HDMI\n", in, out)
					return err
				}
				_, err := fmt.Fprintln(w, out)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&selfTest, "self-test", false, "Check the enabler against the known payload vectors")
	return cmd
}

func runLLDVSelfTest(w io.Writer) error {
	failed, err := codec.VerifyLLDVVectors()
	if err != nil {
		return err
	}

	bad := make(map[string]string, len(failed))
	for _, v := range failed {
		bad[v.Input] = v.Output
	}
	for _, v := range codec.LLDVVectors {
		if got, ok := bad[v.Input]; ok {
			fmt.Fprintf(w, "FAIL %s -> %s (want %s)\n", v.Input, got, v.Output)
			continue
		}
		fmt.Fprintf(w, "ok   %s -> %s\n", v.Input, v.Output)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d vectors failed", len(failed), len(codec.LLDVVectors))
	}
	return nil
}
