/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ssargent/vsvdb/pkg/api"
)

func newFieldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List fields, labels, presets and luminance tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := api.DescribeFields()
			return a.output(cmd.OutOrStdout(), desc, func(w io.Writer) error {
				return outputFieldsTable(w, desc)
			})
		},
	}
}

// outputFieldsTable displays the field catalogue in table format
func outputFieldsTable(w io.Writer, desc api.FieldsResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "KEY\tNAME\tBYTE\tWIDTH\tVALUES")
	for _, f := range desc.Fields {
		values := fmt.Sprintf("0-%d", f.Max)
		if len(f.Labels) > 0 {
			values = strings.Join(f.Labels, " | ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", f.Key, f.Name, f.Byte, f.Width, values)
	}

	fmt.Fprintln(tw, "\nPRESET\tGX\tGY\tRX\tBX\tRY\tBY\tNOTE")
	for _, p := range desc.Presets {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			p.Name, p.GreenX, p.GreenY, p.RedX, p.BlueX, p.RedY, p.BlueY, p.Note)
	}

	fmt.Fprintln(tw, "\nINDEX\tMIN NITS\tMAX NITS")
	for i := range desc.MinLuminance {
		fmt.Fprintf(tw, "%d\t%.3f\t%g\n", i, desc.MinLuminance[i], desc.MaxLuminance[i])
	}

	return tw.Flush()
}
