/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ssargent/vsvdb/pkg/codec"
	"gopkg.in/yaml.v3"
)

// output writes v as json or yaml, or calls text for the table format
func (a *app) output(w io.Writer, v interface{}, text func(w io.Writer) error) error {
	switch a.cfg.Output.Format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(v)
	}
	return text(w)
}

// outputReportTable displays a decoded record in table format
func outputReportTable(w io.Writer, rep *codec.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Hex:\t%s\n", rep.Hex)
	fmt.Fprintf(tw, "Bytes:\t%s\n\n", strings.Join(rep.Bytes, " "))

	fmt.Fprintln(tw, "BYTE\tFIELD\tBITS\tVALUE")
	for _, e := range rep.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Byte, e.Name, e.Bits, e.Value)
	}

	return tw.Flush()
}
