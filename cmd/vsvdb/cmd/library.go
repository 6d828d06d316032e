/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/ssargent/vsvdb/pkg/api"
	"github.com/ssargent/vsvdb/pkg/codec"
	"github.com/ssargent/vsvdb/pkg/library"
)

func newLibraryCmd(a *app) *cobra.Command {
	var dataDir string

	// open resolves the data directory and opens the payload library
	open := func() (api.PayloadLibrary, error) {
		dir := dataDir
		if dir == "" {
			dir = a.cfg.Library.DataDir
		}
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		return getContainer().GetLibraryFactory().OpenLibrary(dir, a.logger)
	}

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage named payloads",
		Long: `Keep a named, versioned history of payloads, for example one name per
display. Every save adds a revision; get returns the newest.

Examples:
  vsvdb library save living-room 480377825e6d95
  vsvdb library history living-room
  vsvdb library list`,
	}
	cmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Library directory (default from config)")

	saveCmd := &cobra.Command{
		Use:   "save <name> <hex>",
		Short: "Save a payload under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := codec.ParseHex(args[1])
			if err != nil {
				return err
			}
			lib, err := open()
			if err != nil {
				return err
			}
			defer lib.Close()

			rev, err := lib.Save(args[0], rec)
			if err != nil {
				return err
			}
			a.logger.Info("payload saved", "name", rev.Name, "id", rev.ID.String())
			return a.output(cmd.OutOrStdout(), rev, func(w io.Writer) error {
				return outputRevisionsTable(w, []*library.Revision{rev})
			})
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Show the newest payload saved under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := open()
			if err != nil {
				return err
			}
			defer lib.Close()

			rev, err := lib.Latest(args[0])
			if err != nil {
				return err
			}
			c := codec.NewRecordCodec()
			rep, err := c.Describe(c.DecodeRecord(rev.Record))
			if err != nil {
				return err
			}

			result := api.PayloadResponse{Revision: rev, Report: rep}
			return a.output(cmd.OutOrStdout(), result, func(w io.Writer) error {
				fmt.Fprintf(w, "Name:   %s\nID:     %s\nSaved:  %s\n\n",
					rev.Name, rev.ID, rev.SavedAt.Format(time.RFC3339))
				return outputReportTable(w, rep)
			})
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history <name>",
		Short: "List every revision of a name, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := open()
			if err != nil {
				return err
			}
			defer lib.Close()

			revs, err := lib.History(args[0])
			if err != nil {
				return err
			}
			return a.output(cmd.OutOrStdout(), revs, func(w io.Writer) error {
				return outputRevisionsTable(w, revs)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := open()
			if err != nil {
				return err
			}
			defer lib.Close()

			names, err := lib.List()
			if err != nil {
				return err
			}
			return a.output(cmd.OutOrStdout(), names, func(w io.Writer) error {
				if len(names) == 0 {
					_, err := fmt.Fprintln(w, "No payloads found")
					return err
				}
				for _, n := range names {
					fmt.Fprintln(w, n)
				}
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete every revision of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := open()
			if err != nil {
				return err
			}
			defer lib.Close()

			if err := lib.Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(saveCmd, getCmd, historyCmd, listCmd, deleteCmd)
	return cmd
}

// outputRevisionsTable displays revisions in table format
func outputRevisionsTable(w io.Writer, revs []*library.Revision) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tHEX\tSAVED")
	for _, rev := range revs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			rev.ID, rev.Name, rev.Hex, rev.SavedAt.Format(time.RFC3339Nano))
	}

	return tw.Flush()
}
