// Package shell is the interactive, menu-driven record editor.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ssargent/vsvdb/pkg/codec"
)

// errQuit ends the session. End of input is treated the same way.
var errQuit = errors.New("quit")

// menuItem is one entry of the modify menu. preset is set for the color
// preset entry, back for the return entry.
type menuItem struct {
	title  string
	field  codec.Field
	preset bool
	back   bool
}

// Shell edits one field set at a time over a line-oriented reader and writer.
// It is not safe for concurrent use.
type Shell struct {
	in             *bufio.Scanner
	out            io.Writer
	codec          *codec.RecordCodec
	fs             *codec.FieldSet
	defaultPayload string
	logger         *slog.Logger
}

// New creates a shell. defaultPayload is loaded when the user answers the
// payload prompt with an empty line.
func New(in io.Reader, out io.Writer, defaultPayload string, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{
		in:             bufio.NewScanner(in),
		out:            out,
		codec:          codec.NewRecordCodec(),
		defaultPayload: defaultPayload,
		logger:         logger,
	}
}

// Load replaces the current record with payload.
func (s *Shell) Load(payload string) error {
	fs, err := s.codec.DecodeHex(payload)
	if err != nil {
		return err
	}
	s.fs = fs
	return nil
}

// Hex returns the current record in its wire form, or "" when nothing is
// loaded.
func (s *Shell) Hex() string {
	if s.fs == nil {
		return ""
	}
	out, err := s.codec.EncodeHex(s.fs)
	if err != nil {
		return ""
	}
	return out
}

// Run shows the main menu until the user exits, input ends or ctx is
// cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.println("Welcome to the Dolby Vision VSVDB Tool!")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.fs == nil {
			if err := s.promptPayload(); err != nil {
				return s.finish(err)
			}
		}

		s.println("\n--- Main Menu ---")
		s.println("1. Show Current VSVDB Info")
		s.println("2. Modify VSVDB Fields")
		s.println("3. Show Raw Hex Payload")
		s.println("4. Load New Payload")
		s.println("5. Exit")

		choice, err := s.readChoice("Enter your choice: ", 1, 5)
		if err != nil {
			return s.finish(err)
		}

		switch choice {
		case 1:
			s.showInfo()
		case 2:
			if err := s.modifyMenu(ctx); err != nil {
				return s.finish(err)
			}
		case 3:
			s.printf("\nCurrent Raw Hex Payload: %s\n", s.Hex())
		case 4:
			s.fs = nil
		case 5:
			s.println("Exiting tool.")
			return nil
		}
	}
}

func (s *Shell) finish(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (s *Shell) promptPayload() error {
	for {
		line, err := s.readLine(fmt.Sprintf(
			"Enter 7-byte VSVDB hex payload (e.g., %s) or press Enter for default: ", s.defaultPayload))
		if err != nil {
			return err
		}
		if line == "" {
			line = s.defaultPayload
		}
		if err := s.Load(line); err != nil {
			s.printf("Invalid payload: %v\n", err)
			continue
		}
		s.logger.Debug("payload loaded", "hex", s.Hex())
		s.printf("Loaded payload: %s\n", s.Hex())
		return nil
	}
}

func (s *Shell) showInfo() {
	rep, err := s.codec.Describe(s.fs)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}

	s.println("\n--- Current VSVDB Information ---")
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Hex Payload:\t%s\n", rep.Hex)
	fmt.Fprintf(w, "Bytes:\t%s\n", strings.Join(rep.Bytes, " "))
	for _, e := range rep.Entries {
		fmt.Fprintf(w, "%s:\t%s\n", e.Name, e.Value)
	}
	w.Flush()
	s.println("---------------------------------")
}

func menuItems() []menuItem {
	var items []menuItem
	for _, spec := range codec.Layout {
		if spec.Field == codec.FieldReserved {
			continue
		}
		items = append(items, menuItem{title: itemTitle(spec), field: spec.Field})
	}
	items = append(items,
		menuItem{title: "Set Color Primaries from Preset", preset: true},
		menuItem{title: "Back to Main Menu", back: true},
	)
	return items
}

func itemTitle(spec codec.FieldSpec) string {
	switch {
	case spec.Field == codec.FieldMinLuminance || spec.Field == codec.FieldMaxLuminance:
		return spec.Name + " (nits)"
	case codec.IsCategorical(spec.Field):
		return spec.Name
	}
	return fmt.Sprintf("%s (0-%d)", spec.Name, spec.Max())
}

func (s *Shell) modifyMenu(ctx context.Context) error {
	items := menuItems()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.println("\n--- Modify VSVDB Fields ---")
		for i, item := range items {
			s.printf("%d. %s\n", i+1, item.title)
		}

		choice, err := s.readChoice("Select field to modify: ", 1, len(items))
		if err != nil {
			return err
		}
		item := items[choice-1]
		if item.back {
			return nil
		}

		if err := s.apply(item); err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			s.printf("Error: %v\n", err)
			continue
		}
		s.println("Field updated.")
		s.showInfo()
	}
}

// apply edits one field on a copy and keeps the copy only on success.
func (s *Shell) apply(item menuItem) error {
	next := s.fs.Clone()

	switch {
	case item.preset:
		name, err := s.readOption("Select Color Primaries Preset:", codec.PresetNames())
		if err != nil {
			return err
		}
		if err := next.ApplyPreset(name); err != nil {
			return err
		}
		if p, _ := codec.LookupPreset(name); !p.Verified {
			s.printf("Warning: %s is an %s.\n", p.Name, p.Note)
		}

	case item.field == codec.FieldMinLuminance:
		nits, err := s.readFloat(fmt.Sprintf("Enter Min Display Luminance (nits, %s): ", tableHint(codec.MinLuminance)))
		if err != nil {
			return err
		}
		if !next.SetMinLuminanceNits(nits) {
			got, _ := next.MinLuminanceNits()
			s.printf("Warning: %g nits not in table, using closest: %.3f nits.\n", nits, got)
		}

	case item.field == codec.FieldMaxLuminance:
		nits, err := s.readFloat(fmt.Sprintf("Enter Max Display Luminance (nits, %s): ", tableHint(codec.MaxLuminance)))
		if err != nil {
			return err
		}
		if !next.SetMaxLuminanceNits(nits) {
			got, _ := next.MaxLuminanceNits()
			s.printf("Warning: %g nits not in table, using closest: %g nits.\n", nits, got)
		}

	case codec.IsCategorical(item.field):
		label, err := s.readOption(fmt.Sprintf("Select %s:", item.field), codec.Labels(item.field))
		if err != nil {
			return err
		}
		if err := next.SetCategorical(item.field, label); err != nil {
			return err
		}

	default:
		spec := item.field.Spec()
		v, err := s.readChoice(fmt.Sprintf("Enter %s bits (0-%d, %d bits): ", spec.Name, spec.Max(), spec.Width), 0, int(spec.Max()))
		if err != nil {
			return err
		}
		if err := next.Set(item.field, uint8(v)); err != nil {
			return err
		}
	}

	if err := next.Validate(); err != nil {
		return err
	}
	s.fs = next
	s.logger.Debug("field updated", "item", item.title, "hex", s.Hex())
	return nil
}

func tableHint(t *codec.LuminanceTable) string {
	v := t.Values()
	return fmt.Sprintf("%g to %g", v[0], v[len(v)-1])
}

// readLine prompts and returns the trimmed next line.
func (s *Shell) readLine(prompt string) (string, error) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		s.println()
		return "", errQuit
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readChoice prompts until the user enters an integer in [min, max].
func (s *Shell) readChoice(prompt string, min, max int) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			s.println("Invalid input. Please enter a number.")
			continue
		}
		if n < min || n > max {
			s.printf("Invalid choice. Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return n, nil
	}
}

// readFloat prompts until the user enters a number.
func (s *Shell) readFloat(prompt string) (float64, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			s.println("Invalid input. Please enter a number.")
			continue
		}
		return v, nil
	}
}

// readOption lists options and returns the one the user picks by number.
func (s *Shell) readOption(title string, options []string) (string, error) {
	s.println(title)
	for i, o := range options {
		s.printf("  %d. %s\n", i+1, o)
	}
	n, err := s.readChoice("Enter choice number: ", 1, len(options))
	if err != nil {
		return "", err
	}
	return options[n-1], nil
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(args ...interface{}) {
	fmt.Fprintln(s.out, args...)
}
