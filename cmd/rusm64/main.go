// Command rusm64 is the batch front-end for the assembler core in
// package asm: it expands .include directives, drives an assemble or
// parse-only run, and writes the resulting binary or parse tree.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jkorinth/rusm64/asm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rusm64",
		Short:         "A two-pass assembler for the MOS 6502 / Commodore 64",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAssembleCmd(), newParseCmd())
	return root
}

func newAssembleCmd() *cobra.Command {
	var output string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "assemble <input>",
		Short: "Assemble a source file into a raw binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			source, err := expandIncludes(input, nil)
			if err != nil {
				return err
			}

			result, err := asm.Assemble(source, verbose)
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + ".bin"
			}
			if err := os.WriteFile(output, result.Code, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			if verbose {
				printBinaryDump(cmd.OutOrStdout(), result.Origin, result.Code)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "assembled %d bytes to %s (origin $%04X)\n", len(result.Code), output, result.Origin)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with .bin extension)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a step trace and hex dump")
	return cmd
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse a source file and print its intermediate representation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := expandIncludes(args[0], nil)
			if err != nil {
				return err
			}
			lines, err := asm.Parse(source)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), asm.DescribeLine(l))
			}
			return nil
		},
	}
}

// expandIncludes reads path and textually substitutes the contents of
// any .include "file" line, depth-first, before the parser ever sees
// it. This is the front-end collaborator contract the core package
// itself does not implement. seen guards against include cycles.
func expandIncludes(path string, seen map[string]bool) (string, error) {
	if seen == nil {
		seen = make(map[string]bool)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if seen[abs] {
		return "", fmt.Errorf("circular .include of %s", path)
	}
	seen[abs] = true
	defer delete(seen, abs)

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	var out strings.Builder
	for _, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ".include") {
			rest := strings.TrimSpace(trimmed[len(".include"):])
			incPath := strings.Trim(rest, `"`)
			expanded, err := expandIncludes(filepath.Join(filepath.Dir(path), incPath), seen)
			if err != nil {
				return "", err
			}
			out.WriteString(expanded)
			out.WriteString("\n")
			continue
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String(), nil
}

// printBinaryDump prints a 16-bytes-per-line hex+ASCII dump of code
// starting at origin, the same shape a verbose assemble run in the
// original command-line tool this assembler was modeled on produces.
func printBinaryDump(w io.Writer, origin int, code []byte) {
	for off := 0; off < len(code); off += 16 {
		end := off + 16
		if end > len(code) {
			end = len(code)
		}
		row := code[off:end]

		fmt.Fprintf(w, "%04X: ", origin+off)
		for i, b := range row {
			fmt.Fprintf(w, "%02X ", b)
			if i == 7 {
				fmt.Fprint(w, " ")
			}
		}
		for i := len(row); i < 16; i++ {
			fmt.Fprint(w, "   ")
			if i == 7 {
				fmt.Fprint(w, " ")
			}
		}

		fmt.Fprint(w, " ")
		for _, b := range row {
			if b >= 0x20 && b < 0x7f {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w)
	}
}
