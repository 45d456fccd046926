package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lintel/internal/diag"
	"lintel/internal/diagfmt"
	"lintel/internal/driver"
	"lintel/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.cs",
		Short: "Print the tokens of a C# source file",
		Long:  `Tokenize lexes one C# source file and prints every token with its leading and trailing trivia`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	f := readFlags(cmd.Flags())
	format := f.String("format")
	colorMode := f.String("color")
	if err := f.Err(); err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := driver.Tokenize(args[0])
	if err != nil {
		return fmt.Errorf("tokenize %s: %w", args[0], err)
	}
	reportToStderr(cmd, res.Diagnostics, res.FileSet, colorMode)

	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens, res.FileSet)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, res.FileSet)
}

// reportToStderr prints front-end diagnostics next to the main output,
// with a little source context around each one.
func reportToStderr(cmd *cobra.Command, diags []diag.Diagnostic, fs *source.FileSet, colorMode string) {
	if len(diags) == 0 {
		return
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), diags, fs, diagfmt.PrettyOpts{
		Color:   useColor(colorMode, os.Stderr),
		Context: 2,
	})
}
