package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lintel/internal/config"
	"lintel/internal/driver"
	"lintel/internal/syntax"
	"lintel/internal/tsparse"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.cs",
		Short: "Parse a C# source file and print its syntax tree",
		Long: `Parse builds the full-fidelity tree of a C# source file and prints it.
With --frontend tree-sitter the file is parsed by the tree-sitter grammar instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|text); text reprints the source from the tree")
	cmd.Flags().String("frontend", config.FrontendNative, "parser frontend (native|tree-sitter)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	f := readFlags(cmd.Flags())
	format := f.String("format")
	frontend := f.String("frontend")
	colorMode := f.String("color")
	if err := f.Err(); err != nil {
		return err
	}

	switch frontend {
	case config.FrontendNative:
		return parseNative(cmd, args[0], format, colorMode)
	case config.FrontendTreeSitter:
		return parseTreeSitter(cmd, args[0], format, colorMode)
	default:
		return fmt.Errorf("unknown frontend: %s", frontend)
	}
}

func parseNative(cmd *cobra.Command, path, format, colorMode string) error {
	if format != "pretty" && format != "text" {
		return fmt.Errorf("unknown format: %s", format)
	}
	res, err := driver.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	reportToStderr(cmd, res.Diagnostics, res.FileSet, colorMode)
	if res.Tree == nil {
		return &exitError{code: 1}
	}
	if format == "text" {
		_, err = res.Tree.WriteTo(cmd.OutOrStdout())
		return err
	}
	return syntax.Dump(cmd.OutOrStdout(), res.Tree.Root())
}

// parseTreeSitter only dumps: the grammar's tree has no trivia to reprint.
func parseTreeSitter(cmd *cobra.Command, path, format, colorMode string) error {
	if format != "pretty" {
		return fmt.Errorf("format %s is not supported by the tree-sitter frontend", format)
	}
	fs, file, err := driver.LoadFile(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	tree, err := tsparse.Parse(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()
	reportToStderr(cmd, tree.Diagnostics(), fs, colorMode)
	return tree.Dump(cmd.OutOrStdout())
}
