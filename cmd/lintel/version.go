package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lintel/internal/version"
)

const versionTagline = "every rule a lintel over the doorway"

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show lintel build fingerprints",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("hash", false, "include git commit hash")
	cmd.Flags().Bool("message", false, "include git commit message")
	cmd.Flags().Bool("date", false, "include build timestamp")
	cmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	f := readFlags(cmd.Flags())
	full := f.Bool("full")
	hash := f.Bool("hash") || full
	message := f.Bool("message") || full
	date := f.Bool("date") || full
	format := strings.ToLower(f.String("format"))
	colorMode := f.String("color")
	if err := f.Err(); err != nil {
		return err
	}

	b := version.Current()
	p := versionPayload{Tool: "lintel", Version: b.Version, Tagline: versionTagline}
	if hash {
		p.GitCommit = orUnknown(b.Commit)
	}
	if message {
		p.GitMessage = orUnknown(b.Message)
	}
	if date {
		p.BuildDate = orUnknown(b.Date)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "pretty":
		printVersion(out, p, useColor(colorMode, os.Stdout))
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}

func printVersion(out io.Writer, p versionPayload, colored bool) {
	v := p.Version
	if colored {
		// --color on пересиливает автоопределение fatih/color
		prev := color.NoColor
		color.NoColor = false
		v = version.Colored()
		color.NoColor = prev
	}
	fmt.Fprintf(out, "lintel %s: %s\n", v, p.Tagline)
	extra := false
	for _, row := range [...]struct{ label, value string }{
		{"commit: ", p.GitCommit},
		{"message:", p.GitMessage},
		{"built:  ", p.BuildDate},
	} {
		if row.value != "" {
			fmt.Fprintf(out, "%s %s\n", row.label, row.value)
			extra = true
		}
	}
	if !extra {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
