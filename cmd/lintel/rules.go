package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lintel/internal/checks"
	"lintel/internal/fix"
	"lintel/internal/rule"
)

type ruleInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled_by_default"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [flags] [rule-id]",
		Short: "List the built-in rules",
		Long:  `Rules lists every built-in rule, or describes one rule when its id is given`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRules,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	reg, err := checks.Registry()
	if err != nil {
		return err
	}
	engine := fix.NewEngine(checks.Providers()...)

	descs := reg.All()
	if len(args) == 1 {
		d, ok := reg.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown rule: %s", args[0])
		}
		descs = []*rule.Descriptor{d}
	}
	infos := make([]ruleInfo, 0, len(descs))
	for _, d := range descs {
		infos = append(infos, ruleInfo{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Severity:    d.Severity.String(),
			Enabled:     d.DefaultEnabled,
			Fixable:     engine.ProviderFor(d.ID) != nil,
			Tags:        d.Tags,
		})
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		if len(args) == 1 {
			renderRuleDetail(out, infos[0])
			return nil
		}
		return renderRuleTable(out, infos)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func renderRuleTable(out io.Writer, infos []ruleInfo) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEVERITY\tDEFAULT\tFIX\tTITLE")
	for _, r := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Severity, onOff(r.Enabled), yesNo(r.Fixable), r.Title)
	}
	return tw.Flush()
}

func renderRuleDetail(out io.Writer, r ruleInfo) {
	fmt.Fprintf(out, "%s: %s\n", r.ID, r.Title)
	fmt.Fprintf(out, "severity: %s, %s by default", r.Severity, onOff(r.Enabled))
	if r.Fixable {
		fmt.Fprint(out, ", fixable")
	}
	fmt.Fprintln(out)
	if len(r.Tags) > 0 {
		fmt.Fprintf(out, "tags: %s\n", strings.Join(r.Tags, ", "))
	}
	if r.Description != "" {
		fmt.Fprintf(out, "\n%s\n", r.Description)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
