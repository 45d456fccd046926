package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"lintel/internal/config"
	"lintel/internal/rule"
)

// envPrefix namespaces environment overrides: LINTEL_ANALYSIS_JOBS,
// LINTEL_OUTPUT_FORMAT, LINTEL_RULES_ONLY and so on.
const envPrefix = "LINTEL"

// settings is the effective configuration of one command: lintel.toml
// (or the defaults), then LINTEL_* variables, then explicit flags.
type settings struct {
	config.Config
	// Found is false when no lintel.toml was read.
	Found bool
	// Only restricts the run to these rules (--rules / LINTEL_RULES_ONLY).
	Only []string
}

// flagKeys binds command flags to configuration keys. Flags a command does
// not define are skipped.
var flagKeys = map[string]string{
	"jobs":              "analysis.jobs",
	"parallel-rules":    "analysis.parallel_rules",
	"include-generated": "analysis.include_generated",
	"max-diagnostics":   "analysis.max_diagnostics",
	"frontend":          "analysis.frontend",
	"cache":             "cache.enabled",
	"cache-dir":         "cache.dir",
	"format":            "output.format",
	"color":             "output.color",
	"rules":             "rules.only",
}

func loadSettings(cmd *cobra.Command, target string) (*settings, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var (
		cfg   config.Config
		found bool
	)
	if path != "" {
		cfg, err = config.Load(path)
		found = true
	} else {
		cfg, found, err = config.Discover(target)
	}
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	s := &settings{Config: cfg, Found: found}
	s.Analysis.Jobs = v.GetInt("analysis.jobs")
	s.Analysis.ParallelRules = v.GetBool("analysis.parallel_rules")
	s.Analysis.IncludeGenerated = v.GetBool("analysis.include_generated")
	s.Analysis.MaxDiagnostics = v.GetInt("analysis.max_diagnostics")
	s.Analysis.Frontend = v.GetString("analysis.frontend")
	s.Cache.Enabled = v.GetBool("cache.enabled")
	s.Cache.Dir = v.GetString("cache.dir")
	s.Output.Format = strings.ToLower(v.GetString("output.format"))
	s.Output.Color = strings.ToLower(v.GetString("output.color"))
	s.Only = splitList(v.GetStringSlice("rules.only"))

	if s.Analysis.Jobs <= 0 {
		return nil, fmt.Errorf("jobs must be positive, got %d", s.Analysis.Jobs)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper, cfg config.Config) {
	v.SetDefault("analysis.jobs", cfg.Analysis.Jobs)
	v.SetDefault("analysis.parallel_rules", cfg.Analysis.ParallelRules)
	v.SetDefault("analysis.include_generated", cfg.Analysis.IncludeGenerated)
	v.SetDefault("analysis.max_diagnostics", cfg.Analysis.MaxDiagnostics)
	v.SetDefault("analysis.frontend", cfg.Analysis.Frontend)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.color", cfg.Output.Color)
	v.SetDefault("rules.only", []string{})
}

// bindFlags only binds flags the user actually set: an untouched flag
// default must not shadow lintel.toml.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// splitList accepts both repeated values and comma separated ones, which
// is what LINTEL_RULES_ONLY="a,b" yields.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Selection merges [rules] with --rules.
func (s *settings) Selection() (rule.Selection, error) {
	sel, err := s.Rules.Selection()
	if err != nil {
		return rule.Selection{}, err
	}
	sel.Only = s.Only
	return sel, nil
}
