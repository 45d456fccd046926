// Package config loads lintel.toml, the per-project analysis settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"lintel/internal/diag"
	"lintel/internal/rule"
)

// FileName is the manifest looked up from the analysis target upwards.
const FileName = "lintel.toml"

// Config mirrors lintel.toml. Path and Root are empty for the defaults.
type Config struct {
	Path string `toml:"-"`
	Root string `toml:"-"`

	Analysis Analysis `toml:"analysis"`
	Cache    Cache    `toml:"cache"`
	Rules    Rules    `toml:"rules"`
	Output   Output   `toml:"output"`
}

type Analysis struct {
	IncludeGenerated bool   `toml:"include_generated"`
	Jobs             int    `toml:"jobs"`
	ParallelRules    bool   `toml:"parallel_rules"`
	MaxDiagnostics   int    `toml:"max_diagnostics"`
	Frontend         string `toml:"frontend"` // native | tree-sitter
}

type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type Rules struct {
	Enable   []string          `toml:"enable"`
	Disable  []string          `toml:"disable"`
	Severity map[string]string `toml:"severity"`
}

type Output struct {
	Format string `toml:"format"` // pretty | json | sarif
	Color  string `toml:"color"`  // auto | on | off
}

const (
	FrontendNative     = "native"
	FrontendTreeSitter = "tree-sitter"
)

// Default returns the settings used when no lintel.toml is found.
func Default() Config {
	return Config{
		Analysis: Analysis{
			Jobs:           runtime.GOMAXPROCS(0),
			MaxDiagnostics: 1000,
			Frontend:       FrontendNative,
		},
		Cache:  Cache{Dir: ".lintel-cache"},
		Output: Output{Format: "pretty", Color: "auto"},
	}
}

// Find walks up from startDir to locate lintel.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest lintel.toml above target, or the defaults.
func Discover(target string) (Config, bool, error) {
	path, ok, err := Find(target)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Default(), true, err
	}
	return cfg, true, nil
}

// Load decodes path over the defaults. Unknown keys are errors: a typo in
// a rule section would otherwise silently change nothing.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("analysis", "jobs") && cfg.Analysis.Jobs <= 0 {
		return Config{}, fmt.Errorf("%s: [analysis].jobs must be positive", path)
	}
	if meta.IsDefined("cache", "dir") && strings.TrimSpace(cfg.Cache.Dir) == "" {
		return Config{}, fmt.Errorf("%s: [cache].dir must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(cfg.Root, cfg.Cache.Dir)
	}
	return cfg, nil
}

// Validate checks enumerations and numeric bounds.
func (c Config) Validate() error {
	switch c.Analysis.Frontend {
	case FrontendNative, FrontendTreeSitter:
	default:
		return fmt.Errorf("[analysis].frontend: unknown frontend %q", c.Analysis.Frontend)
	}
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("[analysis].max_diagnostics must not be negative")
	}
	switch c.Output.Format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("[output].format: unknown format %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color: expected auto, on or off, got %q", c.Output.Color)
	}
	for id, sev := range c.Rules.Severity {
		if _, err := diag.ParseSeverity(sev); err != nil {
			return fmt.Errorf("[rules.severity].%s: %w", id, err)
		}
	}
	return nil
}

// Selection turns the [rules] section into a registry selection. Rule ids
// are checked by Registry.Select.
func (r Rules) Selection() (rule.Selection, error) {
	sel := rule.Selection{
		Enable:  append([]string(nil), r.Enable...),
		Disable: append([]string(nil), r.Disable...),
	}
	if len(r.Severity) == 0 {
		return sel, nil
	}
	ids := make([]string, 0, len(r.Severity))
	for id := range r.Severity {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	sel.Severity = make(map[string]diag.Severity, len(ids))
	for _, id := range ids {
		sev, err := diag.ParseSeverity(r.Severity[id])
		if err != nil {
			return rule.Selection{}, fmt.Errorf("[rules.severity].%s: %w", id, err)
		}
		sel.Severity[id] = sev
	}
	return sel, nil
}
