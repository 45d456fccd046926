package version

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Set at build time via -ldflags "-X lintel/internal/version.Version=...".
var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = "" // ISO-8601
)

var partColors = [3]*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Plain returns Version without decoration, "dev" when unset. It feeds
// SARIF tool metadata and the result cache fingerprint.
func Plain() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	return "dev"
}

// Colored paints major, minor and patch in their own colours; the
// pre-release suffix stays plain. Colours follow color.NoColor.
func Colored() string {
	v := Plain()
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != len(partColors) {
		return v
	}
	for i, p := range parts {
		parts[i] = partColors[i].Sprint(p)
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Build is what is known about the running binary.
type Build struct {
	Version string
	Commit  string
	Message string
	Date    string
}

// Current merges the -ldflags values with the VCS stamp Go embeds in
// binaries built from a checkout. Missing fields stay empty.
func Current() Build {
	b := Build{
		Version: Plain(),
		Commit:  strings.TrimSpace(GitCommit),
		Message: strings.TrimSpace(GitMessage),
		Date:    strings.TrimSpace(BuildDate),
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && b.Commit == "":
			b.Commit = s.Value
		case s.Key == "vcs.time" && b.Date == "":
			b.Date = s.Value
		}
	}
	return b
}
