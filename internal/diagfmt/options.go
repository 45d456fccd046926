package diagfmt

import "lintel/internal/diag"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps the CLI spelling of a path mode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строки контекста вокруг primary span
	PathMode  PathMode
	ShowNotes bool
	TabWidth  int // 0 - четыре пробела
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Max          int // обрезка вывода, не Collector
	IncludeNotes bool
}

// SarifRule describes one reportingDescriptor of the tool component.
type SarifRule struct {
	ID       string
	Title    string
	Severity diag.Severity
	Tags     []string
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
	Rules          []SarifRule
	RunID          string // пусто - новый uuid на каждый запуск
}

// ShortOpts configures the one-line-per-finding format.
type ShortOpts struct {
	PathMode     PathMode
	Max          int
	IncludeNotes bool
}
