package diagfmt

import (
	"lintel/internal/diag"
	"lintel/internal/source"
)

// fileOf returns the file a diagnostic points into. Diagnostics about files
// that never made it into the set (load failures) only carry a path; timing
// reports carry neither.
func fileOf(fs *source.FileSet, d *diag.Diagnostic) (*source.File, bool) {
	if fs == nil || d.Code == diag.ObsTimings || int(d.Primary.File) >= fs.Len() {
		return nil, false
	}
	f := fs.Get(d.Primary.File)
	if d.Path != "" && d.Path != f.Path {
		return nil, false
	}
	return f, true
}

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		base := ""
		if fs != nil {
			base = fs.BaseDir()
		}
		return f.FormatPath("relative", base)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// diagPath is the displayed path of d, with or without a loaded file.
func diagPath(fs *source.FileSet, d *diag.Diagnostic, mode PathMode) string {
	if f, ok := fileOf(fs, d); ok {
		return displayPath(fs, f, mode)
	}
	if d.Path == "" {
		return ""
	}
	tmp := source.File{Path: d.Path}
	return displayPath(fs, &tmp, mode)
}
