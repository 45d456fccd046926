package source

import (
	"os"
	"path/filepath"
	"strings"
)

// normalizePath gives paths one shape across platforms.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the cleaned absolute form of p with forward slashes.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns p relative to baseDir. A path outside baseDir is
// returned absolute; "../../x" helps nobody.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the last path element.
func BaseName(p string) string { return filepath.Base(p) }

// autoPathLimit is the longest absolute path "auto" prints in full.
const autoPathLimit = 40

// FormatPath renders the file path in one of the modes absolute,
// relative, basename or auto. Unknown modes print the stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= autoPathLimit {
			return BaseName(f.Path)
		}
		return f.Path
	default:
		return f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
