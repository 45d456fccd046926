package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the files of one analysis run and resolves spans against
// them. Mutation is single-threaded: the driver loads everything first
// and the workers only read.
type FileSet struct {
	files   []*File
	byPath  map[string]FileID // последняя версия пути
	baseDir string
}

// NewFileSet returns an empty set resolving relative paths against the
// working directory.
func NewFileSet() *FileSet {
	return &FileSet{byPath: map[string]FileID{}}
}

// NewFileSetWithBase returns an empty set whose relative paths are
// computed against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the configured base directory, falling back to the
// working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers content under path and returns its new ID. Adding the
// same path twice keeps both versions; Lookup sees the newer one.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source %s: file too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileHasCRLF
	}
	f := &File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
	fs.files = append(fs.files, f)
	fs.byPath[f.Path] = f.ID
	return f.ID
}

// Load reads path from disk. A leading UTF-8 BOM is stripped and
// remembered; line endings stay as they are.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- caller chooses the path
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, bom); ok {
		content, flags = rest, FileHadBOM
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file with the given ID. IDs come from this set; an
// unknown ID panics.
func (fs *FileSet) Get(id FileID) *File { return fs.files[id] }

func (fs *FileSet) Len() int { return len(fs.files) }

// Lookup returns the newest file added under path.
func (fs *FileSet) Lookup(path string) (*File, bool) {
	id, ok := fs.byPath[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return fs.files[id], true
}

// Resolve turns both ends of span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fs.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}
