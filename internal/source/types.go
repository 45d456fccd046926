package source

import "fmt"

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records how a file entered the set.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // из памяти: тесты, stdin
	FileHadBOM                        // BOM снят при загрузке, запись вернёт его
	FileHasCRLF                       // \r\n в содержимом, байты не трогаем
)

// File is one loaded source. Content never changes after Add; fixes
// produce new buffers.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Col) }
