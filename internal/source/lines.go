package source

import (
	"bytes"
	"slices"
)

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) // #nosec G115 -- Add bounds content to uint32
		off++
	}
}

// toLineCol maps a byte offset using the newline index. The number of
// newlines strictly before off is the zero-based line.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	n, _ := slices.BinarySearch(lineIdx, off)
	if n == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	return LineCol{Line: uint32(n) + 1, Col: off - lineIdx[n-1]} // #nosec G115 -- n <= len(lineIdx)
}

// lineBounds returns the byte range of line n (1-based) without its '\n'.
func (f *File) lineBounds(n uint32) (start, end uint32, ok bool) {
	count := uint64(len(f.LineIdx)) + 1
	if n == 0 || uint64(n) > count {
		return 0, 0, false
	}
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end = uint32(len(f.Content)) // #nosec G115 -- Add bounds content to uint32
	if int(n-1) < len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return start, end, true
}

// GetLine returns line n (1-based) without the line terminator, or ""
// when the file has no such line.
func (f *File) GetLine(n uint32) string {
	start, end, ok := f.lineBounds(n)
	if !ok {
		return ""
	}
	return string(bytes.TrimSuffix(f.Content[start:end], []byte{'\r'}))
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// RestoreBOM prepends the byte order mark when the file was loaded with one.
func (f *File) RestoreBOM(content []byte) []byte {
	if f.Flags&FileHadBOM == 0 {
		return content
	}
	return slices.Concat(bom, content)
}

// LineBlock returns the byte range covering lines from..to (1-based)
// including the terminator of the last one. Out-of-range lines clamp to
// the file.
func (f *File) LineBlock(from, to uint32) (start, end uint32) {
	size := uint32(len(f.Content)) // #nosec G115 -- Add bounds content to uint32
	start = size
	if s, _, ok := f.lineBounds(max(from, 1)); ok {
		start = s
	}
	end = size
	if _, e, ok := f.lineBounds(max(to, from, 1)); ok && e < size {
		end = e + 1
	}
	return start, max(start, end)
}
