package lexer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// InputError reports input the lexer refuses to tokenize at all.
type InputError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code.ID(), e.Span.Start, e.Msg)
}

// Validate rejects oversized files, invalid UTF-8 and NUL bytes.
// maxSize <= 0 selects DefaultMaxFileSize.
func Validate(f *source.File, maxSize int) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if len(f.Content) > maxSize {
		return &InputError{
			Code: diag.LexFileTooLarge,
			Span: source.Span{File: f.ID},
			Msg:  fmt.Sprintf("file is %d bytes, limit is %d", len(f.Content), maxSize),
		}
	}
	if i := bytes.IndexByte(f.Content, 0); i >= 0 {
		return &InputError{Code: diag.LexNulByte, Span: pointSpan(f.ID, i), Msg: "NUL byte in source"}
	}
	if !utf8.Valid(f.Content) {
		off := 0
		for off < len(f.Content) {
			r, sz := utf8.DecodeRune(f.Content[off:])
			if r == utf8.RuneError && sz <= 1 {
				break
			}
			off += sz
		}
		return &InputError{Code: diag.LexInvalidUTF8, Span: pointSpan(f.ID, off), Msg: "invalid UTF-8 sequence"}
	}
	return nil
}

func pointSpan(file source.FileID, off int) source.Span {
	o, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return source.Span{File: file, Start: o, End: o + 1}
}
