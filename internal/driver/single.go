package driver

import (
	"errors"

	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/token"
)

// TokenizeResult is the token stream of one file.
type TokenizeResult struct {
	FileSet     *source.FileSet
	File        *source.File
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic
}

// ParseResult is the native tree of one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	*parser.Result
}

func loadOne(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSetWithBase(baseDirFor([]string{path}))
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, fs.Get(id), nil
}

// inputDiagnostic turns a refused input into a blocker diagnostic.
func inputDiagnostic(f *source.File, err error) (diag.Diagnostic, bool) {
	var ie *lexer.InputError
	if !errors.As(err, &ie) {
		return diag.Diagnostic{}, false
	}
	return diag.New(diag.SevBlocker, ie.Code, ie.Span, ie.Msg).WithPath(f.Path), true
}

// Tokenize lexes a single file. Input the lexer refuses is reported as a
// diagnostic with no tokens.
func Tokenize(path string) (*TokenizeResult, error) {
	fs, f, err := loadOne(path)
	if err != nil {
		return nil, err
	}
	res := &TokenizeResult{FileSet: fs, File: f}
	if err := lexer.Validate(f, 0); err != nil {
		d, ok := inputDiagnostic(f, err)
		if !ok {
			return nil, err
		}
		res.Diagnostics = append(res.Diagnostics, d)
		return res, nil
	}
	bag := diag.NewBag(0)
	res.Tokens = lexer.Tokenize(f, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	for _, d := range bag.Items() {
		res.Diagnostics = append(res.Diagnostics, d.WithPath(f.Path))
	}
	return res, nil
}

// ParseFile parses a single file with the native parser. A refused input
// yields a result without a tree and the input diagnostic.
func ParseFile(path string) (*ParseResult, error) {
	fs, f, err := loadOne(path)
	if err != nil {
		return nil, err
	}
	res, err := parser.Parse(f, parser.Options{})
	if err != nil {
		d, ok := inputDiagnostic(f, err)
		if !ok {
			return nil, err
		}
		return &ParseResult{FileSet: fs, File: f, Result: &parser.Result{Diagnostics: []diag.Diagnostic{d}}}, nil
	}
	return &ParseResult{FileSet: fs, File: f, Result: res}, nil
}

// LoadFile reads one file into a fresh set; used by the tree-sitter
// frontend of the parse command.
func LoadFile(path string) (*source.FileSet, *source.File, error) {
	return loadOne(path)
}
