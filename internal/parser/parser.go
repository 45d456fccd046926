package parser

import (
	"errors"
	"fmt"
	"slices"

	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

type Options struct {
	MaxErrors   uint // 0 - без лимита
	MaxFileSize int  // 0 - lexer.DefaultMaxFileSize
	// Reporter receives every lexer and parser diagnostic in addition to Result.Diagnostics.
	Reporter diag.Reporter
}

// Result - дерево и диагностики одного файла.
type Result struct {
	Tree        *syntax.Tree
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether recovery happened anywhere.
func (r *Result) HasErrors() bool { return len(r.Diagnostics) > 0 || r.Tree.ContainsError() }

// ParseError aborts parsing of a whole file.
type ParseError struct {
	Path string
	Err  *lexer.InputError
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Parser - состояние парсера на один файл
type Parser struct {
	file   *source.File
	toks   []token.Token
	pos    int
	opts   Options
	bag    *diag.Bag
	errors uint
}

// Parse builds a full-fidelity tree for f. Input that cannot be tokenized at
// all (invalid UTF-8, NUL bytes, oversized files) yields *ParseError; any
// other problem is recovered from and reported in Result.Diagnostics.
func Parse(f *source.File, opts Options) (*Result, error) {
	if err := lexer.Validate(f, opts.MaxFileSize); err != nil {
		var ie *lexer.InputError
		if errors.As(err, &ie) {
			return nil, &ParseError{Path: f.Path, Err: ie}
		}
		return nil, err
	}
	p := &Parser{file: f, opts: opts, bag: diag.NewBag(0)}
	p.toks = lexer.Tokenize(f, lexer.Options{Reporter: p})
	root := p.parseCompilationUnit()

	p.bag.Sort()
	items := slices.Clone(p.bag.Items())
	for i := range items {
		items[i].Path = f.Path
	}
	return &Result{
		Tree:        syntax.NewTree(root, f.ID, f.Path),
		Diagnostics: items,
	}, nil
}

// Report makes the parser the lexer's reporter so both phases share limits.
func (p *Parser) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors {
		return
	}
	p.errors++
	p.bag.Add(diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, primary, msg, notes)
	}
}

// parseCompilationUnit - верхний уровень: using'и, затем объявления до EOF.
func (p *Parser) parseCompilationUnit() *syntax.Node {
	usings := p.parseUsings()
	members := p.parseMembers(token.EOF, "")
	eof := syntax.NewToken(p.toks[len(p.toks)-1])
	return syntax.NewNode(syntax.CompilationUnit, usings, members, eof)
}
