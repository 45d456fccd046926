package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/source"
)

// DefaultMaxFileSize bounds the input accepted by Validate.
const DefaultMaxFileSize = 8 << 20

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.Syntax(lx.opts.Reporter, code, sp, msg)
}
