package rewrite

import (
	"errors"
	"fmt"

	"lintel/internal/source"
	"lintel/internal/syntax"
)

// ErrAmbiguous means the trivia around a removal cannot be redistributed
// without risking a lost comment or changed layout.
var ErrAmbiguous = errors.New("trivia reconciliation ambiguous")

// AmbiguityError tells which node was refused and why. It matches ErrAmbiguous.
type AmbiguityError struct {
	Kind   syntax.Kind
	Span   source.Span
	Reason string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("cannot remove %s at %d..%d: %s", e.Kind, e.Span.Start, e.Span.End, e.Reason)
}

func (e *AmbiguityError) Unwrap() error { return ErrAmbiguous }

func ambiguous(r syntax.Ref, reason string) error {
	return &AmbiguityError{Kind: r.Kind(), Span: r.Span(), Reason: reason}
}
