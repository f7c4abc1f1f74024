// Package errorsx formats the positioned diagnostics produced by every
// compilation phase (lexer, parser, resolver, checker) into the single
// "Span { line: <L>, col: <C>}: <message>" wire shape the CLI driver prints
// (spec §6.2).
package errorsx

import (
	"fmt"

	"github.com/hksl-lang/hksl/internal/token"
)

// Diagnostic is one positioned error, accumulated in discovery order by the
// shared compilation context and surfaced verbatim in a CompilationResult.
type Diagnostic struct {
	Span token.Span
	Msg  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Msg)
}

// New builds a Diagnostic at span with msg, formatted via fmt.Sprintf.
func New(span token.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Span: span, Msg: fmt.Sprintf(format, args...)}
}
