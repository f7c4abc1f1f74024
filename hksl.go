// Package hksl is the embedding API for the HKSL front end (spec §6.4): a
// host provides source text and a filename, and gets back a
// CompilationResult holding either the compiled program or a list of
// positioned diagnostics.
package hksl

import (
	"github.com/hksl-lang/hksl/internal/ast"
	"github.com/hksl-lang/hksl/internal/compiler"
)

// CompilationResult is what a host gets back from Compile. Success is the
// empty Errors slice; Program is nil whenever Errors is non-empty.
type CompilationResult struct {
	Program *ast.Program
	Errors  []string
}

// Compile runs the full L -> P -> R -> T pipeline over source and returns
// either the elaborated AST or the diagnostics produced along the way.
//
// filename is accepted for forward compatibility with filename-qualified
// diagnostics (spec §6.2 only specifies line:col, so it is otherwise inert
// today — see SPEC_FULL.md §6.4).
func Compile(source, filename string) CompilationResult {
	_ = filename

	ctx := compiler.Run(source)
	if !ctx.IsSuccess() {
		return CompilationResult{Errors: ctx.Errors()}
	}
	return CompilationResult{Program: ctx.AST(), Errors: ctx.Errors()}
}
