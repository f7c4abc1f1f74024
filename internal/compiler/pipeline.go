package compiler

import (
	"github.com/hksl-lang/hksl/internal/check"
	"github.com/hksl-lang/hksl/internal/lexer"
	"github.com/hksl-lang/hksl/internal/parser"
	"github.com/hksl-lang/hksl/internal/resolve"
)

// Run drains source through lexer -> parser -> resolver -> type checker,
// short-circuiting on a fatal lexer/parser error and skipping the type
// checker if resolution already failed (spec §7: "the driver invokes
// abort_if_failure() before running the type checker to avoid cascading
// confusion" — here that means simply not running phase T, since the
// library form never terminates the process).
//
// Returns the Context regardless of outcome; callers read Errors()/
// IsSuccess() and, on success, AST()/TypeRegistry() plus the symbol/type
// maps via the Context's own accessors.
func Run(source string) *Context {
	ctx := New()

	toks, err := lexer.New(source).CollectTokens()
	if err != nil {
		ctx.errors = append(ctx.errors, err.Error())
		ctx.isFailing = true
		return ctx
	}

	program, err := parser.New(toks, ctx.TypeRegistry()).Parse()
	if err != nil {
		ctx.errors = append(ctx.errors, err.Error())
		ctx.isFailing = true
		return ctx
	}
	ctx.SetAST(program)

	resolve.New(ctx).Resolve(program)
	if !ctx.IsSuccess() {
		return ctx
	}

	check.New(ctx, ctx.TypeRegistry()).Check(program)
	return ctx
}
