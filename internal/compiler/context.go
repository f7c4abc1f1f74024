// Package compiler implements HKSL's CompilationContext (spec §4.5): the
// mutable state shared by the resolver and type checker — the AST, the two
// symbol maps, the type map, the type registry, and the ordered error list
// with its sticky failure flag.
//
// Grounded in the teacher's Interpreter struct (codecrafters/cmd/
// interpreter.go), which threads scanner -> parser -> resolver -> evaluator
// through one struct; generalized here to hold symbol/type maps instead of
// a live Environment, since this front end stops at type-checking.
package compiler

import (
	"fmt"
	"os"

	"github.com/hksl-lang/hksl/internal/ast"
	"github.com/hksl-lang/hksl/internal/errorsx"
	"github.com/hksl-lang/hksl/internal/token"
	"github.com/hksl-lang/hksl/internal/types"
)

// osExit is a var so tests can observe AbortIfFailure without killing the
// test binary.
var osExit = os.Exit

// Context owns everything the resolver and type checker read and write.
type Context struct {
	program *ast.Program

	registry *types.Registry

	refToDecl  map[*ast.Variable]*ast.VarDecl
	callToFn   map[*ast.CallExpr]*ast.Function
	exprToType map[ast.Expr]*types.Type

	errors    []string
	isFailing bool
}

// New constructs a Context with a freshly populated type registry (spec
// §4.5: the registry is populated once, at context construction).
func New() *Context {
	return &Context{
		registry:   types.NewRegistry(),
		refToDecl:  make(map[*ast.Variable]*ast.VarDecl),
		callToFn:   make(map[*ast.CallExpr]*ast.Function),
		exprToType: make(map[ast.Expr]*types.Type),
	}
}

// SetAST may be called exactly once; subsequent calls replace the reference
// the maps already key off of, so callers should not call it twice for the
// same Context.
func (c *Context) SetAST(p *ast.Program) { c.program = p }

// AST borrows the compiled program.
func (c *Context) AST() *ast.Program { return c.program }

// TypeRegistry borrows the primitive type registry.
func (c *Context) TypeRegistry() *types.Registry { return c.registry }

// Error appends a formatted "Span { line: <L>, col: <C>}: <msg>" diagnostic
// and sets the sticky failure flag (spec §4.5, §6.2).
func (c *Context) Error(span token.Span, msg string) {
	c.errors = append(c.errors, errorsx.New(span, "%s", msg).String())
	c.isFailing = true
}

// Errors returns the accumulated diagnostics in discovery order.
func (c *Context) Errors() []string { return c.errors }

// IsSuccess reports whether compilation has accumulated no errors so far.
func (c *Context) IsSuccess() bool { return !c.isFailing }

// AbortIfFailure implements the driver-level semantics described in spec
// §4.5: print accumulated errors and terminate the process. Nothing in this
// module calls it: the CLI driver (cmd/hkslc) prints the errors returned by
// hksl.Compile and exits on its own, and the library form (package hksl)
// returns a CompilationResult instead.
func (c *Context) AbortIfFailure() {
	if c.IsSuccess() {
		return
	}
	for _, e := range c.errors {
		fmt.Println(e)
	}
	osExit(1)
}

// --- resolve.Context -----------------------------------------------------

func (c *Context) BindVariable(ref *ast.Variable, decl *ast.VarDecl) {
	c.refToDecl[ref] = decl
}

func (c *Context) BindCall(call *ast.CallExpr, fn *ast.Function) {
	c.callToFn[call] = fn
}

// --- check.Context ---------------------------------------------------------

func (c *Context) FunctionOf(call *ast.CallExpr) (*ast.Function, bool) {
	fn, ok := c.callToFn[call]
	return fn, ok
}

func (c *Context) DeclOf(ref *ast.Variable) (*ast.VarDecl, bool) {
	decl, ok := c.refToDecl[ref]
	return decl, ok
}

func (c *Context) SetType(e ast.Expr, t *types.Type) {
	c.exprToType[e] = t
}

func (c *Context) TypeOf(e ast.Expr) (*types.Type, bool) {
	t, ok := c.exprToType[e]
	return t, ok
}
