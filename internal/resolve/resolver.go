// Package resolve implements HKSL's name resolver (spec §4.3): it binds
// variable and call references to their declarations, and enforces
// no-shadowing, use-before-declare, and definite initialization.
//
// Grounded in sam-decook-lox's codecrafters/cmd/resolver.go: the same
// scope-stack shape (declare/define, a stack of maps) generalized from
// "resolve a local slot distance for closures" to "bind ref->decl and
// call->fn, check definite init" — and from the teacher's os.Exit-on-error
// style to accumulating into the shared CompilationContext (spec §4.5,
// §7), using the visit package's discriminant-dispatch Walker instead of
// the teacher's virtual resolve() methods.
package resolve

import (
	"fmt"

	"github.com/hksl-lang/hksl/internal/ast"
	"github.com/hksl-lang/hksl/internal/token"
	"github.com/hksl-lang/hksl/internal/visit"
)

// Context is the subset of CompilationContext the resolver needs: a place
// to record ref->decl and call->fn bindings, and a place to report errors.
type Context interface {
	Error(span token.Span, msg string)
	BindVariable(ref *ast.Variable, decl *ast.VarDecl)
	BindCall(call *ast.CallExpr, fn *ast.Function)
}

type scopeKind int

const (
	scopeGlobal scopeKind = iota
	scopeFunction
	scopeBlock
)

type varData struct {
	decl *ast.VarDecl
}

type scope struct {
	kind      scopeKind
	variables map[string]*varData
	// order records variable names in declaration order, so
	// checkUninitialized reports diagnostics deterministically instead of
	// following Go's randomized map iteration (spec §8).
	order     []string
	functions map[string]*ast.Function
}

func newScope(kind scopeKind) *scope {
	return &scope{
		kind:      kind,
		variables: make(map[string]*varData),
		functions: make(map[string]*ast.Function),
	}
}

// Resolver walks the AST maintaining a stack of scopes, exactly as
// described in spec §4.3.
type Resolver struct {
	visit.Walker
	ctx    Context
	scopes []*scope
}

// New constructs a Resolver with the Global scope already pushed.
func New(ctx Context) *Resolver {
	r := &Resolver{ctx: ctx}
	r.Walker.Self = r
	r.scopes = []*scope{newScope(scopeGlobal)}
	return r
}

// Resolve walks the whole program, then runs the uninitialized-variable
// check against the global scope (which stays at the bottom of the stack).
func (r *Resolver) Resolve(p *ast.Program) {
	visit.WalkProgram(r, p)
	r.checkUninitialized(r.scopes[0])
}

func (r *Resolver) top() *scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) push(kind scopeKind) *scope {
	s := newScope(kind)
	r.scopes = append(r.scopes, s)
	return s
}

func (r *Resolver) pop() *scope {
	s := r.top()
	r.scopes = r.scopes[:len(r.scopes)-1]
	return s
}

// --- dispatch -------------------------------------------------------

func (r *Resolver) VisitStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.Function:
		r.resolveFunction(n)
	case *ast.BlockStatement:
		r.resolveBlock(n)
	default:
		r.Walker.VisitStatement(s)
	}
}

func (r *Resolver) VisitExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Variable:
		r.resolveVariable(n)
	case *ast.CallExpr:
		r.resolveCall(n)
	case *ast.LetExpr:
		r.resolveLet(n)
	case *ast.AssignmentExpr:
		r.Walker.VisitExpr(e)
		r.resolveAssignmentTarget(n)
	default:
		r.Walker.VisitExpr(e)
	}
}

// --- functions --------------------------------------------------------

func (r *Resolver) resolveFunction(fn *ast.Function) {
	for _, s := range r.scopes {
		if s.kind == scopeFunction {
			r.error(fn.Span(), fmt.Sprintf("nested function declarations are not allowed: %q", fn.Name.Name))
			return
		}
	}

	enclosing := r.top()

	if _, exists := enclosing.functions[fn.Name.Name]; exists {
		r.error(fn.Span(), fmt.Sprintf("redefinition of function %q", fn.Name.Name))
	}
	enclosing.functions[fn.Name.Name] = fn

	r.push(scopeFunction)
	for _, param := range fn.Args {
		r.declareVarNamed(param, true)
	}
	r.resolveBlockBody(fn.Block)
	s := r.pop()
	r.checkUninitialized(s)
}

// --- blocks -------------------------------------------------------------

func (r *Resolver) resolveBlock(b *ast.BlockStatement) {
	r.push(scopeBlock)
	r.resolveBlockBody(b)
	s := r.pop()
	r.checkUninitialized(s)
}

// resolveBlockBody walks a block's statements without pushing/popping a
// scope itself — used both for a bare BlockStatement and for a function's
// body block sharing the function's own scope.
func (r *Resolver) resolveBlockBody(b *ast.BlockStatement) {
	for _, stmt := range b.Statements {
		r.VisitStatement(stmt)
	}
}

// --- declarations -------------------------------------------------------

func (r *Resolver) declareVarNamed(vd *ast.VarDecl, initialized bool) {
	scope := r.top()
	if r.findVarDecl(vd.Name.Name) != nil {
		r.error(vd.Span(), fmt.Sprintf("redefinition of variable %q", vd.Name.Name))
	}
	if _, exists := scope.variables[vd.Name.Name]; !exists {
		scope.order = append(scope.order, vd.Name.Name)
	}
	vd.Initialized = initialized
	scope.variables[vd.Name.Name] = &varData{decl: vd}
}

func (r *Resolver) resolveLet(le *ast.LetExpr) {
	r.declareVarNamed(le.VarDecl, le.Rhs != nil)
	if le.Rhs != nil {
		r.VisitExpr(le.Rhs)
	}
}

// --- references ----------------------------------------------------------

// findVarDecl searches scopes top-down, stopping after the first Function
// scope (spec §4.3: lexical scoping within one function, no closures over
// enclosing functions, globals excluded from variable lookup).
func (r *Resolver) findVarDecl(name string) *ast.VarDecl {
	for i := len(r.scopes) - 1; i >= 1; i-- {
		s := r.scopes[i]
		if vd, ok := s.variables[name]; ok {
			return vd.decl
		}
		if s.kind == scopeFunction {
			break
		}
	}
	return nil
}

// findFunction searches all scopes (spec §4.3: functions are visible from
// their enclosing scope inward).
func (r *Resolver) findFunction(name string) *ast.Function {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if fn, ok := r.scopes[i].functions[name]; ok {
			return fn
		}
	}
	return nil
}

func (r *Resolver) resolveVariable(v *ast.Variable) {
	decl := r.findVarDecl(v.Name.Name)
	if decl == nil {
		r.error(v.Span(), fmt.Sprintf("use of undeclared variable %q", v.Name.Name))
		return
	}
	r.ctx.BindVariable(v, decl)
}

func (r *Resolver) resolveCall(c *ast.CallExpr) {
	fn := r.findFunction(c.FnName.Name)
	if fn == nil {
		r.error(c.Span(), fmt.Sprintf("use of undeclared function %q", c.FnName.Name))
		return
	}

	for _, arg := range c.Args {
		r.VisitExpr(arg)
	}
	r.ctx.BindCall(c, fn)
}

// resolveAssignmentTarget marks a Variable lhs initialized once its
// AssignmentExpr has had both sides walked (spec §4.3 rule 5c).
func (r *Resolver) resolveAssignmentTarget(a *ast.AssignmentExpr) {
	if v, ok := a.Lhs.(*ast.Variable); ok {
		if decl := r.findVarDecl(v.Name.Name); decl != nil {
			decl.Initialized = true
		}
	}
}

// --- definite initialization --------------------------------------------

func (r *Resolver) checkUninitialized(s *scope) {
	for _, name := range s.order {
		vd := s.variables[name]
		if !vd.decl.Initialized {
			r.error(vd.decl.Span(), fmt.Sprintf("variable %q has not been initialized", name))
		}
	}
}

func (r *Resolver) error(span token.Span, msg string) {
	r.ctx.Error(span, msg)
}
