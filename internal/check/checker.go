// Package check implements HKSL's type inference and checker (spec §4.4).
//
// There is no teacher analogue for this phase — sam-decook-lox is
// dynamically typed and never assigns static types to expressions — so
// this package is newly written atop the same visit.Walker framework
// resolve.Resolver uses, and the types.Registry's pointer-identity types
// (grounded in y1yang0-falcon's src/ast/type.go).
package check

import (
	"fmt"

	"github.com/hksl-lang/hksl/internal/ast"
	"github.com/hksl-lang/hksl/internal/token"
	"github.com/hksl-lang/hksl/internal/types"
	"github.com/hksl-lang/hksl/internal/visit"
)

// Context is the subset of CompilationContext the checker needs.
type Context interface {
	Error(span token.Span, msg string)
	FunctionOf(call *ast.CallExpr) (*ast.Function, bool)
	DeclOf(ref *ast.Variable) (*ast.VarDecl, bool)
	SetType(e ast.Expr, t *types.Type)
	TypeOf(e ast.Expr) (*types.Type, bool)
}

// Checker assigns a concrete primitive type to every expression reachable
// from the program. It assumes resolution has already succeeded (spec
// §4.4: "Assumes resolution has succeeded").
type Checker struct {
	visit.Walker
	ctx      Context
	registry *types.Registry

	// declType tracks the (possibly still-being-inferred) type of each
	// VarDecl, keyed by node identity, independent of expr_to_type (a
	// VarDecl's own expression type is always void — see VisitExpr).
	declType map[*ast.VarDecl]*types.Type

	// returnType is the declared return type of the function currently
	// being checked, nil outside of a function body.
	returnType *types.Type
}

// New constructs a Checker over a shared registry and context.
func New(ctx Context, registry *types.Registry) *Checker {
	c := &Checker{ctx: ctx, registry: registry, declType: make(map[*ast.VarDecl]*types.Type)}
	c.Walker.Self = c
	return c
}

// Check walks the whole program.
func (c *Checker) Check(p *ast.Program) {
	visit.WalkProgram(c, p)
}

// --- dispatch -------------------------------------------------------------

func (c *Checker) VisitStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.Function:
		c.checkFunction(n)
	case *ast.ReturnStatement:
		c.checkReturn(n)
	default:
		c.Walker.VisitStatement(s)
	}
}

func (c *Checker) VisitExpr(e ast.Expr) {
	// Children must be typed before the parent, so walk first.
	c.Walker.VisitExpr(e)

	switch n := e.(type) {
	case *ast.NumberConstant:
		c.ctx.SetType(e, c.registry.ByID(types.Float))

	case *ast.Variable:
		c.checkVariable(n)

	case *ast.VarDecl:
		c.ctx.SetType(e, c.registry.Void())

	case *ast.UnaryExpr:
		c.checkUnary(n)

	case *ast.BinExpr:
		c.checkBinary(n)

	case *ast.CallExpr:
		c.checkCall(n)

	case *ast.AssignmentExpr:
		c.checkAssignment(n)

	case *ast.LetExpr:
		c.checkLet(n)
	}
}

// --- functions --------------------------------------------------------

func (c *Checker) checkFunction(fn *ast.Function) {
	retType := c.mustLookupType(fn.ReturnType.Name)

	for _, param := range fn.Args {
		c.checkParamType(param)
		c.VisitExpr(param) // records the void expr_to_type entry (spec invariant: every reachable Expr is typed)
	}

	enclosingReturn := c.returnType
	c.returnType = retType
	c.VisitStatement(fn.Block)
	c.returnType = enclosingReturn
}

func (c *Checker) checkParamType(vd *ast.VarDecl) {
	if vd.Type == nil {
		// unreachable: the parser requires parameter types
		return
	}
	c.declType[vd] = c.mustLookupType(vd.Type.Name)
}

// mustLookupType resolves a type name already validated by the parser's
// typeRef (spec §4.2: `type := IDENT`, resolved immediately against the
// registry). A miss here means the parser and checker have drifted out of
// sync, not a user-source error, so it panics rather than reporting a
// diagnostic.
func (c *Checker) mustLookupType(name string) *types.Type {
	t, ok := c.registry.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("check: unresolved type %q reached the checker", name))
	}
	return t
}

func (c *Checker) checkReturn(rs *ast.ReturnStatement) {
	var actual *types.Type
	if rs.Value != nil {
		c.VisitExpr(rs.Value)
		actual, _ = c.ctx.TypeOf(rs.Value)
	} else {
		actual = c.registry.Void()
	}

	if actual == nil || c.returnType == nil {
		return
	}
	if actual != c.returnType {
		c.ctx.Error(rs.Span(), fmt.Sprintf("incorrect return type: expected %s, got %s", c.returnType, actual))
	}
}

// --- expressions ----------------------------------------------------------

func (c *Checker) checkVariable(v *ast.Variable) {
	decl, ok := c.ctx.DeclOf(v)
	if !ok {
		return // unresolved reference; resolver already reported this
	}
	t, ok := c.declType[decl]
	if !ok {
		return // declaration's own type could not be determined
	}
	c.ctx.SetType(v, t)
}

func (c *Checker) checkUnary(u *ast.UnaryExpr) {
	operand, ok := c.ctx.TypeOf(u.Expr)
	if !ok {
		return
	}
	if operand == c.registry.Void() {
		c.ctx.Error(u.Span(), "Cannot negate type void")
		return
	}
	c.ctx.SetType(u, operand)
}

func (c *Checker) checkBinary(b *ast.BinExpr) {
	left, lok := c.ctx.TypeOf(b.Left)
	right, rok := c.ctx.TypeOf(b.Right)
	if !lok || !rok {
		return
	}
	if left != right {
		c.ctx.Error(b.OpToken, fmt.Sprintf("type mismatch: %s vs %s", left, right))
		return
	}
	c.ctx.SetType(b, left)
}

func (c *Checker) checkCall(call *ast.CallExpr) {
	fn, ok := c.ctx.FunctionOf(call)
	if !ok {
		return // unresolved call; resolver already reported this
	}

	if len(fn.Args) != len(call.Args) {
		c.ctx.Error(call.Span(), fmt.Sprintf(
			"wrong number of arguments to %q: expected %d, got %d", fn.Name.Name, len(fn.Args), len(call.Args)))
	} else {
		for i, arg := range call.Args {
			argType, ok := c.ctx.TypeOf(arg)
			if !ok {
				continue
			}
			paramType, ok := c.declType[fn.Args[i]]
			if !ok {
				continue
			}
			if argType != paramType {
				c.ctx.Error(call.Span(), fmt.Sprintf(
					"argument %d to %q: expected %s, got %s", i, fn.Name.Name, paramType, argType))
			}
		}
	}

	c.ctx.SetType(call, c.mustLookupType(fn.ReturnType.Name))
}

func (c *Checker) checkAssignment(a *ast.AssignmentExpr) {
	lhs, lok := c.ctx.TypeOf(a.Lhs)
	rhs, rok := c.ctx.TypeOf(a.Rhs)
	if !lok || !rok {
		return
	}
	if lhs != rhs {
		c.ctx.Error(a.EqToken, fmt.Sprintf("type mismatch: %s vs %s", lhs, rhs))
		return
	}
	c.ctx.SetType(a, lhs)
}

// checkLet resolves a LetExpr's VarDecl type from its explicit annotation
// and/or its rhs (spec §4.4): both present requires equality; only rhs
// present infers the declared type from it; only the annotation present
// keeps it; neither present is an error.
func (c *Checker) checkLet(le *ast.LetExpr) {
	vd := le.VarDecl
	c.ctx.SetType(le, c.registry.Void())

	var annotated *types.Type
	if vd.Type != nil {
		annotated = c.mustLookupType(vd.Type.Name)
	}

	rhsPresent := le.Rhs != nil
	var rhsType *types.Type
	var rhsOk bool
	if rhsPresent {
		rhsType, rhsOk = c.ctx.TypeOf(le.Rhs)
	}

	switch {
	case annotated != nil && rhsPresent:
		if !rhsOk {
			// rhs type unknown due to an earlier error; keep the annotation
			// without cascading a second diagnostic (spec §4.4).
			c.declType[vd] = annotated
			return
		}
		if annotated != rhsType {
			c.ctx.Error(le.Span(), fmt.Sprintf("type mismatch: declared %s, got %s", annotated, rhsType))
			return
		}
		c.declType[vd] = annotated
	case rhsPresent:
		if !rhsOk {
			return
		}
		c.declType[vd] = rhsType
	case annotated != nil:
		c.declType[vd] = annotated
	default:
		c.ctx.Error(le.Span(), fmt.Sprintf("couldn't infer type for variable %q", vd.Name.Name))
	}
}
