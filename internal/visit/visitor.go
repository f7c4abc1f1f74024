// Package visit provides the generic AST traversal shared by the resolver
// and the type checker.
//
// Grounded in gaarutyunov-guix's pkg/ast/visitor.go + base_visitor.go: a
// Visitor interface and a default walker that a concrete visitor embeds and
// overrides only the nodes it cares about. The guix version dispatches
// through a virtual Accept method on every node; per the spec's REDESIGN
// FLAGS (§9, "Visitor pattern... dispatch via match on the discriminant,
// not virtual calls") this version dispatches with a type switch on the
// node's concrete type instead, and a concrete visitor continues descent by
// calling back into the (embedded) Walker, rather than a node calling back
// into the visitor.
package visit

import "github.com/hksl-lang/hksl/internal/ast"

// Visitor is implemented by anything that walks the AST. VisitExpr and
// VisitStatement are the two entry points; a visitor overriding one node
// kind calls Walker.WalkExprChildren (or WalkStatementChildren) to continue
// the default descent into that node's children.
type Visitor interface {
	VisitExpr(e ast.Expr)
	VisitStatement(s ast.Statement)
}

// Walker performs the default depth-first, left-to-right descent, always
// dispatching back through Self so overrides on the concrete visitor are
// honored for every child node, not just the root call.
type Walker struct {
	Self Visitor
}

func (w *Walker) self() Visitor {
	if w.Self != nil {
		return w.Self
	}
	return w
}

// VisitExpr is Walker's own default VisitExpr: descend into children and do
// nothing at the node itself. Embedding visitors that want to act on a kind
// override VisitExpr and fall back to WalkExprChildren for the rest.
func (w *Walker) VisitExpr(e ast.Expr) {
	w.WalkExprChildren(e)
}

func (w *Walker) VisitStatement(s ast.Statement) {
	w.WalkStatementChildren(s)
}

// WalkExprChildren visits e's children (not e itself) through Self, so an
// overriding visitor's hooks still fire for nested expressions.
func (w *Walker) WalkExprChildren(e ast.Expr) {
	self := w.self()
	switch n := e.(type) {
	case *ast.NumberConstant, *ast.Variable:
		// leaves

	case *ast.VarDecl:
		// leaf: the (optional) type annotation is not itself an Expr/Statement

	case *ast.UnaryExpr:
		self.VisitExpr(n.Expr)

	case *ast.BinExpr:
		self.VisitExpr(n.Left)
		self.VisitExpr(n.Right)

	case *ast.CallExpr:
		for _, arg := range n.Args {
			self.VisitExpr(arg)
		}

	case *ast.AssignmentExpr:
		self.VisitExpr(n.Lhs)
		self.VisitExpr(n.Rhs)

	case *ast.LetExpr:
		self.VisitExpr(n.VarDecl)
		if n.Rhs != nil {
			self.VisitExpr(n.Rhs)
		}
	}
}

// WalkStatementChildren visits s's children through Self.
func (w *Walker) WalkStatementChildren(s ast.Statement) {
	self := w.self()
	switch n := s.(type) {
	case *ast.ExprStatement:
		self.VisitExpr(n.Expr)

	case *ast.BlockStatement:
		for _, stmt := range n.Statements {
			self.VisitStatement(stmt)
		}

	case *ast.IfStatement:
		self.VisitExpr(n.Condition)
		self.VisitStatement(n.Then)
		if n.Else != nil {
			self.VisitStatement(n.Else)
		}

	case *ast.ElseStatement:
		self.VisitStatement(n.Stmt)

	case *ast.Function:
		for _, param := range n.Args {
			self.VisitExpr(param)
		}
		self.VisitStatement(n.Block)

	case *ast.ReturnStatement:
		if n.Value != nil {
			self.VisitExpr(n.Value)
		}
	}
}

// WalkProgram visits every top-level statement through v.
func WalkProgram(v Visitor, p *ast.Program) {
	for _, stmt := range p.Statements {
		v.VisitStatement(stmt)
	}
}
