package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hksl-lang/hksl/internal/ast"
	"github.com/hksl-lang/hksl/internal/lexer"
	"github.com/hksl-lang/hksl/internal/types"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	toks, err := lexer.New(source).CollectTokens()
	require.NoError(t, err)
	prog, err := New(toks, types.NewRegistry()).Parse()
	require.NoError(t, err)
	return prog
}

func parseErr(t *testing.T, source string) error {
	t.Helper()
	toks, err := lexer.New(source).CollectTokens()
	require.NoError(t, err)
	_, err = New(toks, types.NewRegistry()).Parse()
	return err
}

func TestParse_EmptyProgram(t *testing.T) {
	prog := parse(t, "")
	assert.Empty(t, prog.Statements)
}

func TestParse_FunctionWithDefaultVoidReturn(t *testing.T) {
	prog := parse(t, "fn main() { }")
	require.Len(t, prog.Statements, 1)
	fn, ok := prog.Statements[0].(*ast.Function)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name.Name)
	assert.Equal(t, "void", fn.ReturnType.Name)
	assert.Empty(t, fn.Args)
}

func TestParse_FunctionWithParamsAndReturnType(t *testing.T) {
	prog := parse(t, "fn f(x: float, y: float2) -> float { return x; }")
	fn := prog.Statements[0].(*ast.Function)
	require.Len(t, fn.Args, 2)
	assert.Equal(t, "x", fn.Args[0].Name.Name)
	assert.Equal(t, "float", fn.Args[0].Type.Name)
	assert.Equal(t, "y", fn.Args[1].Name.Name)
	assert.Equal(t, "float2", fn.Args[1].Type.Name)
	assert.Equal(t, "float", fn.ReturnType.Name)
}

func TestParse_LetWithAnnotationAndRhs(t *testing.T) {
	prog := parse(t, "fn main() { let a: float = 1.0 + 2.0; }")
	fn := prog.Statements[0].(*ast.Function)
	stmt := fn.Block.Statements[0].(*ast.ExprStatement)
	let := stmt.Expr.(*ast.LetExpr)
	assert.Equal(t, "a", let.VarDecl.Name.Name)
	require.NotNil(t, let.VarDecl.Type)
	assert.Equal(t, "float", let.VarDecl.Type.Name)
	bin := let.Rhs.(*ast.BinExpr)
	assert.Equal(t, ast.OpAdd, bin.Op)
}

func TestParse_NumberLiterals(t *testing.T) {
	prog := parse(t, "fn main() { 3.; 3; }")
	fn := prog.Statements[0].(*ast.Function)
	for _, stmt := range fn.Block.Statements {
		n := stmt.(*ast.ExprStatement).Expr.(*ast.NumberConstant)
		assert.Equal(t, 3.0, n.Value)
	}
}

func TestParse_LeadingDotIsAParseError(t *testing.T) {
	err := parseErr(t, "fn main() { .3; }")
	require.Error(t, err)
}

func TestParse_TrailingCommaRejectedInArgs(t *testing.T) {
	err := parseErr(t, "fn main() { f(1, 2,); }")
	require.Error(t, err)
}

func TestParse_TrailingCommaRejectedInParams(t *testing.T) {
	err := parseErr(t, "fn f(x: float,) { }")
	require.Error(t, err)
}

func TestParse_AssignmentOnlyToPlaces(t *testing.T) {
	err := parseErr(t, "fn main() { 1.0 = 2.0; }")
	require.Error(t, err)
}

func TestParse_AssignmentIsRightAssociative(t *testing.T) {
	prog := parse(t, "fn main() { a = b = 1.0; }")
	fn := prog.Statements[0].(*ast.Function)
	stmt := fn.Block.Statements[0].(*ast.ExprStatement)
	outer := stmt.Expr.(*ast.AssignmentExpr)
	assert.Equal(t, "a", outer.Lhs.(*ast.Variable).Name.Name)
	inner, ok := outer.Rhs.(*ast.AssignmentExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Lhs.(*ast.Variable).Name.Name)
}

func TestParse_PrecedenceAdditiveBeforeMultiplicative(t *testing.T) {
	prog := parse(t, "fn main() { 1.0 + 2.0 * 3.0; }")
	fn := prog.Statements[0].(*ast.Function)
	stmt := fn.Block.Statements[0].(*ast.ExprStatement)
	top := stmt.Expr.(*ast.BinExpr)
	assert.Equal(t, ast.OpAdd, top.Op)
	_, ok := top.Right.(*ast.BinExpr)
	require.True(t, ok, "right side should itself be the 2.0*3.0 BinExpr")
}

func TestParse_UnaryIsRightAssociative(t *testing.T) {
	prog := parse(t, "fn main() { --1.0; }")
	fn := prog.Statements[0].(*ast.Function)
	stmt := fn.Block.Statements[0].(*ast.ExprStatement)
	outer := stmt.Expr.(*ast.UnaryExpr)
	_, ok := outer.Expr.(*ast.UnaryExpr)
	require.True(t, ok)
}

func TestParse_CallExpr(t *testing.T) {
	prog := parse(t, "fn main() { f(1.0, 2.0); }")
	fn := prog.Statements[0].(*ast.Function)
	stmt := fn.Block.Statements[0].(*ast.ExprStatement)
	call := stmt.Expr.(*ast.CallExpr)
	assert.Equal(t, "f", call.FnName.Name)
	assert.Len(t, call.Args, 2)
}

func TestParse_ElseIfDesugarsIntoElseStatementWrappingIfStatement(t *testing.T) {
	prog := parse(t, "fn main() { if a { } else if b { } else { } }")
	fn := prog.Statements[0].(*ast.Function)
	ifStmt := fn.Block.Statements[0].(*ast.IfStatement)
	require.NotNil(t, ifStmt.Else)
	nested, ok := ifStmt.Else.Stmt.(*ast.IfStatement)
	require.True(t, ok, "else-if must wrap an IfStatement inside ElseStatement, not a new node kind")
	require.NotNil(t, nested.Else)
	_, ok = nested.Else.Stmt.(*ast.BlockStatement)
	require.True(t, ok)
}

func TestParse_IfRequiresBlockBody(t *testing.T) {
	// DESIGN.md Open Question 1: if/else bodies must be blocks.
	err := parseErr(t, "fn main() { if a return; }")
	require.Error(t, err)
}

func TestParse_MissingSemicolonIsFatal(t *testing.T) {
	err := parseErr(t, "fn main() { let a = 1.0 }")
	require.Error(t, err)
}

func TestParse_UnmatchedBracketIsFatal(t *testing.T) {
	err := parseErr(t, "fn main() { ")
	require.Error(t, err)
}

func TestParse_UnknownParamTypeNameIsFatal(t *testing.T) {
	// spec §4.2: `type := IDENT` is resolved immediately against the type
	// registry; an unknown name is a Parser-phase, fatal error (spec §7),
	// not a type-checker diagnostic.
	err := parseErr(t, "fn f(x: double) { }")
	require.Error(t, err)

	var parseError *Error
	require.ErrorAs(t, err, &parseError)
	assert.Contains(t, parseError.Msg, `unknown type "double"`)
}

func TestParse_UnknownReturnTypeNameIsFatal(t *testing.T) {
	err := parseErr(t, "fn f() -> double { }")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "double"`)
}

func TestParse_UnknownLetAnnotationTypeNameIsFatal(t *testing.T) {
	err := parseErr(t, "fn f() { let a: double = 1.0; }")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "double"`)
}

func TestParse_BareReturn(t *testing.T) {
	prog := parse(t, "fn f() -> float { return; }")
	fn := prog.Statements[0].(*ast.Function)
	ret := fn.Block.Statements[0].(*ast.ReturnStatement)
	assert.Nil(t, ret.Value)
}
