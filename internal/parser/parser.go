// Package parser implements HKSL's recursive-descent parser.
//
// Grounded in sam-decook-lox's codecrafters/cmd/parser.go: the same
// match/check/advance/previous helper shape (with expect in place of the
// teacher's consume) and one method per
// grammar rule, descending through the precedence levels the grammar
// names. Unlike the teacher (which calls os.Exit on a parse error), parse
// errors here unwind via panic/recover to a single Error return, so the
// library form never terminates the process (spec §7).
package parser

import (
	"fmt"

	"github.com/hksl-lang/hksl/internal/ast"
	"github.com/hksl-lang/hksl/internal/errorsx"
	"github.com/hksl-lang/hksl/internal/token"
	"github.com/hksl-lang/hksl/internal/types"
)

// Error is a fatal parse error (spec §7: unexpected token, unmatched
// bracket, missing semicolon, non-place assignment target, unknown type
// name).
type Error struct {
	Span token.Span
	Msg  string
}

func (e *Error) Error() string {
	return errorsx.New(e.Span, "%s", e.Msg).String()
}

type parseAbort struct{ err *Error }

type Parser struct {
	tokens   []token.Token
	idx      int
	registry *types.Registry
}

// New constructs a Parser over a token stream (as produced by
// lexer.CollectTokens) and the type registry used to validate every type
// name the grammar accepts (spec §4.2: `type := IDENT`, resolved
// immediately against the registry).
func New(tokens []token.Token, registry *types.Registry) *Parser {
	return &Parser{tokens: tokens, registry: registry}
}

// Parse runs `program := statement*` to completion, or returns the first
// fatal parse error encountered.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(parseAbort)
			if !ok {
				panic(r)
			}
			err = abort.err
		}
	}()

	program := &ast.Program{}
	for !p.atEnd() {
		program.Statements = append(program.Statements, p.statement())
	}
	return program, nil
}

// --- statement := function | block | return_stmt | if_stmt | expr_stmt ---

func (p *Parser) statement() ast.Statement {
	switch {
	case p.check(token.KeywordFn):
		return p.function()
	case p.check(token.LeftCurly):
		return p.block()
	case p.check(token.KeywordReturn):
		return p.returnStmt()
	case p.check(token.KeywordIf):
		return p.ifStmt()
	default:
		return p.exprStmt()
	}
}

// function := "fn" IDENT "(" params? ")" ("->" type)? block
func (p *Parser) function() *ast.Function {
	p.advance() // "fn"
	name := p.expectIdentifier("expected a function name after 'fn'")

	p.expect(token.LeftRound, "expected '(' after function name")
	var params []*ast.VarDecl
	if !p.check(token.RightRound) {
		params = append(params, p.param())
		for p.match(token.Comma) {
			params = append(params, p.param())
		}
	}
	p.expect(token.RightRound, "expected ')' after parameters")

	returnType := ast.TypeRef{Name: "void"}
	if p.match(token.RightArrow) {
		returnType = p.typeRef()
	}

	block := p.block()

	return &ast.Function{Name: name, Args: params, Block: block, ReturnType: returnType}
}

// param := IDENT ":" type — parameter types are mandatory.
func (p *Parser) param() *ast.VarDecl {
	name := p.expectIdentifier("expected a parameter name")
	p.expect(token.Colon, "expected ':' after parameter name")
	typ := p.typeRef()
	return &ast.VarDecl{Name: name, Type: &typ, Initialized: true}
}

// typeRef parses a type name and fails fatally if it is not registered: an
// unknown type name is a Parser-phase error, not a type-checker diagnostic
// (spec §7).
func (p *Parser) typeRef() ast.TypeRef {
	tok := p.current()
	name := p.expectIdentifier("expected a type name")
	if _, ok := p.registry.Lookup(name.Name); !ok {
		p.fail(tok.Span, fmt.Sprintf("unknown type %q", name.Name))
	}
	return ast.TypeRef{Name: name.Name, At: tok.Span}
}

// block := "{" statement* "}"
func (p *Parser) block() *ast.BlockStatement {
	at := p.current().Span
	p.expect(token.LeftCurly, "expected '{' to start a block")

	var stmts []ast.Statement
	for !p.check(token.RightCurly) && !p.atEnd() {
		stmts = append(stmts, p.statement())
	}
	p.expect(token.RightCurly, "expected '}' to end a block")

	return &ast.BlockStatement{Statements: stmts, At: at}
}

// return_stmt := "return" (expr)? ";"
func (p *Parser) returnStmt() *ast.ReturnStatement {
	at := p.current().Span
	p.advance() // "return"

	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expr()
	}
	p.expect(token.Semicolon, "expected ';' after return statement")

	return &ast.ReturnStatement{Value: value, RetSpan: at}
}

// if_stmt := "if" expr block (else_stmt)?
func (p *Parser) ifStmt() *ast.IfStatement {
	at := p.current().Span
	p.advance() // "if"

	condition := p.expr()
	then := p.block()

	var elseStmt *ast.ElseStatement
	if p.check(token.KeywordElse) {
		elseStmt = p.elseStmt()
	}

	return &ast.IfStatement{Condition: condition, Then: then, Else: elseStmt, At: at}
}

// else_stmt := "else" (if_stmt | block)
func (p *Parser) elseStmt() *ast.ElseStatement {
	at := p.current().Span
	p.advance() // "else"

	var inner ast.Statement
	if p.check(token.KeywordIf) {
		inner = p.ifStmt()
	} else {
		inner = p.block()
	}

	return &ast.ElseStatement{Stmt: inner, At: at}
}

// expr_stmt := expr ";"
func (p *Parser) exprStmt() *ast.ExprStatement {
	e := p.expr()
	p.expect(token.Semicolon, "expected ';' after expression")
	return &ast.ExprStatement{Expr: e}
}

// --- expression grammar, lowest to highest precedence -------------------

// expr := let
func (p *Parser) expr() ast.Expr {
	return p.let()
}

// let := "let" var_decl ("=" expr)? | assignment
func (p *Parser) let() ast.Expr {
	if !p.match(token.KeywordLet) {
		return p.assignment()
	}
	at := p.previous().Span

	decl := p.varDecl()

	var rhs ast.Expr
	if p.match(token.Equals) {
		rhs = p.expr()
	}

	return &ast.LetExpr{VarDecl: decl, Rhs: rhs, At: at}
}

// var_decl := IDENT (":" type)?
func (p *Parser) varDecl() *ast.VarDecl {
	name := p.expectIdentifier("expected a variable name after 'let'")

	var typ *ast.TypeRef
	if p.match(token.Colon) {
		t := p.typeRef()
		typ = &t
	}

	return &ast.VarDecl{Name: name, Type: typ}
}

// assignment := equality ("=" assignment)?   (right-associative; only if lhs is a place)
func (p *Parser) assignment() ast.Expr {
	lhs := p.equality()

	if p.check(token.Equals) {
		eqSpan := p.current().Span
		p.advance()

		if !ast.IsPlace(lhs) {
			p.fail(eqSpan, "invalid assignment target")
		}

		rhs := p.assignment()
		return &ast.AssignmentExpr{Lhs: lhs, Rhs: rhs, EqToken: eqSpan}
	}

	return lhs
}

// equality := term ("==" term)?   (non-associative)
func (p *Parser) equality() ast.Expr {
	left := p.term()

	if p.check(token.DoubleEquals) {
		opSpan := p.current().Span
		p.advance()
		right := p.term()
		return &ast.BinExpr{Op: ast.OpEquals, OpToken: opSpan, Left: left, Right: right}
	}

	return left
}

// term := factor (("+"|"-") factor)*   (left-associative)
func (p *Parser) term() ast.Expr {
	left := p.factor()

	for p.check(token.Plus) || p.check(token.Minus) {
		op := p.current()
		binOp := ast.OpAdd
		if op.Kind == token.Minus {
			binOp = ast.OpSubtract
		}
		p.advance()
		right := p.factor()
		left = &ast.BinExpr{Op: binOp, OpToken: op.Span, Left: left, Right: right}
	}

	return left
}

// factor := unary (("*"|"/") unary)*   (left-associative)
func (p *Parser) factor() ast.Expr {
	left := p.unary()

	for p.check(token.Star) || p.check(token.Slash) {
		op := p.current()
		binOp := ast.OpMultiply
		if op.Kind == token.Slash {
			binOp = ast.OpDivide
		}
		p.advance()
		right := p.unary()
		left = &ast.BinExpr{Op: binOp, OpToken: op.Span, Left: left, Right: right}
	}

	return left
}

// unary := "-" unary | primary   (right-associative)
func (p *Parser) unary() ast.Expr {
	if p.check(token.Minus) {
		opSpan := p.current().Span
		p.advance()
		operand := p.unary()
		return &ast.UnaryExpr{OpToken: opSpan, Expr: operand}
	}

	return p.primary()
}

// primary := "(" expr ")" | NUMBER | place
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.LeftRound):
		inner := p.expr()
		p.expect(token.RightRound, "expected ')' after expression")
		return inner

	case p.check(token.Number):
		tok := p.current()
		p.advance()
		return &ast.NumberConstant{ValueAt: tok.Span, Value: tok.Value}

	case p.check(token.Identifier):
		return p.callOrVar()

	default:
		p.fail(p.current().Span, "expected an expression")
		panic("unreachable")
	}
}

// call_or_var := IDENT ( "(" arg_list? ")" )?
func (p *Parser) callOrVar() ast.Expr {
	name := p.expectIdentifier("expected an identifier")

	if !p.match(token.LeftRound) {
		return &ast.Variable{Name: name}
	}

	var args []ast.Expr
	if !p.check(token.RightRound) {
		args = append(args, p.expr())
		for p.match(token.Comma) {
			args = append(args, p.expr())
		}
	}
	p.expect(token.RightRound, "expected ')' after arguments")

	return &ast.CallExpr{FnName: name, Args: args}
}

// --- token-stream helpers, mirroring the teacher's parser.go ------------

func (p *Parser) current() token.Token {
	return p.tokens[p.idx]
}

func (p *Parser) previous() token.Token {
	if p.idx > 0 {
		return p.tokens[p.idx-1]
	}
	return p.current()
}

func (p *Parser) atEnd() bool {
	return p.current().Kind == token.Eof
}

// advance fails if called at Eof (spec §4.2).
func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.atEnd() {
		p.fail(tok.Span, "unexpected end of input")
	}
	p.idx++
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return !p.atEnd() && p.current().Kind == kind
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind, msg string) token.Token {
	if !p.check(kind) {
		p.fail(p.current().Span, msg)
	}
	tok := p.current()
	p.advance()
	return tok
}

func (p *Parser) expectIdentifier(msg string) ast.Identifier {
	tok := p.expect(token.Identifier, msg)
	return ast.Identifier{Name: tok.Name, At: tok.Span}
}

func (p *Parser) fail(at token.Span, msg string) {
	panic(parseAbort{err: &Error{Span: at, Msg: msg}})
}
