package ast

import (
	"fmt"
	"strings"
)

// Dump renders a deterministic structural text form of the AST, in the
// spirit of the teacher's node String() methods and akashmaji946-go-mix's
// indenting PrintingVisitor. It exists purely as a debug aid — spec.md §1
// scopes pretty-printing out of the CORE as an external printer contract,
// so nothing in the resolver or type checker depends on this output.
func Dump(p *Program) string {
	var sb strings.Builder
	for _, stmt := range p.Statements {
		dumpStatement(&sb, stmt, 0)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

func dumpStatement(sb *strings.Builder, s Statement, depth int) {
	switch n := s.(type) {
	case *ExprStatement:
		indent(sb, depth)
		sb.WriteString("ExprStatement\n")
		dumpExpr(sb, n.Expr, depth+1)
	case *BlockStatement:
		indent(sb, depth)
		sb.WriteString("Block {\n")
		for _, stmt := range n.Statements {
			dumpStatement(sb, stmt, depth+1)
		}
		indent(sb, depth)
		sb.WriteString("}\n")
	case *IfStatement:
		indent(sb, depth)
		sb.WriteString("If\n")
		dumpExpr(sb, n.Condition, depth+1)
		dumpStatement(sb, n.Then, depth+1)
		if n.Else != nil {
			dumpStatement(sb, n.Else, depth+1)
		}
	case *ElseStatement:
		indent(sb, depth)
		sb.WriteString("Else\n")
		dumpStatement(sb, n.Stmt, depth+1)
	case *Function:
		indent(sb, depth)
		fmt.Fprintf(sb, "Function %s(%s) -> %s\n", n.Name.Name, paramList(n.Args), n.ReturnType.Name)
		dumpStatement(sb, n.Block, depth+1)
	case *ReturnStatement:
		indent(sb, depth)
		sb.WriteString("Return\n")
		if n.Value != nil {
			dumpExpr(sb, n.Value, depth+1)
		}
	default:
		indent(sb, depth)
		sb.WriteString("<unknown statement>\n")
	}
}

func paramList(args []*VarDecl) string {
	var parts []string
	for _, a := range args {
		typeName := "?"
		if a.Type != nil {
			typeName = a.Type.Name
		}
		parts = append(parts, fmt.Sprintf("%s: %s", a.Name.Name, typeName))
	}
	return strings.Join(parts, ", ")
}

func dumpExpr(sb *strings.Builder, e Expr, depth int) {
	switch n := e.(type) {
	case *NumberConstant:
		indent(sb, depth)
		fmt.Fprintf(sb, "NumberConstant(%g)\n", n.Value)
	case *Variable:
		indent(sb, depth)
		fmt.Fprintf(sb, "Variable(%s)\n", n.Name.Name)
	case *VarDecl:
		indent(sb, depth)
		typeName := "?"
		if n.Type != nil {
			typeName = n.Type.Name
		}
		fmt.Fprintf(sb, "VarDecl(%s: %s)\n", n.Name.Name, typeName)
	case *UnaryExpr:
		indent(sb, depth)
		sb.WriteString("Unary(-)\n")
		dumpExpr(sb, n.Expr, depth+1)
	case *BinExpr:
		indent(sb, depth)
		fmt.Fprintf(sb, "BinExpr(%s)\n", binOpSymbol(n.Op))
		dumpExpr(sb, n.Left, depth+1)
		dumpExpr(sb, n.Right, depth+1)
	case *CallExpr:
		indent(sb, depth)
		fmt.Fprintf(sb, "Call(%s)\n", n.FnName.Name)
		for _, arg := range n.Args {
			dumpExpr(sb, arg, depth+1)
		}
	case *AssignmentExpr:
		indent(sb, depth)
		sb.WriteString("Assignment\n")
		dumpExpr(sb, n.Lhs, depth+1)
		dumpExpr(sb, n.Rhs, depth+1)
	case *LetExpr:
		indent(sb, depth)
		sb.WriteString("Let\n")
		dumpExpr(sb, n.VarDecl, depth+1)
		if n.Rhs != nil {
			dumpExpr(sb, n.Rhs, depth+1)
		}
	default:
		indent(sb, depth)
		sb.WriteString("<unknown expr>\n")
	}
}

func binOpSymbol(op BinOp) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpEquals:
		return "=="
	default:
		return "?"
	}
}
