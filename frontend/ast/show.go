package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Show renders n back into surface syntax. It is meant for logs and
// diagnostics, not for round-tripping.
func Show(n Node) string {
	sb := &strings.Builder{}
	show(sb, n)
	return sb.String()
}

func showAll[N Node](sb *strings.Builder, nodes []N, sep string) {
	for i, n := range nodes {
		if i != 0 {
			sb.WriteString(sep)
		}
		show(sb, n)
	}
}

func show(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *SourceFile:
		showAll(sb, n.Elements, "\n")
	case *ConstantExpr:
		switch v := n.Value.(type) {
		case IntLit:
			sb.WriteString(strconv.FormatInt(int64(v), 10))
		case StrLit:
			sb.WriteString(strconv.Quote(string(v)))
		case BoolLit:
			sb.WriteString(strconv.FormatBool(bool(v)))
		}
	case *ReferenceExpr:
		sb.WriteString(n.Name.String())
	case *CallExpr:
		if ref, ok := n.Operator.(*ReferenceExpr); ok && len(n.Operands) == 2 && isOperator(ref.Name.Name) {
			show(sb, n.Operands[0])
			sb.WriteString(" " + ref.Name.Name + " ")
			show(sb, n.Operands[1])
			return
		}
		if _, ok := n.Operator.(*FunctionExpr); ok {
			sb.WriteString("(")
			show(sb, n.Operator)
			sb.WriteString(")")
		} else {
			show(sb, n.Operator)
		}
		sb.WriteString("(")
		showAll(sb, n.Operands, ", ")
		sb.WriteString(")")
	case *FunctionExpr:
		sb.WriteString("|")
		showAll(sb, n.Params, ", ")
		sb.WriteString("| ")
		if n.ReturnType != nil {
			sb.WriteString("-> ")
			show(sb, n.ReturnType)
			sb.WriteString(" ")
		}
		show(sb, n.Body)
	case *MatchExpr:
		sb.WriteString("match ")
		show(sb, n.Value)
		sb.WriteString(" { ")
		showAll(sb, n.Arms, ", ")
		sb.WriteString(" }")
	case *MatchArm:
		show(sb, n.Pattern)
		sb.WriteString(" => ")
		show(sb, n.Body)
	case *BlockExpr:
		sb.WriteString("{ ")
		showAll(sb, n.Elements, " ")
		sb.WriteString(" }")
	case *TupleExpr:
		sb.WriteString("(")
		showAll(sb, n.Elements, ", ")
		sb.WriteString(")")
	case *RecordExpr:
		sb.WriteString(n.Name.String() + " { ")
		showAll(sb, n.Fields, ", ")
		sb.WriteString(" }")
	case *RecordFieldValue:
		sb.WriteString(n.Name + ": ")
		show(sb, n.Value)
	case *Parameter:
		show(sb, n.Pattern)
		if n.Type != nil {
			sb.WriteString(": ")
			show(sb, n.Type)
		}
	case *BindPattern:
		sb.WriteString(n.Name)
	case *TypePattern:
		show(sb, n.Nested)
		sb.WriteString(": ")
		show(sb, n.Type)
	case *ExprPattern:
		show(sb, n.Expr)
	case *TuplePattern:
		sb.WriteString("(")
		showAll(sb, n.Elements, ", ")
		sb.WriteString(")")
	case *RecordPattern:
		sb.WriteString(n.Name.String() + " { ")
		showAll(sb, n.Fields, ", ")
		if n.Rest {
			if len(n.Fields) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("..")
		}
		sb.WriteString(" }")
	case *RecordPatternField:
		sb.WriteString(n.Name)
		if n.Pattern != nil {
			sb.WriteString(": ")
			show(sb, n.Pattern)
		}
	case *ReferenceTypeExpr:
		sb.WriteString(n.Name.String())
	case *FunctionTypeExpr:
		sb.WriteString("fn(")
		showAll(sb, n.Params, ", ")
		sb.WriteString(") -> ")
		show(sb, n.Result)
	case *TupleTypeExpr:
		sb.WriteString("(")
		showAll(sb, n.Elements, ", ")
		sb.WriteString(")")
	case *ExprStmt:
		show(sb, n.Expr)
		sb.WriteString(";")
	case *ReturnStmt:
		sb.WriteString("return")
		if n.Value != nil {
			sb.WriteString(" ")
			show(sb, n.Value)
		}
		sb.WriteString(";")
	case *AssignStmt:
		sb.WriteString(n.Target.String() + " = ")
		show(sb, n.Value)
		sb.WriteString(";")
	case *VariableDecl:
		sb.WriteString("let ")
		if n.Mutable {
			sb.WriteString("mut ")
		}
		show(sb, n.Pattern)
		if n.Type != nil {
			sb.WriteString(": ")
			show(sb, n.Type)
		}
		if n.Value != nil {
			sb.WriteString(" = ")
			show(sb, n.Value)
		}
		sb.WriteString(";")
	case *FunctionDecl:
		sb.WriteString("fn " + n.Name + "(")
		showAll(sb, n.Params, ", ")
		sb.WriteString(")")
		if n.ReturnType != nil {
			sb.WriteString(" -> ")
			show(sb, n.ReturnType)
		}
		sb.WriteString(" { ")
		showAll(sb, n.Body, " ")
		sb.WriteString(" }")
	case *ModuleDecl:
		sb.WriteString("mod " + n.Name.String() + " { ")
		showAll(sb, n.Elements, " ")
		sb.WriteString(" }")
	case *RecordDecl:
		sb.WriteString("struct " + n.Name + " { ")
		showAll(sb, n.Fields, ", ")
		sb.WriteString(" }")
	case *RecordDeclField:
		sb.WriteString(n.Name + ": ")
		show(sb, n.Type)
	case *TypeAliasDecl:
		sb.WriteString("type " + n.Name + " = ")
		show(sb, n.Type)
		sb.WriteString(";")
	default:
		sb.WriteString(fmt.Sprintf("<%T>", n))
	}
}

func isOperator(name string) bool {
	for _, r := range name {
		if strings.ContainsRune("+-*/%<>=!&|^~.", r) {
			continue
		}
		return false
	}
	return name != ""
}
