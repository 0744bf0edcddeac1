package ast

import "fmt"

// Children returns the direct children of n, in source order
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, node := range nodes {
			if node != nil {
				out = append(out, node)
			}
		}
	}
	switch n := n.(type) {
	case *SourceFile:
		for _, e := range n.Elements {
			add(e)
		}
	case *ConstantExpr, *ReferenceExpr, *BindPattern:
	case *CallExpr:
		add(n.Operator)
		for _, o := range n.Operands {
			add(o)
		}
	case *FunctionExpr:
		for _, p := range n.Params {
			add(p)
		}
		add(n.ReturnType, n.Body)
	case *MatchExpr:
		add(n.Value)
		for _, arm := range n.Arms {
			add(arm)
		}
	case *MatchArm:
		add(n.Pattern, n.Body)
	case *BlockExpr:
		for _, e := range n.Elements {
			add(e)
		}
	case *TupleExpr:
		for _, e := range n.Elements {
			add(e)
		}
	case *RecordExpr:
		for _, f := range n.Fields {
			add(f)
		}
	case *RecordFieldValue:
		add(n.Value)
	case *Parameter:
		add(n.Pattern, n.Type)
	case *TypePattern:
		add(n.Type, n.Nested)
	case *ExprPattern:
		add(n.Expr)
	case *TuplePattern:
		for _, e := range n.Elements {
			add(e)
		}
	case *RecordPattern:
		for _, f := range n.Fields {
			add(f)
		}
	case *RecordPatternField:
		add(n.Pattern)
	case *ReferenceTypeExpr:
	case *FunctionTypeExpr:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Result)
	case *TupleTypeExpr:
		for _, e := range n.Elements {
			add(e)
		}
	case *ExprStmt:
		add(n.Expr)
	case *ReturnStmt:
		add(n.Value)
	case *AssignStmt:
		add(n.Value)
	case *VariableDecl:
		add(n.Pattern, n.Type, n.Value)
	case *FunctionDecl:
		for _, p := range n.Params {
			add(p)
		}
		add(n.ReturnType)
		for _, e := range n.Body {
			add(e)
		}
	case *ModuleDecl:
		for _, e := range n.Elements {
			add(e)
		}
	case *RecordDecl:
		for _, f := range n.Fields {
			add(f)
		}
	case *RecordDeclField:
		add(n.Type)
	default:
		panic(fmt.Sprintf("unexpected node %T", n))
	}
	return out
}

// Inspect traverses the tree rooted at n depth-first, calling f before visiting
// the children of each node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}
