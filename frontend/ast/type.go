package ast

// ReferenceTypeExpr names a type, like `int` or `geometry.Point`
type ReferenceTypeExpr struct {
	nodeHeader
	Name QualName
}

// FunctionTypeExpr is like `fn(int, string) -> bool`
type FunctionTypeExpr struct {
	nodeHeader
	Params []TypeExpr
	Result TypeExpr
}

// TupleTypeExpr is like `(int, string)`. `()` is the unit type.
type TupleTypeExpr struct {
	nodeHeader
	Elements []TypeExpr
}

func (*ReferenceTypeExpr) Kind() Kind { return KindReferenceTypeExpr }
func (*FunctionTypeExpr) Kind() Kind  { return KindFunctionTypeExpr }
func (*TupleTypeExpr) Kind() Kind     { return KindTupleTypeExpr }

func (*ReferenceTypeExpr) typeExprNode() {}
func (*FunctionTypeExpr) typeExprNode()  {}
func (*TupleTypeExpr) typeExprNode()     {}
