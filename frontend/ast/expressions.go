package ast

// Literal is the value of a ConstantExpr: one of IntLit, StrLit or BoolLit
type Literal interface {
	literal()
}

type IntLit int64
type StrLit string
type BoolLit bool

func (IntLit) literal()  {}
func (StrLit) literal()  {}
func (BoolLit) literal() {}

// ConstantExpr is a literal, like `1`, `"foo"` or `true`
type ConstantExpr struct {
	nodeHeader
	Value Literal
}

// ReferenceExpr refers to a binding by its (possibly qualified) name.
// Operators such as `+` are references too.
type ReferenceExpr struct {
	nodeHeader
	Name QualName
}

// CallExpr applies Operator to Operands.
// Binary operations are calls whose Operator is a ReferenceExpr to the operator name.
type CallExpr struct {
	nodeHeader
	Operator Expr
	Operands []Expr
}

// FunctionExpr is an anonymous function, like `|x, y| x + y`
type FunctionExpr struct {
	nodeHeader
	Params []*Parameter
	// ReturnType is optional
	ReturnType TypeExpr
	Body       Expr
}

type MatchExpr struct {
	nodeHeader
	Value Expr
	Arms  []*MatchArm
}

type MatchArm struct {
	nodeHeader
	Pattern Pattern
	Body    Expr
}

// BlockExpr evaluates its Elements in order. Its value is the one of its
// last element if that is an ExprStmt, and the unit tuple otherwise
type BlockExpr struct {
	nodeHeader
	Elements []Element
}

type TupleExpr struct {
	nodeHeader
	Elements []Expr
}

// RecordExpr constructs a value of a record type declared with a RecordDecl,
// like `Point { x: 1, y: 2 }`
type RecordExpr struct {
	nodeHeader
	Name   QualName
	Fields []*RecordFieldValue
}

type RecordFieldValue struct {
	nodeHeader
	Name  string
	Value Expr
}

// Parameter of a FunctionExpr or a FunctionDecl
type Parameter struct {
	nodeHeader
	Pattern Pattern
	// Type is optional
	Type TypeExpr
}

func (*ConstantExpr) Kind() Kind     { return KindConstantExpr }
func (*ReferenceExpr) Kind() Kind    { return KindReferenceExpr }
func (*CallExpr) Kind() Kind         { return KindCallExpr }
func (*FunctionExpr) Kind() Kind     { return KindFunctionExpr }
func (*MatchExpr) Kind() Kind        { return KindMatchExpr }
func (*MatchArm) Kind() Kind         { return KindMatchArm }
func (*BlockExpr) Kind() Kind        { return KindBlockExpr }
func (*TupleExpr) Kind() Kind        { return KindTupleExpr }
func (*RecordExpr) Kind() Kind       { return KindRecordExpr }
func (*RecordFieldValue) Kind() Kind { return KindRecordFieldValue }
func (*Parameter) Kind() Kind        { return KindParameter }

func (*ConstantExpr) exprNode()  {}
func (*ReferenceExpr) exprNode() {}
func (*CallExpr) exprNode()      {}
func (*FunctionExpr) exprNode()  {}
func (*MatchExpr) exprNode()     {}
func (*BlockExpr) exprNode()     {}
func (*TupleExpr) exprNode()     {}
func (*RecordExpr) exprNode()    {}
