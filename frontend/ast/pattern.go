package ast

// BindPattern binds whatever it matches to Name
type BindPattern struct {
	nodeHeader
	Name string
}

// TypePattern annotates Nested with a type, like `x: int`
type TypePattern struct {
	nodeHeader
	Type   TypeExpr
	Nested Pattern
}

// ExprPattern matches values equal to Expr, like the `0` in `0 => 1`
type ExprPattern struct {
	nodeHeader
	Expr Expr
}

type TuplePattern struct {
	nodeHeader
	Elements []Pattern
}

// RecordPattern destructures a record, like `Point { x, y: 0, .. }`.
// Rest is set when the pattern ends with `..`.
type RecordPattern struct {
	nodeHeader
	Name   QualName
	Fields []*RecordPatternField
	Rest   bool
}

type RecordPatternField struct {
	nodeHeader
	Name    string
	Pattern Pattern
}

func (*BindPattern) Kind() Kind        { return KindBindPattern }
func (*TypePattern) Kind() Kind        { return KindTypePattern }
func (*ExprPattern) Kind() Kind        { return KindExprPattern }
func (*TuplePattern) Kind() Kind       { return KindTuplePattern }
func (*RecordPattern) Kind() Kind      { return KindRecordPattern }
func (*RecordPatternField) Kind() Kind { return KindRecordPatternField }

func (*BindPattern) patternNode()   {}
func (*TypePattern) patternNode()   {}
func (*ExprPattern) patternNode()   {}
func (*TuplePattern) patternNode()  {}
func (*RecordPattern) patternNode() {}
