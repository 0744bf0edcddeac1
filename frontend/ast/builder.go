package ast

import (
	"strings"

	"github.com/boltlang/bolt/util"
)

// Builder constructs trees whose nodes are allocated in a single Arena.
// It is meant to be used by parsers, tree loaders and tests.
type Builder struct {
	Arena *Arena
}

func NewBuilder() *Builder {
	return &Builder{Arena: NewArena()}
}

func alloc[N Node](b *Builder, n N) N {
	b.Arena.Add(n)
	return n
}

// SetRange sets the source range of n
func SetRange(n Node, r Range) {
	n.header().Range = r
}

// ParseQualName splits a dotted name like `std.math.sqrt` into its module path and name.
// Names which are not made of identifiers, like the `..` operator, are left whole.
func ParseQualName(s string) QualName {
	segments := util.SplitAll(s, '.')
	if len(segments) == 1 || strings.Contains(s, "..") || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return QualName{Name: s}
	}
	return QualName{ModulePath: segments[:len(segments)-1], Name: segments[len(segments)-1]}
}

// SourceFile allocates the root node and links the parents of the whole tree
func (b *Builder) SourceFile(path string, elements ...Element) *SourceFile {
	f := alloc(b, &SourceFile{Path: path, Elements: elements, Arena: b.Arena})
	b.Arena.SetParents(f)
	return f
}

// expressions

func (b *Builder) Int(v int64) *ConstantExpr {
	return alloc(b, &ConstantExpr{Value: IntLit(v)})
}

func (b *Builder) Str(v string) *ConstantExpr {
	return alloc(b, &ConstantExpr{Value: StrLit(v)})
}

func (b *Builder) Bool(v bool) *ConstantExpr {
	return alloc(b, &ConstantExpr{Value: BoolLit(v)})
}

// Ref refers to name, which may be dotted
func (b *Builder) Ref(name string) *ReferenceExpr {
	return alloc(b, &ReferenceExpr{Name: ParseQualName(name)})
}

func (b *Builder) QualRef(name QualName) *ReferenceExpr {
	return alloc(b, &ReferenceExpr{Name: name})
}

func (b *Builder) Call(operator Expr, operands ...Expr) *CallExpr {
	return alloc(b, &CallExpr{Operator: operator, Operands: operands})
}

// Binary builds `left op right` as a call of the operator
func (b *Builder) Binary(left Expr, op string, right Expr) *CallExpr {
	return b.Call(alloc(b, &ReferenceExpr{Name: Name(op)}), left, right)
}

func (b *Builder) Lambda(params []*Parameter, body Expr) *FunctionExpr {
	return alloc(b, &FunctionExpr{Params: params, Body: body})
}

func (b *Builder) TypedLambda(params []*Parameter, returnType TypeExpr, body Expr) *FunctionExpr {
	return alloc(b, &FunctionExpr{Params: params, ReturnType: returnType, Body: body})
}

// Params builds untyped parameters binding each of names
func (b *Builder) Params(names ...string) []*Parameter {
	params := make([]*Parameter, len(names))
	for i, name := range names {
		params[i] = b.Param(name, nil)
	}
	return params
}

// Param binds name, with an optional type annotation
func (b *Builder) Param(name string, typ TypeExpr) *Parameter {
	return b.PatternParam(b.Bind(name), typ)
}

func (b *Builder) PatternParam(p Pattern, typ TypeExpr) *Parameter {
	return alloc(b, &Parameter{Pattern: p, Type: typ})
}

func (b *Builder) Match(value Expr, arms ...*MatchArm) *MatchExpr {
	return alloc(b, &MatchExpr{Value: value, Arms: arms})
}

func (b *Builder) Arm(p Pattern, body Expr) *MatchArm {
	return alloc(b, &MatchArm{Pattern: p, Body: body})
}

func (b *Builder) Block(elements ...Element) *BlockExpr {
	return alloc(b, &BlockExpr{Elements: elements})
}

func (b *Builder) Tuple(elements ...Expr) *TupleExpr {
	return alloc(b, &TupleExpr{Elements: elements})
}

func (b *Builder) Record(name string, fields ...*RecordFieldValue) *RecordExpr {
	return alloc(b, &RecordExpr{Name: ParseQualName(name), Fields: fields})
}

func (b *Builder) FieldValue(name string, value Expr) *RecordFieldValue {
	return alloc(b, &RecordFieldValue{Name: name, Value: value})
}

// patterns

func (b *Builder) Bind(name string) *BindPattern {
	return alloc(b, &BindPattern{Name: name})
}

func (b *Builder) TypedPattern(typ TypeExpr, nested Pattern) *TypePattern {
	return alloc(b, &TypePattern{Type: typ, Nested: nested})
}

func (b *Builder) ExprPattern(e Expr) *ExprPattern {
	return alloc(b, &ExprPattern{Expr: e})
}

func (b *Builder) TuplePattern(elements ...Pattern) *TuplePattern {
	return alloc(b, &TuplePattern{Elements: elements})
}

func (b *Builder) RecordPattern(name string, rest bool, fields ...*RecordPatternField) *RecordPattern {
	return alloc(b, &RecordPattern{Name: ParseQualName(name), Fields: fields, Rest: rest})
}

func (b *Builder) FieldPattern(name string, p Pattern) *RecordPatternField {
	return alloc(b, &RecordPatternField{Name: name, Pattern: p})
}

// type expressions

func (b *Builder) TypeRef(name string) *ReferenceTypeExpr {
	return alloc(b, &ReferenceTypeExpr{Name: ParseQualName(name)})
}

func (b *Builder) FunctionType(params []TypeExpr, result TypeExpr) *FunctionTypeExpr {
	return alloc(b, &FunctionTypeExpr{Params: params, Result: result})
}

func (b *Builder) TupleType(elements ...TypeExpr) *TupleTypeExpr {
	return alloc(b, &TupleTypeExpr{Elements: elements})
}

// elements

func (b *Builder) ExprStmt(e Expr) *ExprStmt {
	return alloc(b, &ExprStmt{Expr: e})
}

// Return builds a return statement; value may be nil
func (b *Builder) Return(value Expr) *ReturnStmt {
	return alloc(b, &ReturnStmt{Value: value})
}

func (b *Builder) Assign(target string, value Expr) *AssignStmt {
	return alloc(b, &AssignStmt{Target: ParseQualName(target), Value: value})
}

// Let builds `let name = value`
func (b *Builder) Let(name string, value Expr) *VariableDecl {
	return b.VariableDecl(false, b.Bind(name), nil, value)
}

// VariableDecl builds a `let` declaration. typ and value may be nil.
func (b *Builder) VariableDecl(mutable bool, p Pattern, typ TypeExpr, value Expr) *VariableDecl {
	return alloc(b, &VariableDecl{Mutable: mutable, Pattern: p, Type: typ, Value: value})
}

// Fn builds a function declaration. returnType may be nil.
func (b *Builder) Fn(name string, params []*Parameter, returnType TypeExpr, body ...Element) *FunctionDecl {
	return alloc(b, &FunctionDecl{Name: name, Params: params, ReturnType: returnType, Body: body})
}

func (b *Builder) Module(name string, elements ...Element) *ModuleDecl {
	return alloc(b, &ModuleDecl{Name: ParseQualName(name), Elements: elements})
}

func (b *Builder) Struct(name string, fields ...*RecordDeclField) *RecordDecl {
	return alloc(b, &RecordDecl{Name: name, Fields: fields})
}

func (b *Builder) Field(name string, typ TypeExpr) *RecordDeclField {
	return alloc(b, &RecordDeclField{Name: name, Type: typ})
}

func (b *Builder) Alias(name string, typ TypeExpr) *TypeAliasDecl {
	return alloc(b, &TypeAliasDecl{Name: name, Type: typ})
}
