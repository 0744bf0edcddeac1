package ast

// SourceFile is the root of a tree. All of its nodes were allocated by Arena.
type SourceFile struct {
	nodeHeader
	Path     string
	Elements []Element
	Arena    *Arena
}

func (*SourceFile) Kind() Kind { return KindSourceFile }

type ExprStmt struct {
	nodeHeader
	Expr Expr
}

type ReturnStmt struct {
	nodeHeader
	// Value is nil for a bare `return`
	Value Expr
}

// AssignStmt reassigns a mutable binding, like `a = 1`
type AssignStmt struct {
	nodeHeader
	Target QualName
	Value  Expr
}

// VariableDecl is a `let` declaration, like `let mut a: int = 1`.
// Type and Value are both optional.
type VariableDecl struct {
	nodeHeader
	Mutable bool
	Pattern Pattern
	Type    TypeExpr
	Value   Expr
}

// FunctionDecl is a named function, like `fn fac(n: int) -> int { ... }`
type FunctionDecl struct {
	nodeHeader
	Name   string
	Params []*Parameter
	// ReturnType is optional
	ReturnType TypeExpr
	Body       []Element
}

// ModuleDecl groups its elements under a module path, like `mod std.math { ... }`.
// Declaring the same module twice reopens it.
type ModuleDecl struct {
	nodeHeader
	Name     QualName
	Elements []Element
}

// RecordDecl declares a nominal record type, like `struct Point { x: int, y: int }`
type RecordDecl struct {
	nodeHeader
	Name   string
	Fields []*RecordDeclField
}

type RecordDeclField struct {
	nodeHeader
	Name string
	Type TypeExpr
}

// TypeAliasDecl gives a new name to an existing type, like `type Count = int`
type TypeAliasDecl struct {
	nodeHeader
	Name string
	Type TypeExpr
}

func (*ExprStmt) Kind() Kind        { return KindExprStmt }
func (*ReturnStmt) Kind() Kind      { return KindReturnStmt }
func (*AssignStmt) Kind() Kind      { return KindAssignStmt }
func (*VariableDecl) Kind() Kind    { return KindVariableDecl }
func (*FunctionDecl) Kind() Kind    { return KindFunctionDecl }
func (*ModuleDecl) Kind() Kind      { return KindModuleDecl }
func (*RecordDecl) Kind() Kind      { return KindRecordDecl }
func (*RecordDeclField) Kind() Kind { return KindRecordDeclField }
func (*TypeAliasDecl) Kind() Kind   { return KindTypeAliasDecl }

func (*ExprStmt) elementNode()      {}
func (*ReturnStmt) elementNode()    {}
func (*AssignStmt) elementNode()    {}
func (*VariableDecl) elementNode()  {}
func (*FunctionDecl) elementNode()  {}
func (*ModuleDecl) elementNode()    {}
func (*RecordDecl) elementNode()    {}
func (*TypeAliasDecl) elementNode() {}

func (*VariableDecl) declarationNode()  {}
func (*FunctionDecl) declarationNode()  {}
func (*ModuleDecl) declarationNode()    {}
func (*RecordDecl) declarationNode()    {}
func (*TypeAliasDecl) declarationNode() {}
