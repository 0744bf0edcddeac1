package ast

import (
	"strings"
)

// NodeID identifies a node inside the Arena that allocated it.
// The zero value NoNode never refers to a node.
type NodeID uint32

const NoNode NodeID = 0

// Node is the base interface for all syntax nodes.
//
// Nodes own their children but never their parent: parents are looked up
// through the Arena by NodeID.
type Node interface {
	Positioner
	ID() NodeID
	Kind() Kind
	header() *nodeHeader
}

type nodeHeader struct {
	Range
	id NodeID
}

func (h *nodeHeader) ID() NodeID          { return h.id }
func (h *nodeHeader) header() *nodeHeader { return h }

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Element is anything that may appear in a sequence of statements:
// a source file, a module body, a function body or a block.
type Element interface {
	Node
	elementNode()
}

// Pattern is the interface for all nodes which may appear on the left of a binding.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is the interface for all type annotation nodes.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Declaration is an Element which introduces a name into its enclosing scope
type Declaration interface {
	Element
	declarationNode()
}

// QualName is a possibly module-qualified name, like `std.math.sqrt`.
// It is not a Node: its position is the one of the node holding it.
type QualName struct {
	ModulePath []string
	Name       string
}

// Name returns an unqualified QualName
func Name(name string) QualName {
	return QualName{Name: name}
}

func (q QualName) IsQualified() bool {
	return len(q.ModulePath) > 0
}

func (q QualName) String() string {
	if !q.IsQualified() {
		return q.Name
	}
	return strings.Join(q.ModulePath, ".") + "." + q.Name
}

// Kind enumerates every concrete node type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindSourceFile

	KindConstantExpr
	KindReferenceExpr
	KindCallExpr
	KindFunctionExpr
	KindMatchExpr
	KindBlockExpr
	KindTupleExpr
	KindRecordExpr

	KindMatchArm
	KindParameter
	KindRecordFieldValue
	KindRecordPatternField
	KindRecordDeclField

	KindBindPattern
	KindTypePattern
	KindExprPattern
	KindTuplePattern
	KindRecordPattern

	KindReferenceTypeExpr
	KindFunctionTypeExpr
	KindTupleTypeExpr

	KindExprStmt
	KindReturnStmt
	KindAssignStmt
	KindVariableDecl
	KindFunctionDecl
	KindModuleDecl
	KindRecordDecl
	KindTypeAliasDecl
)

var kindNames = [...]string{
	KindInvalid:            "Invalid",
	KindSourceFile:         "SourceFile",
	KindConstantExpr:       "ConstantExpr",
	KindReferenceExpr:      "ReferenceExpr",
	KindCallExpr:           "CallExpr",
	KindFunctionExpr:       "FunctionExpr",
	KindMatchExpr:          "MatchExpr",
	KindBlockExpr:          "BlockExpr",
	KindTupleExpr:          "TupleExpr",
	KindRecordExpr:         "RecordExpr",
	KindMatchArm:           "MatchArm",
	KindParameter:          "Parameter",
	KindRecordFieldValue:   "RecordFieldValue",
	KindRecordPatternField: "RecordPatternField",
	KindRecordDeclField:    "RecordDeclField",
	KindBindPattern:        "BindPattern",
	KindTypePattern:        "TypePattern",
	KindExprPattern:        "ExprPattern",
	KindTuplePattern:       "TuplePattern",
	KindRecordPattern:      "RecordPattern",
	KindReferenceTypeExpr:  "ReferenceTypeExpr",
	KindFunctionTypeExpr:   "FunctionTypeExpr",
	KindTupleTypeExpr:      "TupleTypeExpr",
	KindExprStmt:           "ExprStmt",
	KindReturnStmt:         "ReturnStmt",
	KindAssignStmt:         "AssignStmt",
	KindVariableDecl:       "VariableDecl",
	KindFunctionDecl:       "FunctionDecl",
	KindModuleDecl:         "ModuleDecl",
	KindRecordDecl:         "RecordDecl",
	KindTypeAliasDecl:      "TypeAliasDecl",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
