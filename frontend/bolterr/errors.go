package bolterr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/types"
)

// enableDebugErrorPrinting makes errors include where they were raised when printed
var enableDebugErrorPrinting = false

type ErrCode int

const (
	None ErrCode = iota
	BindingNotFound
	TypeNotFound
	Unification
	UninitializedBinding
	UnassignedReference
	TooFewArguments
	TooManyArguments
	NotAValue
	NotARecord
	UnknownField
	MissingField
	ReturnOutsideFunction
	MissingInitializer
	Internal
)

// Error is implemented by every error the checker reports.
// Each kind is a struct carrying the data needed to inspect it programmatically.
type Error interface {
	error
	Code() ErrCode
	// Node is the syntax node the error is about. It may be nil.
	Node() ast.Node

	withNode(ast.Node) Error
	withStack([]byte) Error
	getStack() []byte
}

// FormatWithCode prefixes the message of e with its code
func FormatWithCode(e Error) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := strings.Split(string(e.getStack()), "\n")
		at := ""
		if len(stack) > 6 {
			at = strings.TrimSpace(stack[6]) + ": "
		}
		return fmt.Sprintf("%s(E%03d) %s", at, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// New records where err was raised
func New[E Error](err E) Error {
	return err.withStack(debug.Stack())
}

// At attaches node to err if err is an Error without a node yet.
// Other errors are returned unchanged.
func At(err error, node ast.Node) error {
	e, ok := err.(Error)
	if !ok || e.Node() != nil || node == nil {
		return err
	}
	return e.withNode(node)
}

// position is embedded in every error kind
type position struct {
	node  ast.Node
	stack []byte
}

func (p position) Node() ast.Node   { return p.node }
func (p position) getStack() []byte { return p.stack }

type Unclassified struct {
	From error
	position
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Unwrap() error { return e.From }
func (e Unclassified) Code() ErrCode { return None }
func (e Unclassified) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e Unclassified) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// BindingNotFoundError is raised when a name, or a segment of its module path, is not declared
type BindingNotFoundError struct {
	VarName string
	position
}

func (e BindingNotFoundError) Error() string {
	return fmt.Sprintf("reference to an undefined declaration '%s'", e.VarName)
}
func (e BindingNotFoundError) Code() ErrCode { return BindingNotFound }
func (e BindingNotFoundError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e BindingNotFoundError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type TypeNotFoundError struct {
	TypeName string
	position
}

func (e TypeNotFoundError) Error() string {
	return fmt.Sprintf("a type declaration named '%s' was not found", e.TypeName)
}
func (e TypeNotFoundError) Code() ErrCode { return TypeNotFound }
func (e TypeNotFoundError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e TypeNotFoundError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// UnificationError is raised when two types cannot be made equal.
// Left and Right are the innermost pair of types that failed to unify.
type UnificationError struct {
	Left  types.Type
	Right types.Type
	// Occurs is set when unification failed because it would create an infinite type
	Occurs bool
	position
}

func (e UnificationError) Error() string {
	names := types.ShowAll(e.Left, e.Right)
	if e.Occurs {
		return fmt.Sprintf("types %s and %s are not assignable: the resulting type would be infinite", names[0], names[1])
	}
	return fmt.Sprintf("types %s and %s are not assignable", names[0], names[1])
}
func (e UnificationError) Code() ErrCode { return Unification }
func (e UnificationError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e UnificationError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// UninitializedBindingError is raised when assigning to a binding that was not declared mutable
type UninitializedBindingError struct {
	Name string
	position
}

func (e UninitializedBindingError) Error() string {
	return fmt.Sprintf("binding '%s' is not declared mutable and cannot be assigned", e.Name)
}
func (e UninitializedBindingError) Code() ErrCode { return UninitializedBinding }
func (e UninitializedBindingError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e UninitializedBindingError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// UnassignedReferenceError is raised when reading a binding which has no type yet:
// a `let` without initializer or annotation that was never assigned
type UnassignedReferenceError struct {
	Name string
	position
}

func (e UnassignedReferenceError) Error() string {
	return fmt.Sprintf("binding '%s' is used before a value was assigned to it", e.Name)
}
func (e UnassignedReferenceError) Code() ErrCode { return UnassignedReference }
func (e UnassignedReferenceError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e UnassignedReferenceError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type TooFewArgumentsError struct {
	Expected, Actual int
	position
}

func (e TooFewArgumentsError) Error() string {
	return fmt.Sprintf("too few arguments for function call: expected %d but got %d", e.Expected, e.Actual)
}
func (e TooFewArgumentsError) Code() ErrCode { return TooFewArguments }
func (e TooFewArgumentsError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e TooFewArgumentsError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type TooManyArgumentsError struct {
	Expected, Actual int
	position
}

func (e TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many arguments for function call: expected %d but got %d", e.Expected, e.Actual)
}
func (e TooManyArgumentsError) Code() ErrCode { return TooManyArguments }
func (e TooManyArgumentsError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e TooManyArgumentsError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// NotAValueError is raised when a name which does not denote a value, like a
// module, is used as one, or when something other than a variable is assigned
type NotAValueError struct {
	Name string
	What string
	position
}

func (e NotAValueError) Error() string {
	return fmt.Sprintf("'%s' is a %s and cannot be used here", e.Name, e.What)
}
func (e NotAValueError) Code() ErrCode { return NotAValue }
func (e NotAValueError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e NotAValueError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type NotARecordError struct {
	TypeName string
	Type     types.Type
	position
}

func (e NotARecordError) Error() string {
	return fmt.Sprintf("'%s' is the type %s, which is not a record", e.TypeName, types.Show(e.Type))
}
func (e NotARecordError) Code() ErrCode { return NotARecord }
func (e NotARecordError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e NotARecordError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type UnknownFieldError struct {
	Record string
	Field  string
	position
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("record '%s' has no field named '%s'", e.Record, e.Field)
}
func (e UnknownFieldError) Code() ErrCode { return UnknownField }
func (e UnknownFieldError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e UnknownFieldError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// MissingFieldError is raised by a record expression, or a record pattern
// without `..`, which does not mention every field of the record
type MissingFieldError struct {
	Record string
	Field  string
	position
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("field '%s' of record '%s' is missing", e.Field, e.Record)
}
func (e MissingFieldError) Code() ErrCode { return MissingField }
func (e MissingFieldError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e MissingFieldError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

type ReturnOutsideFunctionError struct {
	position
}

func (e ReturnOutsideFunctionError) Error() string {
	return "return statement outside of a function body"
}
func (e ReturnOutsideFunctionError) Code() ErrCode { return ReturnOutsideFunction }
func (e ReturnOutsideFunctionError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e ReturnOutsideFunctionError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// MissingInitializerError is raised by a destructuring `let` without a value
type MissingInitializerError struct {
	position
}

func (e MissingInitializerError) Error() string {
	return "a destructuring declaration must have an initializer"
}
func (e MissingInitializerError) Code() ErrCode { return MissingInitializer }
func (e MissingInitializerError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e MissingInitializerError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// InternalError reports a misuse of the checker rather than a problem in the checked program
type InternalError struct {
	Message string
	position
}

func (e InternalError) Error() string {
	return "internal error: " + e.Message
}
func (e InternalError) Code() ErrCode { return Internal }
func (e InternalError) withNode(n ast.Node) Error {
	e.node = n
	return e
}
func (e InternalError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}
