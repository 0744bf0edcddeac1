// Package diag turns checker errors into user-facing diagnostics
package diag

import (
	"fmt"
	"strings"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/types"
)

const (
	ETypeDeclarationNotFound     = "A type declaration named '{name}' was not found."
	EDeclarationNotFound         = "Reference to an undefined declaration '{name}'."
	ETypesNotAssignable          = "Types {left} and {right} are not assignable."
	EInfiniteType                = "Types {left} and {right} are not assignable: the resulting type would be infinite."
	ETooFewArgumentsForCall      = "Too few arguments for function call. Expected {expected} but got {actual}."
	ETooManyArgumentsForCall     = "Too many arguments for function call. Expected {expected} but got {actual}."
	EBindingNotMutable           = "Binding '{name}' is not declared mutable and cannot be assigned."
	EBindingNotAssigned          = "Binding '{name}' is used before a value was assigned to it."
	ENotAValue                   = "'{name}' is a {what} and cannot be used here."
	ENotARecord                  = "Type '{name}' is not a record."
	EUnknownField                = "Record '{name}' has no field named '{field}'."
	EMissingField                = "Field '{field}' of record '{name}' is missing."
	EReturnOutsideFunction       = "A return statement is only allowed inside a function body."
	EDestructuringWithoutInitVal = "A destructuring declaration must have an initializer."
)

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Diagnostic is a message about a node, meant to be shown to the user.
// Message is a template whose `{name}` placeholders are filled from Args.
type Diagnostic struct {
	Message  string
	Severity Severity
	Args     map[string]any
	// Node may be nil when the diagnostic is about no node in particular
	Node ast.Node
	Code bolterr.ErrCode
}

// Text returns the message with its arguments filled in
func (d Diagnostic) Text() string {
	if d.Args == nil {
		return d.Message
	}
	return Format(d.Message, d.Args)
}

func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Text()
}

// Format replaces every `{name}` in message with args[name].
// Placeholders without an argument are left as they are.
func Format(message string, args map[string]any) string {
	sb := strings.Builder{}
	rest := message
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			break
		}
		name := rest[open+1 : open+closing]
		sb.WriteString(rest[:open])
		if arg, ok := args[name]; ok {
			sb.WriteString(fmt.Sprint(arg))
		} else {
			sb.WriteString(rest[open : open+closing+1])
		}
		rest = rest[open+closing+1:]
	}
	sb.WriteString(rest)
	return sb.String()
}

// Sink receives diagnostics as they are found
type Sink interface {
	Add(Diagnostic)
}

// Collector is a Sink which keeps every diagnostic it receives
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Add(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

func (c *Collector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(Diagnostic)

func (f SinkFunc) Add(d Diagnostic) { f(d) }

// FromError builds the diagnostic reporting err
func FromError(err bolterr.Error) Diagnostic {
	d := Diagnostic{Severity: SeverityError, Node: err.Node(), Code: err.Code()}
	switch err := err.(type) {
	case bolterr.BindingNotFoundError:
		d.Message, d.Args = EDeclarationNotFound, map[string]any{"name": err.VarName}
	case bolterr.TypeNotFoundError:
		d.Message, d.Args = ETypeDeclarationNotFound, map[string]any{"name": err.TypeName}
	case bolterr.UnificationError:
		names := types.ShowAll(err.Left, err.Right)
		d.Message, d.Args = ETypesNotAssignable, map[string]any{"left": names[0], "right": names[1]}
		if err.Occurs {
			d.Message = EInfiniteType
		}
	case bolterr.TooFewArgumentsError:
		d.Message, d.Args = ETooFewArgumentsForCall, map[string]any{"expected": err.Expected, "actual": err.Actual}
	case bolterr.TooManyArgumentsError:
		d.Message, d.Args = ETooManyArgumentsForCall, map[string]any{"expected": err.Expected, "actual": err.Actual}
	case bolterr.UninitializedBindingError:
		d.Message, d.Args = EBindingNotMutable, map[string]any{"name": err.Name}
	case bolterr.UnassignedReferenceError:
		d.Message, d.Args = EBindingNotAssigned, map[string]any{"name": err.Name}
	case bolterr.NotAValueError:
		d.Message, d.Args = ENotAValue, map[string]any{"name": err.Name, "what": err.What}
	case bolterr.NotARecordError:
		d.Message, d.Args = ENotARecord, map[string]any{"name": err.TypeName}
	case bolterr.UnknownFieldError:
		d.Message, d.Args = EUnknownField, map[string]any{"name": err.Record, "field": err.Field}
	case bolterr.MissingFieldError:
		d.Message, d.Args = EMissingField, map[string]any{"name": err.Record, "field": err.Field}
	case bolterr.ReturnOutsideFunctionError:
		d.Message = EReturnOutsideFunction
	case bolterr.MissingInitializerError:
		d.Message = EDestructuringWithoutInitVal
	default:
		d.Message = err.Error()
	}
	return d
}
