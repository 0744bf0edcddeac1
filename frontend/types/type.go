package types

import (
	"fmt"
	"slices"
	"strings"
)

// VarID is the identity of a type variable. Ids are handed out by a Fresher
// in strictly increasing order, and carry no name.
type VarID uint64

// Type is a closed sum: one of Var, Atom, Function, Tuple or Record
type Type interface {
	fmt.Stringer
	isType()
}

// Var is a type variable
type Var struct {
	ID VarID
}

// Atom is a builtin type without structure
type Atom uint8

const (
	Int Atom = iota + 1
	String
	Bool
)

// Function is the type of a function taking Params and returning Result
type Function struct {
	Params []Type
	Result Type
}

// Tuple is a fixed-size product. The empty Tuple is the unit type.
type Tuple struct {
	Elements []Type
}

// Record is a nominal product with named fields, kept in declaration order
type Record struct {
	Name string
	// Local tells apart records of the same name declared in different
	// function bodies or blocks. It is zero for records declared in a module
	// or at the top of a file, whose qualified name is unique.
	Local  uint32
	Fields []Field
}

type Field struct {
	Name string
	Type Type
}

// Unit is the type of statements and of functions which return nothing
var Unit = Tuple{}

func (Var) isType()      {}
func (Atom) isType()     {}
func (Function) isType() {}
func (Tuple) isType()    {}
func (Record) isType()   {}

func (v Var) String() string {
	return fmt.Sprintf("'t%d", v.ID)
}

func (a Atom) String() string {
	switch a {
	case Int:
		return "int"
	case String:
		return "string"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("atom(%d)", uint8(a))
}

func (f Function) String() string {
	return Show(f)
}

func (t Tuple) String() string {
	return Show(t)
}

func (r Record) String() string {
	return Show(r)
}

// FieldType returns the type of the field called name
func (r Record) FieldType(name string) (Type, bool) {
	i := slices.IndexFunc(r.Fields, func(f Field) bool { return f.Name == name })
	if i < 0 {
		return nil, false
	}
	return r.Fields[i].Type, true
}

// FieldNames returns the names of r's fields in declaration order
func (r Record) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// IsAtomic reports whether t is one of the builtin atoms
func IsAtomic(t Type) bool {
	_, ok := t.(Atom)
	return ok
}

func IsInt(t Type) bool    { return t == Int }
func IsString(t Type) bool { return t == String }
func IsBool(t Type) bool   { return t == Bool }

func IsVar(t Type) bool {
	_, ok := t.(Var)
	return ok
}

func IsFunction(t Type) bool {
	_, ok := t.(Function)
	return ok
}

func IsTuple(t Type) bool {
	_, ok := t.(Tuple)
	return ok
}

func IsUnit(t Type) bool {
	tuple, ok := t.(Tuple)
	return ok && len(tuple.Elements) == 0
}

func IsRecord(t Type) bool {
	_, ok := t.(Record)
	return ok
}

// StructurallyEqual reports whether a and b are the same type once s is applied to both.
// It is a shortcut for callers that want to skip work: only unification decides
// whether two types can be made equal.
func StructurallyEqual(a, b Type, s Subst) bool {
	return Equal(s.Apply(a), s.Apply(b))
}

// Equal is syntactic equality of types, with type variables compared by identity
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Var:
		b, ok := b.(Var)
		return ok && a.ID == b.ID
	case Atom:
		b, ok := b.(Atom)
		return ok && a == b
	case Function:
		b, ok := b.(Function)
		return ok && slices.EqualFunc(a.Params, b.Params, Equal) && Equal(a.Result, b.Result)
	case Tuple:
		b, ok := b.(Tuple)
		return ok && slices.EqualFunc(a.Elements, b.Elements, Equal)
	case Record:
		b, ok := b.(Record)
		return ok && a.Name == b.Name && a.Local == b.Local && slices.EqualFunc(a.Fields, b.Fields, func(f1, f2 Field) bool {
			return f1.Name == f2.Name && Equal(f1.Type, f2.Type)
		})
	}
	return false
}

// Map rebuilds t bottom-up, replacing every type variable by f's result
func Map(t Type, f func(Var) Type) Type {
	switch t := t.(type) {
	case Var:
		return f(t)
	case Atom:
		return t
	case Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Map(p, f)
		}
		return Function{Params: params, Result: Map(t.Result, f)}
	case Tuple:
		if len(t.Elements) == 0 {
			return t
		}
		elems := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = Map(e, f)
		}
		return Tuple{Elements: elems}
	case Record:
		fields := make([]Field, len(t.Fields))
		for i, field := range t.Fields {
			fields[i] = Field{Name: field.Name, Type: Map(field.Type, f)}
		}
		return Record{Name: t.Name, Local: t.Local, Fields: fields}
	}
	panic(fmt.Sprintf("unexpected type %T", t))
}

func joinTypes(ts []Type, sep string, show func(Type) string) string {
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = show(t)
	}
	return strings.Join(strs, sep)
}
