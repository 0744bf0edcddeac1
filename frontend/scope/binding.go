package scope

import (
	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/types"
)

// Binding is what a name declared in a Frame refers to.
// It is one of *VariableBinding, *FunctionBinding or *ModuleBinding.
//
// Bindings are never modified once declared: a binding which changes, like a
// function once its type is inferred, is declared again in its frame.
type Binding interface {
	// Decl is the node which introduced the binding. It is nil for builtins.
	Decl() ast.Node
	isBinding()
}

// VariableBinding is introduced by a `let` or by a pattern.
//
// Type is never nil. A variable declared without an annotation or an initializer
// gets a fresh type variable, and its type is established by its first
// assignment binding that variable.
type VariableBinding struct {
	Mutable bool
	// Initialized is set when the declaration had an initializer
	Initialized bool
	// Typed is set when Type was fixed at declaration, by an annotation or an initializer
	Typed bool
	Type  types.Type
	Node  ast.Node
}

// IsUnset reports whether b has no type yet under s
func (b *VariableBinding) IsUnset(s types.Subst) bool {
	if b.Typed {
		return false
	}
	v, ok := b.Type.(types.Var)
	if !ok {
		return false
	}
	resolved, isVar := s.Resolve(v).(types.Var)
	return isVar && resolved.ID == v.ID
}

// FunctionBinding is introduced by a function declaration, by a `let` whose
// value is a function expression, and by builtin operators
type FunctionBinding struct {
	Scheme *types.Scheme
	// Pending is set while the type of the function was not inferred yet.
	// Scheme is then the monomorphic placeholder type of the function.
	Pending bool
	Node    ast.Node
}

// ModuleBinding is introduced by a module declaration.
// Members is the frame holding the declarations of the module.
type ModuleBinding struct {
	Members Frame
	Node    ast.Node
}

// TypeBinding is what a type name refers to
type TypeBinding struct {
	Type types.Type
	Node ast.Node
}

func (b *VariableBinding) Decl() ast.Node { return b.Node }
func (b *FunctionBinding) Decl() ast.Node { return b.Node }
func (b *ModuleBinding) Decl() ast.Node   { return b.Node }

func (*VariableBinding) isBinding() {}
func (*FunctionBinding) isBinding() {}
func (*ModuleBinding) isBinding()   {}

// Describe names the kind of b for error messages
func Describe(b Binding) string {
	switch b.(type) {
	case *VariableBinding:
		return "variable"
	case *FunctionBinding:
		return "function"
	case *ModuleBinding:
		return "module"
	}
	return "binding"
}
