package check

import (
	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/scope"
	"github.com/boltlang/bolt/frontend/types"
)

// SchemeOf returns the type scheme of the global binding name.
// Variables get a monomorphic scheme.
func (c *TypeChecker) SchemeOf(name ast.QualName) (*types.Scheme, error) {
	b, _, err := c.scope.Resolve(name)
	if err != nil {
		return nil, err
	}
	return c.schemeOf(b), nil
}

func (c *TypeChecker) schemeOf(b scope.Binding) *types.Scheme {
	switch b := b.(type) {
	case *scope.VariableBinding:
		return types.Mono(c.subst.Apply(b.Type))
	case *scope.FunctionBinding:
		return b.Scheme.Apply(c.subst)
	}
	return nil
}

// BindingInfo describes a declaration visible from the global scope
type BindingInfo struct {
	// Name is qualified with the path of the module declaring it
	Name   string
	Kind   string
	Scheme *types.Scheme
	Node   ast.Node
}

// Bindings lists the declarations of the global scope and of the modules
// it contains, in declaration order. Builtins are left out.
func (c *TypeChecker) Bindings() []BindingInfo {
	var out []BindingInfo
	c.collectBindings(c.scope.Global(), "", &out)
	return out
}

func (c *TypeChecker) collectBindings(frame scope.Frame, prefix string, out *[]BindingInfo) {
	for name, b := range frame.All() {
		if b.Decl() == nil {
			continue
		}
		info := BindingInfo{Name: prefix + name, Kind: scope.Describe(b), Scheme: c.schemeOf(b), Node: b.Decl()}
		*out = append(*out, info)
		if mod, ok := b.(*scope.ModuleBinding); ok {
			c.collectBindings(mod.Members, prefix+name+".", out)
		}
	}
}
