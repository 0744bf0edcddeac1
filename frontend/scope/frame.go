package scope

import (
	"iter"

	"github.com/benbjohnson/immutable"
)

type FrameKind uint8

const (
	GlobalFrame FrameKind = iota
	ModuleFrame
	FunctionFrame
	BlockFrame
	MatchArmFrame
)

func (k FrameKind) String() string {
	switch k {
	case GlobalFrame:
		return "global"
	case ModuleFrame:
		return "module"
	case FunctionFrame:
		return "function"
	case BlockFrame:
		return "block"
	case MatchArmFrame:
		return "match arm"
	}
	return "unknown"
}

// ModuleID identifies the frame of a module across the copies made of it
type ModuleID uint64

// Frame maps names to bindings, and type names to types.
//
// A Frame is a value: declaring into it returns a new Frame, and copies
// taken before stay unchanged.
type Frame struct {
	Kind FrameKind
	Name string
	// Module is set for module frames
	Module ModuleID

	values *immutable.Map[string, Binding]
	types  *immutable.Map[string, *TypeBinding]
	// order holds value names in the order they were first declared
	order *immutable.List[string]
}

func NewFrame(kind FrameKind, name string) Frame {
	return Frame{
		Kind:   kind,
		Name:   name,
		values: immutable.NewMap[string, Binding](nil),
		types:  immutable.NewMap[string, *TypeBinding](nil),
		order:  immutable.NewList[string](),
	}
}

// Lookup returns the binding declared as name in f
func (f Frame) Lookup(name string) (Binding, bool) {
	if f.values == nil {
		return nil, false
	}
	return f.values.Get(name)
}

// LookupType returns the type declared as name in f
func (f Frame) LookupType(name string) (*TypeBinding, bool) {
	if f.types == nil {
		return nil, false
	}
	return f.types.Get(name)
}

// With returns f with name bound to b. A binding already declared as name
// is shadowed but keeps its position in the declaration order.
func (f Frame) With(name string, b Binding) Frame {
	if f.values == nil {
		f = f.init()
	}
	if _, exists := f.values.Get(name); !exists {
		f.order = f.order.Append(name)
	}
	f.values = f.values.Set(name, b)
	return f
}

// WithType returns f with the type name bound to t
func (f Frame) WithType(name string, t *TypeBinding) Frame {
	if f.types == nil {
		f = f.init()
	}
	f.types = f.types.Set(name, t)
	return f
}

func (f Frame) init() Frame {
	fresh := NewFrame(f.Kind, f.Name)
	fresh.Module = f.Module
	return fresh
}

func (f Frame) Len() int {
	if f.order == nil {
		return 0
	}
	return f.order.Len()
}

// All iterates over the bindings of f in declaration order
func (f Frame) All() iter.Seq2[string, Binding] {
	return func(yield func(string, Binding) bool) {
		if f.order == nil {
			return
		}
		itr := f.order.Iterator()
		for !itr.Done() {
			_, name := itr.Next()
			b, _ := f.values.Get(name)
			if !yield(name, b) {
				return
			}
		}
	}
}
