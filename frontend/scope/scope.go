// Package scope resolves names to the bindings declared for them.
package scope

import (
	"iter"
	"slices"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/types"
	"github.com/boltlang/bolt/util"
	"github.com/hashicorp/go-set/v3"
)

// Scope is the chain of frames visible at a point of the program,
// outermost (global) first.
type Scope struct {
	frames     []Frame
	nextModule ModuleID
}

// New returns a scope whose only frame is global
func New(global Frame) *Scope {
	return &Scope{frames: []Frame{global}}
}

func (s *Scope) Depth() int {
	return len(s.frames)
}

// Top returns the innermost frame
func (s *Scope) Top() Frame {
	return s.frames[len(s.frames)-1]
}

// At returns the frame at depth, 0 being the global frame
func (s *Scope) At(depth int) Frame {
	return s.frames[depth]
}

// Global returns the outermost frame
func (s *Scope) Global() Frame {
	return s.frames[0]
}

// Frames iterates over the frames innermost-first
func (s *Scope) Frames() iter.Seq[Frame] {
	return util.Reverse(s.frames)
}

func (s *Scope) Push(kind FrameKind, name string) {
	s.PushFrame(NewFrame(kind, name))
}

// PushModule pushes the frame of a new module
func (s *Scope) PushModule(name string) {
	f := NewFrame(ModuleFrame, name)
	s.nextModule++
	f.Module = s.nextModule
	s.PushFrame(f)
}

func (s *Scope) PushFrame(f Frame) {
	s.frames = append(s.frames, f)
}

// ModulePath returns the names of the module frames of s, outermost first
func (s *Scope) ModulePath() []string {
	var path []string
	for _, f := range s.frames {
		if f.Kind == ModuleFrame {
			path = append(path, f.Name)
		}
	}
	return path
}

// Pop removes the innermost frame and returns it
func (s *Scope) Pop() Frame {
	if len(s.frames) == 1 {
		panic("cannot pop the global frame")
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Declare binds name in the innermost frame, shadowing any binding of the
// same name in that frame
func (s *Scope) Declare(name string, b Binding) {
	top := len(s.frames) - 1
	s.frames[top] = s.frames[top].With(name, b)
}

// DeclareType binds the type name in the innermost frame
func (s *Scope) DeclareType(name string, t *TypeBinding) {
	top := len(s.frames) - 1
	s.frames[top] = s.frames[top].WithType(name, t)
}

// Redeclare replaces the binding of name in the frame at depth
func (s *Scope) Redeclare(depth int, name string, b Binding) {
	s.frames[depth] = s.frames[depth].With(name, b)
}

// Snapshot returns the state of s, to be passed to Restore
func (s *Scope) Snapshot() []Frame {
	return slices.Clone(s.frames)
}

// Restore brings s back to the state of a previous Snapshot
func (s *Scope) Restore(frames []Frame) {
	s.frames = slices.Clone(frames)
}

// Truncate keeps only the frames below depth and returns the others,
// so that they can be put back with Extend
func (s *Scope) Truncate(depth int) []Frame {
	rest := slices.Clone(s.frames[depth:])
	s.frames = s.frames[:depth]
	return rest
}

func (s *Scope) Extend(frames []Frame) {
	s.frames = append(s.frames, frames...)
}

// Resolve looks up name.
//
// The first segment of the module path is looked up innermost-first, the
// following ones inside the module found so far, and the leaf name inside the
// last module. An unqualified name is looked up innermost-first.
// depth is the index of the frame holding the binding, or -1 if that frame
// is not on the scope.
func (s *Scope) Resolve(name ast.QualName) (b Binding, depth int, err error) {
	if !name.IsQualified() {
		for i := len(s.frames) - 1; i >= 0; i-- {
			if b, ok := s.frames[i].Lookup(name.Name); ok {
				return b, i, nil
			}
		}
		return nil, -1, bolterr.New(bolterr.BindingNotFoundError{VarName: name.String()})
	}

	frame, depth, err := s.resolveModule(name)
	if err != nil {
		return nil, -1, err
	}
	b, ok := frame.Lookup(name.Name)
	if !ok {
		return nil, -1, bolterr.New(bolterr.BindingNotFoundError{VarName: name.String()})
	}
	return b, depth, nil
}

// ResolveType looks up a type name, following the same rules as Resolve
func (s *Scope) ResolveType(name ast.QualName) (*TypeBinding, error) {
	if !name.IsQualified() {
		for frame := range s.Frames() {
			if t, ok := frame.LookupType(name.Name); ok {
				return t, nil
			}
		}
		return nil, bolterr.New(bolterr.TypeNotFoundError{TypeName: name.String()})
	}
	frame, _, err := s.resolveModule(name)
	if err != nil {
		return nil, err
	}
	t, ok := frame.LookupType(name.Name)
	if !ok {
		return nil, bolterr.New(bolterr.TypeNotFoundError{TypeName: name.String()})
	}
	return t, nil
}

// resolveModule returns the frame of the module holding the leaf of name
func (s *Scope) resolveModule(name ast.QualName) (Frame, int, error) {
	notFound := func() error {
		return bolterr.New(bolterr.BindingNotFoundError{VarName: name.String()})
	}
	first, _, err := s.Resolve(ast.Name(name.ModulePath[0]))
	if err != nil {
		return Frame{}, -1, notFound()
	}
	mod, ok := first.(*ModuleBinding)
	if !ok {
		return Frame{}, -1, bolterr.New(bolterr.NotAValueError{Name: name.ModulePath[0], What: Describe(first) + ", not a module,"})
	}
	frame, depth := s.live(mod.Members)
	for _, segment := range name.ModulePath[1:] {
		b, ok := frame.Lookup(segment)
		if !ok {
			return Frame{}, -1, notFound()
		}
		mod, ok = b.(*ModuleBinding)
		if !ok {
			return Frame{}, -1, bolterr.New(bolterr.NotAValueError{Name: segment, What: Describe(b) + ", not a module,"})
		}
		frame, depth = s.live(mod.Members)
	}
	return frame, depth, nil
}

// live returns the copy of the module frame f which is on the scope, if the
// module is being declared, so that its members declared so far are visible
func (s *Scope) live(f Frame) (Frame, int) {
	if f.Module != 0 {
		for i := len(s.frames) - 1; i >= 0; i-- {
			if s.frames[i].Module == f.Module {
				return s.frames[i], i
			}
		}
	}
	return f, -1
}

// FreeVars collects the type variables free in the bindings of every frame,
// with subst applied. Bindings for which skip returns true are ignored.
func (s *Scope) FreeVars(subst types.Subst, skip func(Binding) bool) *set.Set[types.VarID] {
	vars := set.New[types.VarID](0)
	for _, frame := range s.frames {
		frameFreeVars(frame, subst, skip, vars)
	}
	return vars
}

func frameFreeVars(frame Frame, subst types.Subst, skip func(Binding) bool, into *set.Set[types.VarID]) {
	for _, b := range frame.All() {
		if skip != nil && skip(b) {
			continue
		}
		switch b := b.(type) {
		case *VariableBinding:
			types.FreeVarsInto(subst.Apply(b.Type), into)
		case *FunctionBinding:
			into.InsertSet(b.Scheme.Apply(subst).FreeVars())
		case *ModuleBinding:
			frameFreeVars(b.Members, subst, skip, into)
		}
	}
}
