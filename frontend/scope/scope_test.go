package scope

import (
	"testing"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intVar() *VariableBinding {
	return &VariableBinding{Initialized: true, Typed: true, Type: types.Int}
}

func TestResolveInnermostFirst(t *testing.T) {
	s := New(NewFrame(GlobalFrame, ""))
	outer := intVar()
	s.Declare("a", outer)
	s.Push(FunctionFrame, "f")
	inner := &VariableBinding{Typed: true, Type: types.String}
	s.Declare("a", inner)

	b, depth, err := s.Resolve(ast.Name("a"))
	require.NoError(t, err)
	assert.Same(t, inner, b)
	assert.Equal(t, 1, depth)

	s.Pop()
	b, depth, err = s.Resolve(ast.Name("a"))
	require.NoError(t, err)
	assert.Same(t, outer, b)
	assert.Equal(t, 0, depth)
}

func TestResolveNotFound(t *testing.T) {
	s := New(NewFrame(GlobalFrame, ""))
	_, _, err := s.Resolve(ast.Name("x"))
	var notFound bolterr.BindingNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "x", notFound.VarName)
}

func TestRedeclarationShadowsInPlace(t *testing.T) {
	s := New(NewFrame(GlobalFrame, ""))
	s.Declare("a", intVar())
	s.Declare("b", intVar())
	second := &VariableBinding{Typed: true, Type: types.Bool}
	s.Declare("a", second)

	var names []string
	for name, b := range s.Global().All() {
		names = append(names, name)
		if name == "a" {
			assert.Same(t, second, b)
		}
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestResolveQualified(t *testing.T) {
	s := New(NewFrame(GlobalFrame, ""))
	s.PushModule("outer")
	s.PushModule("inner")
	leaf := intVar()
	s.Declare("x", leaf)
	s.DeclareType("T", &TypeBinding{Type: types.Bool})
	inner := s.Pop()
	s.Declare("inner", &ModuleBinding{Members: inner})
	outer := s.Pop()
	s.Declare("outer", &ModuleBinding{Members: outer})

	b, depth, err := s.Resolve(ast.QualName{ModulePath: []string{"outer", "inner"}, Name: "x"})
	require.NoError(t, err)
	assert.Same(t, leaf, b)
	assert.Equal(t, -1, depth)

	typ, err := s.ResolveType(ast.QualName{ModulePath: []string{"outer", "inner"}, Name: "T"})
	require.NoError(t, err)
	assert.Equal(t, types.Type(types.Bool), typ.Type)

	testCases := []struct {
		name     string
		qualName ast.QualName
	}{
		{"missing leaf", ast.QualName{ModulePath: []string{"outer", "inner"}, Name: "y"}},
		{"missing segment", ast.QualName{ModulePath: []string{"outer", "nope"}, Name: "x"}},
		{"missing root", ast.QualName{ModulePath: []string{"nope"}, Name: "x"}},
		{"leaf not visible unqualified", ast.Name("x")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := s.Resolve(tc.qualName)
			var notFound bolterr.BindingNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tc.qualName.String(), notFound.VarName)
		})
	}
}

func TestResolveQualifiedThroughValue(t *testing.T) {
	s := New(NewFrame(GlobalFrame, ""))
	s.Declare("a", intVar())
	_, _, err := s.Resolve(ast.QualName{ModulePath: []string{"a"}, Name: "b"})
	var notAValue bolterr.NotAValueError
	assert.ErrorAs(t, err, &notAValue)
}

func TestResolveModuleBeingDeclared(t *testing.T) {
	s := New(NewFrame(GlobalFrame, ""))
	s.PushModule("m")
	s.Declare("early", intVar())
	early := s.Top()
	s.Pop()
	s.Declare("m", &ModuleBinding{Members: early})

	// reopen the module and declare more, the stale binding in global must not hide it
	s.PushFrame(early)
	late := intVar()
	s.Declare("late", late)

	b, depth, err := s.Resolve(ast.QualName{ModulePath: []string{"m"}, Name: "late"})
	require.NoError(t, err)
	assert.Same(t, late, b)
	assert.Equal(t, 1, depth)
}

func TestSnapshotRestore(t *testing.T) {
	s := New(NewFrame(GlobalFrame, ""))
	s.Declare("a", intVar())
	snap := s.Snapshot()

	s.Declare("b", intVar())
	s.Push(BlockFrame, "")
	s.Declare("c", intVar())
	s.Restore(snap)

	assert.Equal(t, 1, s.Depth())
	_, _, err := s.Resolve(ast.Name("b"))
	assert.Error(t, err)
	_, _, err = s.Resolve(ast.Name("a"))
	assert.NoError(t, err)
}

func TestTruncateExtend(t *testing.T) {
	s := New(NewFrame(GlobalFrame, ""))
	s.Push(FunctionFrame, "f")
	s.Declare("local", intVar())
	rest := s.Truncate(1)

	_, _, err := s.Resolve(ast.Name("local"))
	assert.Error(t, err)
	s.Extend(rest)
	_, _, err = s.Resolve(ast.Name("local"))
	assert.NoError(t, err)
}

func TestFreeVars(t *testing.T) {
	f := types.NewFresher()
	a, b, c := f.Fresh(), f.Fresh(), f.Fresh()
	s := New(NewFrame(GlobalFrame, ""))
	s.Declare("x", &VariableBinding{Type: a})
	s.Declare("id", &FunctionBinding{Scheme: types.NewScheme([]types.VarID{b.ID}, types.Function{Params: []types.Type{b}, Result: b})})
	skipped := &VariableBinding{Type: c}
	s.Declare("skipped", skipped)

	subst, err := types.EmptySubst().Bind(a.ID, types.Tuple{Elements: []types.Type{c}})
	require.NoError(t, err)

	vars := s.FreeVars(subst, func(b Binding) bool { return b == skipped })
	assert.True(t, vars.EqualSlice([]types.VarID{c.ID}))

	vars = s.FreeVars(types.EmptySubst(), func(b Binding) bool { return b == skipped })
	assert.True(t, vars.EqualSlice([]types.VarID{a.ID}))
}

func TestIsUnset(t *testing.T) {
	f := types.NewFresher()
	placeholder := f.Fresh()
	b := &VariableBinding{Mutable: true, Type: placeholder}
	assert.True(t, b.IsUnset(types.EmptySubst()))

	subst, err := types.EmptySubst().Bind(placeholder.ID, types.String)
	require.NoError(t, err)
	assert.False(t, b.IsUnset(subst))

	assert.False(t, (&VariableBinding{Typed: true, Type: f.Fresh()}).IsUnset(types.EmptySubst()))
}
