package types

import (
	"testing"

	"github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
)

func TestFresherIsIncreasing(t *testing.T) {
	f := NewFresher()
	a, b, c := f.Fresh(), f.Fresh(), f.Fresh()
	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)
	assert.Equal(t, uint64(3), f.Count())
	assert.Len(t, f.FreshN(4), 4)
	assert.Equal(t, uint64(7), f.Count())
}

func TestPredicates(t *testing.T) {
	fn := Function{Params: []Type{Int}, Result: Bool}
	assert.True(t, IsAtomic(Int))
	assert.False(t, IsAtomic(fn))
	assert.True(t, IsInt(Int))
	assert.False(t, IsInt(String))
	assert.True(t, IsString(String))
	assert.True(t, IsBool(Bool))
	assert.True(t, IsFunction(fn))
	assert.False(t, IsFunction(Int))
	assert.True(t, IsUnit(Unit))
	assert.True(t, IsTuple(Tuple{Elements: []Type{Int}}))
	assert.False(t, IsUnit(Tuple{Elements: []Type{Int}}))
	assert.True(t, IsVar(Var{ID: 1}))
	assert.True(t, IsRecord(Record{Name: "Point"}))
}

func TestShow(t *testing.T) {
	a, b := Var{ID: 7}, Var{ID: 3}
	testCases := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"atom", Int, "int"},
		{"unit", Unit, "()"},
		{"unset", nil, "<unset>"},
		{"identity", Function{Params: []Type{a}, Result: a}, "fn(a) -> a"},
		{"names follow appearance", Function{Params: []Type{a, b}, Result: Tuple{Elements: []Type{b, Int}}}, "fn(a, b) -> (b, int)"},
		{"record", Record{Name: "Point", Fields: []Field{{"x", Int}}}, "Point"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Show(tc.typ))
		})
	}
}

func TestShowAllSharesNames(t *testing.T) {
	a, b := Var{ID: 1}, Var{ID: 2}
	shown := ShowAll(a, Function{Params: []Type{b}, Result: a})
	assert.Equal(t, []string{"a", "fn(b) -> a"}, shown)
}

func TestFreeVarsAndOccurs(t *testing.T) {
	a, b := Var{ID: 1}, Var{ID: 2}
	typ := Function{Params: []Type{a, Tuple{Elements: []Type{String, b}}}, Result: a}
	assert.True(t, FreeVars(typ).EqualSlice([]VarID{1, 2}))
	assert.True(t, Occurs(2, typ))
	assert.False(t, Occurs(3, typ))
	assert.True(t, FreeVars(Int).Empty())
}

func TestEqual(t *testing.T) {
	a := Var{ID: 1}
	assert.True(t, Equal(Function{Params: []Type{a}, Result: Int}, Function{Params: []Type{a}, Result: Int}))
	assert.False(t, Equal(Function{Params: []Type{a}, Result: Int}, Function{Params: []Type{Var{ID: 2}}, Result: Int}))
	assert.False(t, Equal(Int, String))
	assert.False(t, Equal(Record{Name: "A"}, Record{Name: "B"}))
}

func TestStructurallyEqual(t *testing.T) {
	a := Var{ID: 1}
	s, err := EmptySubst().Bind(1, Int)
	assert.NoError(t, err)
	assert.True(t, StructurallyEqual(a, Int, s))
	assert.False(t, StructurallyEqual(a, Int, EmptySubst()))
}

func TestGeneralize(t *testing.T) {
	a, b := Var{ID: 1}, Var{ID: 2}
	fn := Function{Params: []Type{a}, Result: b}

	t.Run("quantifies all vars with an empty env", func(t *testing.T) {
		s := Generalize(fn, set.New[VarID](0))
		assert.Equal(t, []VarID{1, 2}, s.Vars)
		assert.Equal(t, "forall a b. fn(a) -> b", s.String())
	})
	t.Run("keeps env vars free", func(t *testing.T) {
		s := Generalize(fn, set.From([]VarID{2}))
		assert.Equal(t, []VarID{1}, s.Vars)
		assert.True(t, s.FreeVars().EqualSlice([]VarID{2}))
	})
	t.Run("is monomorphic without free vars", func(t *testing.T) {
		s := Generalize(Function{Params: []Type{Int}, Result: Int}, nil)
		assert.True(t, s.IsMono())
		assert.Equal(t, "fn(int) -> int", s.String())
	})
}

func TestNewSchemeSortsAndDedups(t *testing.T) {
	s := NewScheme([]VarID{3, 1, 3, 2, 1}, Var{ID: 1})
	assert.Equal(t, []VarID{1, 2, 3}, s.Vars)
}

func TestInstantiate(t *testing.T) {
	f := NewFresher()
	a, b := f.Fresh(), f.Fresh()
	s := Generalize(Function{Params: []Type{a}, Result: Tuple{Elements: []Type{a, b}}}, set.From([]VarID{b.ID}))

	first := s.Instantiate(f).(Function)
	second := s.Instantiate(f).(Function)

	assert.NotEqual(t, first.Params[0], second.Params[0])
	assert.Equal(t, first.Params[0], first.Result.(Tuple).Elements[0])
	// b is free in the scheme, so every instance shares it
	assert.Equal(t, Type(b), first.Result.(Tuple).Elements[1])
	assert.Equal(t, Type(b), second.Result.(Tuple).Elements[1])
	assert.False(t, FreeVars(first).Contains(a.ID))
}

func TestSchemeApplySkipsQuantified(t *testing.T) {
	a, b := Var{ID: 1}, Var{ID: 2}
	s := NewScheme([]VarID{1}, Function{Params: []Type{a}, Result: b})
	subst := EmptySubst()
	subst, _ = subst.Bind(1, String)
	subst, _ = subst.Bind(2, Int)
	applied := s.Apply(subst)
	assert.Equal(t, Function{Params: []Type{a}, Result: Int}, applied.Body)
}
