package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstApply(t *testing.T) {
	a, b := Var{ID: 1}, Var{ID: 2}
	s, err := EmptySubst().Bind(a.ID, Int)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		typ      Type
		expected Type
	}{
		{"bound var", a, Int},
		{"free var", b, b},
		{"atom", String, String},
		{"nested", Function{Params: []Type{a, b}, Result: Tuple{Elements: []Type{a}}}, Function{Params: []Type{Int, b}, Result: Tuple{Elements: []Type{Int}}}},
		{"record", Record{Name: "Box", Fields: []Field{{"v", a}}}, Record{Name: "Box", Fields: []Field{{"v", Int}}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, s.Apply(tc.typ))
		})
	}
}

func TestSubstIsImmutable(t *testing.T) {
	empty := EmptySubst()
	s, err := empty.Bind(1, Int)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, s.Len())

	var zero Subst
	assert.Equal(t, Type(Var{ID: 1}), zero.Apply(Var{ID: 1}))
	s2, err := zero.Bind(1, Bool)
	require.NoError(t, err)
	assert.Equal(t, Type(Bool), s2.Apply(Var{ID: 1}))
}

func TestSubstBindOccursCheck(t *testing.T) {
	a := Var{ID: 1}
	_, err := EmptySubst().Bind(a.ID, Function{Params: []Type{a}, Result: Int})
	var occurs *OccursError
	assert.ErrorAs(t, err, &occurs)
	assert.Equal(t, a, occurs.Var)
}

func TestSubstBindSelf(t *testing.T) {
	a := Var{ID: 1}
	s, err := EmptySubst().Bind(a.ID, a)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestSubstBindKeepsIdempotence(t *testing.T) {
	a, b, c := Var{ID: 1}, Var{ID: 2}, Var{ID: 3}
	s, err := EmptySubst().Bind(a.ID, Function{Params: []Type{b}, Result: c})
	require.NoError(t, err)
	s, err = s.Bind(b.ID, Int)
	require.NoError(t, err)
	s, err = s.Bind(c.ID, b)
	require.NoError(t, err)

	assert.True(t, s.IsIdempotent())
	assert.Equal(t, Function{Params: []Type{Int}, Result: Int}, s.Apply(a))
	assert.Equal(t, s.Apply(a), s.Apply(s.Apply(a)))
}

func TestSubstBindRejectsRebinding(t *testing.T) {
	s, err := EmptySubst().Bind(1, Int)
	require.NoError(t, err)
	_, err = s.Bind(1, String)
	assert.Error(t, err)
}

func TestCompose(t *testing.T) {
	a, b := Var{ID: 1}, Var{ID: 2}
	older, _ := EmptySubst().Bind(a.ID, Tuple{Elements: []Type{b}})
	newer, _ := EmptySubst().Bind(b.ID, String)

	composed := Compose(older, newer)
	assert.Equal(t, Tuple{Elements: []Type{String}}, composed.Apply(a))
	assert.Equal(t, Type(String), composed.Apply(b))
	assert.True(t, composed.IsIdempotent())

	t.Run("newer wins on collision", func(t *testing.T) {
		first, _ := EmptySubst().Bind(a.ID, Int)
		second, _ := EmptySubst().Bind(a.ID, Bool)
		assert.Equal(t, Type(Bool), Compose(first, second).Apply(a))
	})
	t.Run("applying the composition is applying both in order", func(t *testing.T) {
		typ := Function{Params: []Type{a}, Result: b}
		assert.Equal(t, newer.Apply(older.Apply(typ)), composed.Apply(typ))
	})
}

func TestSubstEqual(t *testing.T) {
	s1, _ := EmptySubst().Bind(1, Int)
	s2, _ := EmptySubst().Bind(1, Int)
	s3, _ := EmptySubst().Bind(1, String)
	assert.True(t, s1.Equal(s2))
	assert.False(t, s1.Equal(s3))
	assert.False(t, s1.Equal(EmptySubst()))
}
