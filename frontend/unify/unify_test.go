package unify

import (
	"testing"

	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fn(result types.Type, params ...types.Type) types.Function {
	return types.Function{Params: params, Result: result}
}

func tuple(elems ...types.Type) types.Tuple {
	return types.Tuple{Elements: elems}
}

func TestUnifySucceeds(t *testing.T) {
	f := types.NewFresher()
	a, b, c := f.Fresh(), f.Fresh(), f.Fresh()

	testCases := []struct {
		name  string
		left  types.Type
		right types.Type
		// check holds pairs that must resolve to the same type afterward
		check [][2]types.Type
	}{
		{"same atom", types.Int, types.Int, nil},
		{"var on the left", a, types.String, [][2]types.Type{{a, types.String}}},
		{"var on the right", types.Bool, a, [][2]types.Type{{a, types.Bool}}},
		{"var with var", a, b, [][2]types.Type{{a, b}}},
		{"function", fn(b, a), fn(types.Int, types.String), [][2]types.Type{{a, types.String}, {b, types.Int}}},
		{"params thread the substitution", fn(types.Unit, a, a), fn(types.Unit, types.Int, b), [][2]types.Type{{b, types.Int}}},
		{"tuple", tuple(a, types.Int), tuple(types.Bool, b), [][2]types.Type{{a, types.Bool}, {b, types.Int}}},
		{"nested", fn(tuple(a, c), b), fn(tuple(b, types.String), types.Int), [][2]types.Type{{a, types.Int}, {c, types.String}}},
		{
			"record",
			types.Record{Name: "P", Fields: []types.Field{{Name: "x", Type: a}}},
			types.Record{Name: "P", Fields: []types.Field{{Name: "x", Type: types.Int}}},
			[][2]types.Type{{a, types.Int}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Unify(tc.left, tc.right, types.EmptySubst())
			require.NoError(t, err)
			assert.True(t, types.Equal(s.Apply(tc.left), s.Apply(tc.right)))
			assert.True(t, s.IsIdempotent())
			for _, pair := range tc.check {
				assert.Equal(t, s.Apply(pair[1]), s.Apply(pair[0]))
			}
		})
	}
}

func TestUnifyFails(t *testing.T) {
	f := types.NewFresher()
	a := f.Fresh()

	testCases := []struct {
		name          string
		left, right   types.Type
		expectedLeft  types.Type
		expectedRight types.Type
		occurs        bool
	}{
		{"atoms", types.Int, types.String, types.Int, types.String, false},
		{"atom and function", types.Int, fn(types.Int), types.Int, fn(types.Int), false},
		{"arity", fn(types.Int, types.Int), fn(types.Int), fn(types.Int, types.Int), fn(types.Int), false},
		{"tuple size", tuple(types.Int), tuple(), tuple(types.Int), tuple(), false},
		{"reports the innermost pair", fn(types.Int, types.Bool), fn(types.Int, types.String), types.Bool, types.String, false},
		{"record names", types.Record{Name: "A"}, types.Record{Name: "B"}, types.Record{Name: "A"}, types.Record{Name: "B"}, false},
		{"occurs check", a, fn(types.Int, a), a, fn(types.Int, a), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := types.EmptySubst()
			s, err := Unify(tc.left, tc.right, before)
			var uErr bolterr.UnificationError
			require.ErrorAs(t, err, &uErr)
			assert.Equal(t, tc.expectedLeft, uErr.Left)
			assert.Equal(t, tc.expectedRight, uErr.Right)
			assert.Equal(t, tc.occurs, uErr.Occurs)
			assert.Equal(t, bolterr.Unification, uErr.Code())
			assert.True(t, s.Equal(before))
		})
	}
}

func TestUnifyLeavesSubstOnFailure(t *testing.T) {
	f := types.NewFresher()
	a, b := f.Fresh(), f.Fresh()
	// a is bound while unifying the first parameter, before the result mismatches
	s, err := Unify(fn(types.Int, a), fn(types.String, types.Bool), types.EmptySubst())
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())

	start, err := Unify(b, types.Int, types.EmptySubst())
	require.NoError(t, err)
	s, err = Unify(b, types.String, start)
	assert.Error(t, err)
	assert.True(t, s.Equal(start))
}

func TestUnifyReportsBoundVariablesResolved(t *testing.T) {
	f := types.NewFresher()
	a, b := f.Fresh(), f.Fresh()
	start, err := Unify(a, types.Int, types.EmptySubst())
	require.NoError(t, err)

	_, err = Unify(types.String, a, start)
	var uErr bolterr.UnificationError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, types.String, uErr.Left)
	assert.Equal(t, types.Int, uErr.Right)

	_, err = Unify(fn(a), tuple(b), start)
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, fn(a), uErr.Left)
}

func TestUnifyIsIdempotent(t *testing.T) {
	f := types.NewFresher()
	a, b, c := f.Fresh(), f.Fresh(), f.Fresh()
	left := fn(tuple(a, b), c, a)
	right := fn(tuple(types.Int, c), types.Int, b)

	s, err := Unify(left, right, types.EmptySubst())
	require.NoError(t, err)
	again, err := Unify(left, right, s)
	require.NoError(t, err)
	assert.True(t, again.Equal(s))
}

func TestUnifyResolvesThroughSubst(t *testing.T) {
	f := types.NewFresher()
	a, b := f.Fresh(), f.Fresh()
	s, err := Unify(a, fn(types.Int, b), types.EmptySubst())
	require.NoError(t, err)

	_, err = Unify(a, fn(types.Int, types.Bool), s)
	assert.NoError(t, err)

	_, err = Unify(b, fn(types.Int, a), s)
	var uErr bolterr.UnificationError
	require.ErrorAs(t, err, &uErr)
	assert.True(t, uErr.Occurs)
}
