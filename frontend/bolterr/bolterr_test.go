package bolterr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtKeepsTheInnermostNode(t *testing.T) {
	b := ast.NewBuilder()
	inner, outer := b.Ref("x"), b.Ref("y")

	err := At(New(BindingNotFoundError{VarName: "x"}), inner)
	err = At(err, outer)

	var notFound BindingNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Same(t, inner, notFound.Node())
	assert.Equal(t, "x", notFound.VarName)

	plain := fmt.Errorf("plain")
	assert.Equal(t, plain, At(plain, inner))
}

func TestFormatWithCode(t *testing.T) {
	err := New(UnificationError{Left: types.Int, Right: types.String})
	assert.Equal(t, "(E003) "+err.Error(), FormatWithCode(err))
	assert.Contains(t, err.Error(), "int")
	assert.Contains(t, err.Error(), "string")
}

func TestErrors(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.NoError(t, errs.AsError())
	assert.Empty(t, errs.Errors())

	errs = errs.With(New(BindingNotFoundError{VarName: "a"}))
	errs = errs.Merge((*Errors)(nil).With(New(TooFewArgumentsError{Expected: 2, Actual: 1})))
	require.Len(t, errs.Errors(), 2)
	require.Error(t, errs.AsError())

	var arity TooFewArgumentsError
	require.ErrorAs(t, errs, &arity)
	assert.Equal(t, 2, arity.Expected)
	assert.Contains(t, errs.Error(), "(E001)")
	assert.Contains(t, errs.Error(), "(E006)")
}

func TestFlatten(t *testing.T) {
	errs := (*Errors)(nil).With(New(BindingNotFoundError{VarName: "a"}), New(MissingInitializerError{}))
	assert.Len(t, Flatten(errs), 2)
	assert.Len(t, Flatten(errors.Join(errs, New(ReturnOutsideFunctionError{}))), 3)
	assert.Nil(t, Flatten(nil))

	wrapped := Flatten(fmt.Errorf("disk full"))
	require.Len(t, wrapped, 1)
	assert.Equal(t, None, wrapped[0].Code())
	assert.ErrorContains(t, wrapped[0], "disk full")
}
