package check

import (
	"fmt"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/types"
)

// resolveTypeExpr returns the type denoted by a type annotation
func (c *TypeChecker) resolveTypeExpr(te ast.TypeExpr) (types.Type, error) {
	t, err := c.resolveTypeExprInner(te)
	if err != nil {
		return nil, bolterr.At(err, te)
	}
	return t, c.setType(te, t)
}

func (c *TypeChecker) resolveTypeExprInner(te ast.TypeExpr) (types.Type, error) {
	switch te := te.(type) {
	case *ast.ReferenceTypeExpr:
		tb, err := c.scope.ResolveType(te.Name)
		if err != nil {
			return nil, err
		}
		return tb.Type, nil

	case *ast.FunctionTypeExpr:
		params := make([]types.Type, len(te.Params))
		for i, param := range te.Params {
			t, err := c.resolveTypeExpr(param)
			if err != nil {
				return nil, err
			}
			params[i] = t
		}
		result, err := c.resolveTypeExpr(te.Result)
		if err != nil {
			return nil, err
		}
		return types.Function{Params: params, Result: result}, nil

	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(te.Elements))
		for i, elem := range te.Elements {
			t, err := c.resolveTypeExpr(elem)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return types.Tuple{Elements: elems}, nil
	}
	return nil, bolterr.New(bolterr.InternalError{Message: fmt.Sprintf("unexpected type expression %T", te)})
}
