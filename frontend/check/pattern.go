package check

import (
	"fmt"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/scope"
	"github.com/boltlang/bolt/frontend/types"
)

// bindPattern matches p against a value of type t, declaring the names p
// binds in the innermost frame. The variables are mutable if mutable is set.
func (c *TypeChecker) bindPattern(p ast.Pattern, t types.Type, mutable bool) error {
	t, err := c.bindPatternType(p, t, mutable)
	if err != nil {
		return bolterr.At(err, p)
	}
	return c.setType(p, t)
}

// bindPatternType returns the type of the values matched by p
func (c *TypeChecker) bindPatternType(p ast.Pattern, t types.Type, mutable bool) (types.Type, error) {
	switch p := p.(type) {
	case *ast.BindPattern:
		c.scope.Declare(p.Name, &scope.VariableBinding{
			Mutable:     mutable,
			Initialized: true,
			Typed:       true,
			Type:        t,
			Node:        p,
		})
		return t, nil

	case *ast.ExprPattern:
		own, err := c.infer(p.Expr)
		if err != nil {
			return nil, err
		}
		if err := c.unify(own, t, p); err != nil {
			return nil, err
		}
		return t, nil

	case *ast.TuplePattern:
		elems := c.fresher.FreshN(len(p.Elements))
		if err := c.unify(t, types.Tuple{Elements: elems}, p); err != nil {
			return nil, err
		}
		for i, elem := range p.Elements {
			if err := c.bindPattern(elem, elems[i], mutable); err != nil {
				return nil, err
			}
		}
		return t, nil

	case *ast.RecordPattern:
		return c.bindRecordPattern(p, t, mutable)

	case *ast.TypePattern:
		annotation, err := c.resolveTypeExpr(p.Type)
		if err != nil {
			return nil, err
		}
		if err := c.unify(annotation, t, p); err != nil {
			return nil, err
		}
		if err := c.bindPattern(p.Nested, annotation, mutable); err != nil {
			return nil, err
		}
		return annotation, nil
	}
	return nil, bolterr.New(bolterr.InternalError{Message: fmt.Sprintf("unexpected pattern %T", p)})
}

// bindRecordPattern matches the named fields of a record. Without `..` every
// field of the record must be named.
func (c *TypeChecker) bindRecordPattern(p *ast.RecordPattern, t types.Type, mutable bool) (types.Type, error) {
	record, err := c.resolveRecord(p.Name)
	if err != nil {
		return nil, err
	}
	if err := c.unify(t, record, p); err != nil {
		return nil, err
	}

	named := make(map[string]bool, len(p.Fields))
	for _, field := range p.Fields {
		fieldType, ok := record.FieldType(field.Name)
		if !ok {
			return nil, bolterr.At(bolterr.New(bolterr.UnknownFieldError{Record: record.Name, Field: field.Name}), field)
		}
		named[field.Name] = true
		if field.Pattern == nil {
			// `Point { x }` binds x
			c.scope.Declare(field.Name, &scope.VariableBinding{
				Mutable:     mutable,
				Initialized: true,
				Typed:       true,
				Type:        fieldType,
				Node:        field,
			})
		} else if err := c.bindPattern(field.Pattern, fieldType, mutable); err != nil {
			return nil, err
		}
		if err := c.setType(field, fieldType); err != nil {
			return nil, err
		}
	}
	if !p.Rest {
		for _, name := range record.FieldNames() {
			if !named[name] {
				return nil, bolterr.New(bolterr.MissingFieldError{Record: record.Name, Field: name})
			}
		}
	}
	return record, nil
}
