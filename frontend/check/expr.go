package check

import (
	"fmt"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/scope"
	"github.com/boltlang/bolt/frontend/types"
)

// infer returns the type of e and caches it
func (c *TypeChecker) infer(e ast.Expr) (types.Type, error) {
	t, err := c.inferExpr(e)
	if err != nil {
		return nil, bolterr.At(err, e)
	}
	if err = c.setType(e, t); err != nil {
		return nil, err
	}
	c.logger.Debug("inferred", "expr", e, "type", types.Slog(t))
	return t, nil
}

func (c *TypeChecker) inferExpr(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.ConstantExpr:
		switch e.Value.(type) {
		case ast.IntLit:
			return types.Int, nil
		case ast.StrLit:
			return types.String, nil
		case ast.BoolLit:
			return types.Bool, nil
		}
		return nil, bolterr.New(bolterr.InternalError{Message: fmt.Sprintf("unexpected literal %T", e.Value)})

	case *ast.ReferenceExpr:
		return c.inferReference(e)

	case *ast.CallExpr:
		return c.inferCall(e)

	case *ast.FunctionExpr:
		return c.inferFunction(e.Params, e.ReturnType, func() (types.Type, bool, error) {
			t, err := c.infer(e.Body)
			return t, false, err
		})

	case *ast.MatchExpr:
		return c.inferMatch(e)

	case *ast.BlockExpr:
		c.scope.Push(scope.BlockFrame, "")
		t, _, err := c.checkBody(e.Elements)
		c.scope.Pop()
		return t, err

	case *ast.TupleExpr:
		elems := make([]types.Type, len(e.Elements))
		for i, elem := range e.Elements {
			t, err := c.infer(elem)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return types.Tuple{Elements: elems}, nil

	case *ast.RecordExpr:
		return c.inferRecord(e)
	}
	return nil, bolterr.New(bolterr.InternalError{Message: fmt.Sprintf("unexpected expression %T", e)})
}

func (c *TypeChecker) inferReference(ref *ast.ReferenceExpr) (types.Type, error) {
	b, depth, err := c.scope.Resolve(ref.Name)
	if err != nil {
		return nil, err
	}
	switch b := b.(type) {
	case *scope.VariableBinding:
		if b.IsUnset(c.subst) || !b.Mutable && !b.Initialized {
			return nil, bolterr.New(bolterr.UnassignedReferenceError{Name: ref.Name.String()})
		}
		return b.Type, nil

	case *scope.FunctionBinding:
		if b.Pending {
			if b, err = c.inferPending(ref.Name, b, depth); err != nil {
				return nil, err
			}
		}
		return b.Scheme.Instantiate(c.fresher), nil

	case *scope.ModuleBinding:
		return nil, bolterr.New(bolterr.NotAValueError{Name: ref.Name.String(), What: "module"})
	}
	return nil, bolterr.New(bolterr.InternalError{Message: fmt.Sprintf("unexpected binding %T", b)})
}

// inferPending infers the type of a function declaration referenced before
// its declaration was checked, and returns its new binding.
// The placeholder binding of a function whose body is being checked is
// returned as it is, so that recursive references stay monomorphic.
func (c *TypeChecker) inferPending(name ast.QualName, b *scope.FunctionBinding, depth int) (*scope.FunctionBinding, error) {
	decl, ok := b.Node.(*ast.FunctionDecl)
	if !ok || c.inProgress[decl.ID()] || depth < 0 {
		return b, nil
	}
	if c.failed[decl.ID()] {
		return c.poisonFunction(decl, depth), nil
	}
	if c.config.Mode == Collect {
		// the error belongs to the declaration and not to the reference, so
		// it is reported here and the declaration is not checked again
		before, members := c.snapshot(), len(c.group)
		if err := c.checkFunctionDeclAt(decl, depth); err != nil {
			c.restore(before)
			c.group = c.group[:min(members, len(c.group))]
			c.report(err)
			c.failed[decl.ID()] = true
			return c.poisonFunction(decl, depth), nil
		}
	} else if err := c.checkFunctionDeclAt(decl, depth); err != nil {
		return nil, err
	}
	resolved, _, err := c.scope.Resolve(name)
	if err != nil {
		return nil, err
	}
	fb, ok := resolved.(*scope.FunctionBinding)
	if !ok {
		return nil, bolterr.New(bolterr.InternalError{Message: "function " + name.String() + " was redeclared while inferring it"})
	}
	return fb, nil
}

func (c *TypeChecker) inferCall(call *ast.CallExpr) (types.Type, error) {
	operator, err := c.infer(call.Operator)
	if err != nil {
		return nil, err
	}
	args := make([]types.Type, len(call.Operands))
	for i, operand := range call.Operands {
		if args[i], err = c.infer(operand); err != nil {
			return nil, err
		}
	}

	if known, ok := c.subst.Resolve(operator).(types.Function); ok {
		switch {
		case len(args) < len(known.Params):
			return nil, bolterr.New(bolterr.TooFewArgumentsError{Expected: len(known.Params), Actual: len(args)})
		case len(args) > len(known.Params):
			return nil, bolterr.New(bolterr.TooManyArgumentsError{Expected: len(known.Params), Actual: len(args)})
		}
	}

	result := c.fresher.Fresh()
	if err := c.unify(operator, types.Function{Params: args, Result: result}, call); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *TypeChecker) inferMatch(match *ast.MatchExpr) (types.Type, error) {
	value, err := c.infer(match.Value)
	if err != nil {
		return nil, err
	}
	result := c.fresher.Fresh()
	for _, arm := range match.Arms {
		c.scope.Push(scope.MatchArmFrame, "")
		err := c.checkArm(arm, value, result)
		c.scope.Pop()
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (c *TypeChecker) checkArm(arm *ast.MatchArm, value, result types.Type) error {
	if err := c.bindPattern(arm.Pattern, value, false); err != nil {
		return err
	}
	body, err := c.infer(arm.Body)
	if err != nil {
		return err
	}
	if err := c.unify(body, result, arm.Body); err != nil {
		return err
	}
	return c.setType(arm, body)
}

func (c *TypeChecker) inferRecord(e *ast.RecordExpr) (types.Type, error) {
	record, err := c.resolveRecord(e.Name)
	if err != nil {
		return nil, err
	}
	given := make(map[string]bool, len(e.Fields))
	for _, field := range e.Fields {
		expected, ok := record.FieldType(field.Name)
		if !ok {
			return nil, bolterr.At(bolterr.New(bolterr.UnknownFieldError{Record: record.Name, Field: field.Name}), field)
		}
		given[field.Name] = true
		t, err := c.infer(field.Value)
		if err != nil {
			return nil, err
		}
		if err := c.unify(t, expected, field.Value); err != nil {
			return nil, err
		}
		if err := c.setType(field, expected); err != nil {
			return nil, err
		}
	}
	for _, name := range record.FieldNames() {
		if !given[name] {
			return nil, bolterr.New(bolterr.MissingFieldError{Record: record.Name, Field: name})
		}
	}
	return record, nil
}

// resolveRecord looks up a type name which must be a record
func (c *TypeChecker) resolveRecord(name ast.QualName) (types.Record, error) {
	tb, err := c.scope.ResolveType(name)
	if err != nil {
		return types.Record{}, err
	}
	record, ok := tb.Type.(types.Record)
	if !ok {
		return types.Record{}, bolterr.New(bolterr.NotARecordError{TypeName: name.String(), Type: tb.Type})
	}
	return record, nil
}
