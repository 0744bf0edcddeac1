package check

import (
	"strings"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/scope"
	"github.com/boltlang/bolt/frontend/types"
)

// checkDeclarations checks the elements of a file or of a module.
// In Collect mode each element is checked in isolation.
func (c *TypeChecker) checkDeclarations(elements []ast.Element) error {
	for _, elem := range elements {
		if _, err := c.isolate(func() error { return c.hoist(elem) }); err != nil {
			return err
		}
	}
	for _, elem := range elements {
		failed, err := c.isolate(func() error { return c.checkElement(elem) })
		if err != nil {
			return err
		}
		if failed {
			c.poison(elem)
		}
	}
	return nil
}

// poison declares the names elem failed to declare, with a type which
// unifies with anything, so that one error is not reported again at every
// use of the name
func (c *TypeChecker) poison(elem ast.Element) {
	switch elem := elem.(type) {
	case *ast.FunctionDecl:
		c.scope.Declare(elem.Name, &scope.FunctionBinding{Scheme: types.Mono(c.fresher.Fresh()), Node: elem})
	case *ast.VariableDecl:
		bind, ok := elem.Pattern.(*ast.BindPattern)
		if !ok {
			return
		}
		var t types.Type = c.fresher.Fresh()
		if elem.Type != nil {
			before := c.snapshot()
			if annotation, err := c.resolveTypeExpr(elem.Type); err == nil {
				t = annotation
			} else {
				c.restore(before)
			}
		}
		c.scope.Declare(bind.Name, &scope.VariableBinding{Mutable: elem.Mutable, Initialized: true, Typed: true, Type: t, Node: elem})
	}
}

// checkBody checks the elements of a block or of a function body, and
// returns the type of the last element if it is an expression statement.
// diverges is set when the last element is a return statement.
func (c *TypeChecker) checkBody(elements []ast.Element) (t types.Type, diverges bool, err error) {
	for _, elem := range elements {
		if err := c.hoist(elem); err != nil {
			return nil, false, err
		}
	}
	for _, elem := range elements {
		if err := c.checkElement(elem); err != nil {
			return nil, false, err
		}
	}
	if len(elements) == 0 {
		return types.Unit, false, nil
	}
	switch last := elements[len(elements)-1].(type) {
	case *ast.ExprStmt:
		return c.TypeOf(last.Expr), false, nil
	case *ast.ReturnStmt:
		return c.fresher.Fresh(), true, nil
	}
	return types.Unit, false, nil
}

// hoist declares what elem makes visible to the whole of its body: types,
// and functions, whose types are only inferred once they are first needed
func (c *TypeChecker) hoist(elem ast.Element) error {
	switch elem := elem.(type) {
	case *ast.RecordDecl:
		record := types.Record{Name: c.qualify(elem.Name)}
		if kind := c.scope.Top().Kind; kind != scope.ModuleFrame && kind != scope.GlobalFrame {
			record.Local = uint32(elem.ID())
		}
		fields := make([]types.Field, len(elem.Fields))
		for i, field := range elem.Fields {
			t, err := c.resolveTypeExpr(field.Type)
			if err != nil {
				return err
			}
			if err = c.setType(field, t); err != nil {
				return err
			}
			fields[i] = types.Field{Name: field.Name, Type: t}
		}
		record.Fields = fields
		c.scope.DeclareType(elem.Name, &scope.TypeBinding{Type: record, Node: elem})
		return c.setType(elem, record)

	case *ast.TypeAliasDecl:
		t, err := c.resolveTypeExpr(elem.Type)
		if err != nil {
			return err
		}
		c.scope.DeclareType(elem.Name, &scope.TypeBinding{Type: t, Node: elem})
		return c.setType(elem, t)

	case *ast.FunctionDecl:
		c.scope.Declare(elem.Name, &scope.FunctionBinding{
			Scheme:  types.Mono(c.fresher.Fresh()),
			Pending: true,
			Node:    elem,
		})
	}
	return nil
}

// qualify prefixes name with the path of the modules enclosing the innermost
// frame. A function inferred on demand only sees the frames of its
// declaration, so this is the path of the module declaring it.
func (c *TypeChecker) qualify(name string) string {
	path := c.scope.ModulePath()
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ".") + "." + name
}

func (c *TypeChecker) checkElement(elem ast.Element) error {
	switch elem := elem.(type) {
	case *ast.ExprStmt:
		t, err := c.infer(elem.Expr)
		if err != nil {
			return err
		}
		return c.setType(elem, t)

	case *ast.ReturnStmt:
		return c.checkReturn(elem)

	case *ast.AssignStmt:
		return c.checkAssign(elem)

	case *ast.VariableDecl:
		return c.checkVariableDecl(elem)

	case *ast.FunctionDecl:
		return c.checkFunctionDecl(elem)

	case *ast.ModuleDecl:
		return c.checkModuleDecl(elem)

	case *ast.RecordDecl, *ast.TypeAliasDecl:
		// declared when hoisted
		return nil
	}
	return bolterr.New(bolterr.InternalError{Message: "unexpected element " + elem.Kind().String()})
}

func (c *TypeChecker) checkReturn(ret *ast.ReturnStmt) error {
	ctx, ok := c.functions.Peek()
	if !ok {
		return bolterr.At(bolterr.New(bolterr.ReturnOutsideFunctionError{}), ret)
	}
	var t types.Type = types.Unit
	if ret.Value != nil {
		var err error
		if t, err = c.infer(ret.Value); err != nil {
			return err
		}
	}
	if err := c.unify(t, ctx.result, ret); err != nil {
		return err
	}
	return c.setType(ret, t)
}

func (c *TypeChecker) checkAssign(assign *ast.AssignStmt) error {
	b, _, err := c.scope.Resolve(assign.Target)
	if err != nil {
		return bolterr.At(err, assign)
	}
	variable, ok := b.(*scope.VariableBinding)
	if !ok {
		return bolterr.At(bolterr.New(bolterr.NotAValueError{Name: assign.Target.String(), What: scope.Describe(b) + " and not a variable,"}), assign)
	}
	if !variable.Mutable {
		return bolterr.At(bolterr.New(bolterr.UninitializedBindingError{Name: assign.Target.String()}), assign)
	}
	value, err := c.infer(assign.Value)
	if err != nil {
		return err
	}
	// the first assignment of an untyped variable binds its placeholder type
	if err := c.unify(value, variable.Type, assign.Value); err != nil {
		return err
	}
	return c.setType(assign, types.Unit)
}

func (c *TypeChecker) checkVariableDecl(decl *ast.VariableDecl) error {
	if lambda, ok := decl.Value.(*ast.FunctionExpr); ok && !decl.Mutable {
		if bind, ok := decl.Pattern.(*ast.BindPattern); ok {
			return c.checkLetFunction(decl, bind, lambda)
		}
	}

	var annotation types.Type
	if decl.Type != nil {
		var err error
		if annotation, err = c.resolveTypeExpr(decl.Type); err != nil {
			return err
		}
	}

	if decl.Value == nil {
		bind, ok := decl.Pattern.(*ast.BindPattern)
		if !ok {
			return bolterr.At(bolterr.New(bolterr.MissingInitializerError{}), decl)
		}
		t, typed := annotation, annotation != nil
		if !typed {
			t = c.fresher.Fresh()
		}
		c.scope.Declare(bind.Name, &scope.VariableBinding{
			Mutable: decl.Mutable,
			Typed:   typed,
			Type:    t,
			Node:    decl,
		})
		if err := c.setType(bind, t); err != nil {
			return err
		}
		return c.setType(decl, t)
	}

	t, err := c.infer(decl.Value)
	if err != nil {
		return err
	}
	if annotation != nil {
		if err := c.unify(t, annotation, decl.Value); err != nil {
			return err
		}
		t = annotation
	}
	if err := c.bindPattern(decl.Pattern, t, decl.Mutable); err != nil {
		return err
	}
	return c.setType(decl, t)
}

func (c *TypeChecker) checkModuleDecl(decl *ast.ModuleDecl) error {
	path := append(append([]string(nil), decl.Name.ModulePath...), decl.Name.Name)
	for _, segment := range path {
		if existing, ok := c.scope.Top().Lookup(segment); ok {
			if mod, ok := existing.(*scope.ModuleBinding); ok {
				c.scope.PushFrame(mod.Members)
				continue
			}
		}
		c.scope.PushModule(segment)
	}

	err := c.checkDeclarations(decl.Elements)

	for i := len(path) - 1; i >= 0; i-- {
		members := c.scope.Pop()
		c.scope.Declare(path[i], &scope.ModuleBinding{Members: members, Node: decl})
	}
	if err != nil {
		return err
	}
	return c.setType(decl, types.Unit)
}
