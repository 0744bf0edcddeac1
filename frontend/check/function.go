package check

import (
	"slices"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/scope"
	"github.com/boltlang/bolt/frontend/types"
	"github.com/boltlang/bolt/util"
)

// inferFunction infers the type of a function with params, whose body is
// checked by body. The frame of the parameters is the innermost one while
// body runs.
func (c *TypeChecker) inferFunction(
	params []*ast.Parameter,
	returnType ast.TypeExpr,
	body func() (t types.Type, diverges bool, err error),
) (types.Type, error) {
	c.scope.Push(scope.FunctionFrame, "")
	defer c.scope.Pop()

	paramTypes := make([]types.Type, len(params))
	for i, param := range params {
		var t types.Type
		if param.Type != nil {
			var err error
			if t, err = c.resolveTypeExpr(param.Type); err != nil {
				return nil, err
			}
		} else {
			t = c.fresher.Fresh()
		}
		if err := c.bindPattern(param.Pattern, t, false); err != nil {
			return nil, err
		}
		if err := c.setType(param, t); err != nil {
			return nil, err
		}
		paramTypes[i] = t
	}

	var result types.Type = c.fresher.Fresh()
	if returnType != nil {
		annotation, err := c.resolveTypeExpr(returnType)
		if err != nil {
			return nil, err
		}
		if err := c.unify(result, annotation, returnType); err != nil {
			return nil, err
		}
	}

	c.functions.Push(&fnContext{result: result})
	t, diverges, err := body()
	c.functions.Pop()
	if err != nil {
		return nil, err
	}
	if !diverges {
		if err := c.unify(t, result, nil); err != nil {
			return nil, err
		}
	}
	return types.Function{Params: paramTypes, Result: result}, nil
}

func (c *TypeChecker) checkFunctionDecl(decl *ast.FunctionDecl) error {
	depth := c.scope.Depth() - 1
	b, _ := c.scope.Top().Lookup(decl.Name)
	fb, ok := b.(*scope.FunctionBinding)
	if ok && fb.Node == ast.Node(decl) && !fb.Pending {
		// already inferred because an earlier element referenced it
		return nil
	}
	if c.failed[decl.ID()] {
		// already reported when an earlier element referenced it
		c.poisonFunction(decl, depth)
		return nil
	}
	return c.checkFunctionDeclAt(decl, depth)
}

// checkFunctionDeclAt infers the type of decl, which was hoisted into the
// frame at depth, and generalizes it.
// Only the frames up to depth are visible from the body of decl.
//
// Functions inferred on demand while another function is being checked are
// generalized once on their own, and again together with the outermost one,
// so that the functions of a cycle become polymorphic once the cycle is done.
func (c *TypeChecker) checkFunctionDeclAt(decl *ast.FunctionDecl, depth int) error {
	b, ok := c.scope.At(depth).Lookup(decl.Name)
	placeholder, isFunc := b.(*scope.FunctionBinding)
	if !ok || !isFunc || !placeholder.Pending {
		return bolterr.New(bolterr.InternalError{Message: "function " + decl.Name + " was not hoisted"})
	}

	outermost := len(c.inProgress) == 0
	if outermost {
		c.groupDepth = depth
		defer func() { c.group = nil }()
	}
	c.inProgress[decl.ID()] = true
	defer delete(c.inProgress, decl.ID())

	hidden := c.scope.Truncate(depth + 1)
	defer c.scope.Extend(hidden)
	outerFunctions := c.functions
	c.functions = util.Stack[*fnContext]{}
	defer func() { c.functions = outerFunctions }()

	c.logger.Debug("inferring function", "name", decl.Name)
	t, err := c.inferFunction(decl.Params, decl.ReturnType, func() (types.Type, bool, error) {
		return c.checkBody(decl.Body)
	})
	if err != nil {
		return bolterr.At(err, decl)
	}
	if err := c.unify(t, placeholder.Scheme.Body, decl); err != nil {
		return err
	}
	if err := c.setType(decl, t); err != nil {
		return err
	}

	member := groupMember{decl: decl, depth: depth, t: t}
	if outermost {
		c.generalizeGroup(append(c.group, member))
		return nil
	}
	scheme := c.generalize(t, decl)
	c.logger.Debug("generalized function", "name", decl.Name, "scheme", scheme.String())
	c.scope.Redeclare(depth, decl.Name, &scope.FunctionBinding{Scheme: scheme, Node: decl})
	// functions declared deeper go away with the body of the outermost one
	if depth <= c.groupDepth {
		c.group = append(c.group, member)
	}
	return nil
}

// generalizeGroup generalizes every member, leaving the bindings of all the
// members out of the environment
func (c *TypeChecker) generalizeGroup(members []groupMember) {
	env := c.scope.FreeVars(c.subst, func(b scope.Binding) bool {
		return slices.ContainsFunc(members, func(m groupMember) bool { return b.Decl() == ast.Node(m.decl) })
	})
	for _, m := range members {
		scheme := types.Generalize(c.subst.Apply(m.t), env)
		c.logger.Debug("generalized function", "name", m.decl.Name, "scheme", scheme.String())
		c.scope.Redeclare(m.depth, m.decl.Name, &scope.FunctionBinding{Scheme: scheme, Node: m.decl})
	}
}

// poisonFunction replaces the pending binding of decl, whose body failed, by
// one which unifies with anything
func (c *TypeChecker) poisonFunction(decl *ast.FunctionDecl, depth int) *scope.FunctionBinding {
	b := &scope.FunctionBinding{Scheme: types.Mono(c.fresher.Fresh()), Node: decl}
	c.scope.Redeclare(depth, decl.Name, b)
	return b
}

// checkLetFunction checks `let name = |...| ...`. Inside its own body name
// has the monomorphic type being inferred, and it is generalized afterward.
func (c *TypeChecker) checkLetFunction(decl *ast.VariableDecl, bind *ast.BindPattern, lambda *ast.FunctionExpr) error {
	placeholder := c.fresher.Fresh()
	c.scope.Declare(bind.Name, &scope.FunctionBinding{Scheme: types.Mono(placeholder), Node: decl})

	t, err := c.infer(lambda)
	if err != nil {
		return err
	}
	if err := c.unify(t, placeholder, decl); err != nil {
		return err
	}
	if decl.Type != nil {
		annotation, err := c.resolveTypeExpr(decl.Type)
		if err != nil {
			return err
		}
		if err := c.unify(t, annotation, lambda); err != nil {
			return err
		}
	}

	scheme := c.generalize(t, decl)
	c.logger.Debug("generalized let", "name", bind.Name, "scheme", scheme.String())
	c.scope.Declare(bind.Name, &scope.FunctionBinding{Scheme: scheme, Node: decl})
	if err := c.setType(bind, t); err != nil {
		return err
	}
	return c.setType(decl, t)
}

// generalize quantifies the variables of t which are not free in the scope,
// leaving out the binding introduced by decl itself
func (c *TypeChecker) generalize(t types.Type, decl ast.Node) *types.Scheme {
	env := c.scope.FreeVars(c.subst, func(b scope.Binding) bool {
		return b.Decl() == decl
	})
	return types.Generalize(c.subst.Apply(t), env)
}
