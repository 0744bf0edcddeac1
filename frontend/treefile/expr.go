package treefile

import (
	"github.com/boltlang/bolt/frontend/ast"
	"gopkg.in/yaml.v3"
)

// requiredExpr reads the expression at n, which owner must have
func (p *parser) requiredExpr(owner, n *yaml.Node, what string) (ast.Expr, error) {
	if n == nil {
		return nil, p.errorf(owner, "%s needs a value", what)
	}
	return p.expr(n)
}

func (p *parser) exprs(n *yaml.Node, what string) ([]ast.Expr, error) {
	items, err := p.sequence(n, what)
	if err != nil {
		return nil, err
	}
	out := make([]ast.Expr, len(items))
	for i, item := range items {
		if out[i], err = p.expr(item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *parser) expr(n *yaml.Node) (ast.Expr, error) {
	if n.Kind == yaml.ScalarNode {
		lit, ok, err := p.literal(n)
		if err != nil || ok {
			return lit, err
		}
		if n.Value == "" || isNull(n) {
			return nil, p.errorf(n, "expected an expression")
		}
		return at(p, n, p.b.Ref(n.Value)), nil
	}

	kind, value, err := p.single(n, "an expression")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "int", "bool":
		lit, ok, err := p.literal(value)
		if err != nil {
			return nil, err
		}
		if !ok || value.ShortTag() != "!!"+kind {
			return nil, p.errorf(value, "expected a literal of type %s", kind)
		}
		return at(p, n, lit), nil

	case "string":
		return at(p, n, p.b.Str(value.Value)), nil

	case "ref":
		name, err := p.name(value, "ref")
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Ref(name)), nil

	case "call":
		obj, err := p.object(value, "call", "fn", "args")
		if err != nil {
			return nil, err
		}
		operator, err := p.requiredExpr(value, obj["fn"], "call")
		if err != nil {
			return nil, err
		}
		args, err := p.exprs(obj["args"], "args")
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Call(operator, args...)), nil

	case "binary":
		obj, err := p.object(value, "binary", "op", "left", "right")
		if err != nil {
			return nil, err
		}
		op, err := p.name(obj["op"], "binary")
		if err != nil {
			return nil, err
		}
		left, err := p.requiredExpr(value, obj["left"], "binary")
		if err != nil {
			return nil, err
		}
		right, err := p.requiredExpr(value, obj["right"], "binary")
		if err != nil {
			return nil, err
		}
		call := at(p, n, p.b.Binary(left, op, right))
		at(p, obj["op"], call.Operator)
		return call, nil

	case "lambda":
		obj, err := p.object(value, "lambda", "params", "returns", "body")
		if err != nil {
			return nil, err
		}
		params, err := p.params(obj["params"])
		if err != nil {
			return nil, err
		}
		var returns ast.TypeExpr
		if obj["returns"] != nil {
			if returns, err = p.typeExpr(obj["returns"]); err != nil {
				return nil, err
			}
		}
		body, err := p.requiredExpr(value, obj["body"], "lambda")
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.TypedLambda(params, returns, body)), nil

	case "match":
		return p.match(n, value)

	case "block":
		elems, err := p.elements(value)
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Block(elems...)), nil

	case "tuple":
		elems, err := p.exprs(value, "tuple")
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Tuple(elems...)), nil

	case "record":
		obj, err := p.object(value, "record", "name", "fields")
		if err != nil {
			return nil, err
		}
		name, err := p.name(obj["name"], "record")
		if err != nil {
			return nil, err
		}
		var fields []*ast.RecordFieldValue
		if obj["fields"] != nil {
			entries, err := p.fields(obj["fields"], "the fields of "+name)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				e, err := p.expr(entry[1])
				if err != nil {
					return nil, err
				}
				fields = append(fields, at(p, entry[0], p.b.FieldValue(entry[0].Value, e)))
			}
		}
		return at(p, n, p.b.Record(name, fields...)), nil
	}
	return nil, p.errorf(n, "unknown expression %q", kind)
}

func (p *parser) match(n, value *yaml.Node) (ast.Expr, error) {
	obj, err := p.object(value, "match", "value", "arms")
	if err != nil {
		return nil, err
	}
	subject, err := p.requiredExpr(value, obj["value"], "match")
	if err != nil {
		return nil, err
	}
	items, err := p.sequence(obj["arms"], "arms")
	if err != nil {
		return nil, err
	}
	arms := make([]*ast.MatchArm, len(items))
	for i, item := range items {
		arm, err := p.object(item, "a match arm", "pattern", "body")
		if err != nil {
			return nil, err
		}
		if arm["pattern"] == nil {
			return nil, p.errorf(item, "a match arm needs a pattern")
		}
		pattern, err := p.pattern(arm["pattern"])
		if err != nil {
			return nil, err
		}
		body, err := p.requiredExpr(item, arm["body"], "a match arm")
		if err != nil {
			return nil, err
		}
		arms[i] = at(p, item, p.b.Arm(pattern, body))
	}
	return at(p, n, p.b.Match(subject, arms...)), nil
}

func (p *parser) pattern(n *yaml.Node) (ast.Pattern, error) {
	if n.Kind == yaml.ScalarNode {
		lit, ok, err := p.literal(n)
		if err != nil {
			return nil, err
		}
		if ok {
			return at(p, n, p.b.ExprPattern(lit)), nil
		}
		name, err := p.name(n, "a pattern")
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Bind(name)), nil
	}

	kind, value, err := p.single(n, "a pattern")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "bind":
		name, err := p.name(value, "bind")
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Bind(name)), nil

	case "lit":
		e, err := p.expr(value)
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.ExprPattern(e)), nil

	case "tuple":
		items, err := p.sequence(value, "tuple")
		if err != nil {
			return nil, err
		}
		elems := make([]ast.Pattern, len(items))
		for i, item := range items {
			if elems[i], err = p.pattern(item); err != nil {
				return nil, err
			}
		}
		return at(p, n, p.b.TuplePattern(elems...)), nil

	case "record":
		obj, err := p.object(value, "record", "name", "fields", "rest")
		if err != nil {
			return nil, err
		}
		name, err := p.name(obj["name"], "record")
		if err != nil {
			return nil, err
		}
		rest, err := p.boolean(obj["rest"])
		if err != nil {
			return nil, err
		}
		var fields []*ast.RecordPatternField
		if obj["fields"] != nil {
			entries, err := p.fields(obj["fields"], "the fields of "+name)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				var nested ast.Pattern
				if !isNull(entry[1]) {
					if nested, err = p.pattern(entry[1]); err != nil {
						return nil, err
					}
				}
				fields = append(fields, at(p, entry[0], p.b.FieldPattern(entry[0].Value, nested)))
			}
		}
		return at(p, n, p.b.RecordPattern(name, rest, fields...)), nil

	case "typed":
		obj, err := p.object(value, "typed", "type", "pattern")
		if err != nil {
			return nil, err
		}
		if obj["type"] == nil || obj["pattern"] == nil {
			return nil, p.errorf(value, "a typed pattern needs a type and a pattern")
		}
		t, err := p.typeExpr(obj["type"])
		if err != nil {
			return nil, err
		}
		nested, err := p.pattern(obj["pattern"])
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.TypedPattern(t, nested)), nil
	}
	return nil, p.errorf(n, "unknown pattern %q", kind)
}

func (p *parser) typeExpr(n *yaml.Node) (ast.TypeExpr, error) {
	if n.Kind == yaml.ScalarNode {
		name, err := p.name(n, "a type")
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.TypeRef(name)), nil
	}
	kind, value, err := p.single(n, "a type")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "fn":
		obj, err := p.object(value, "fn", "params", "result")
		if err != nil {
			return nil, err
		}
		params, err := p.typeExprs(obj["params"])
		if err != nil {
			return nil, err
		}
		if obj["result"] == nil {
			return nil, p.errorf(value, "a function type needs a result")
		}
		result, err := p.typeExpr(obj["result"])
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.FunctionType(params, result)), nil

	case "tuple":
		elems, err := p.typeExprs(value)
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.TupleType(elems...)), nil
	}
	return nil, p.errorf(n, "unknown type %q", kind)
}

func (p *parser) typeExprs(n *yaml.Node) ([]ast.TypeExpr, error) {
	items, err := p.sequence(n, "types")
	if err != nil {
		return nil, err
	}
	out := make([]ast.TypeExpr, len(items))
	for i, item := range items {
		if out[i], err = p.typeExpr(item); err != nil {
			return nil, err
		}
	}
	return out, nil
}
