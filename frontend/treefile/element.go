package treefile

import (
	"github.com/boltlang/bolt/frontend/ast"
	"gopkg.in/yaml.v3"
)

func (p *parser) elements(n *yaml.Node) ([]ast.Element, error) {
	items, err := p.sequence(n, "elements")
	if err != nil {
		return nil, err
	}
	out := make([]ast.Element, len(items))
	for i, item := range items {
		if out[i], err = p.element(item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *parser) element(n *yaml.Node) (ast.Element, error) {
	kind, value, err := p.single(n, "an element")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "expr":
		e, err := p.expr(value)
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.ExprStmt(e)), nil

	case "return":
		var e ast.Expr
		if !isNull(value) {
			if e, err = p.expr(value); err != nil {
				return nil, err
			}
		}
		return at(p, n, p.b.Return(e)), nil

	case "let":
		return p.let(n, value)

	case "assign":
		obj, err := p.object(value, "assign", "target", "value")
		if err != nil {
			return nil, err
		}
		target, err := p.name(obj["target"], "assign")
		if err != nil {
			return nil, err
		}
		e, err := p.requiredExpr(value, obj["value"], "assign")
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Assign(target, e)), nil

	case "fn":
		return p.fn(n, value)

	case "mod":
		obj, err := p.object(value, "mod", "name", "elements")
		if err != nil {
			return nil, err
		}
		name, err := p.name(obj["name"], "mod")
		if err != nil {
			return nil, err
		}
		elems, err := p.elements(obj["elements"])
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Module(name, elems...)), nil

	case "struct":
		return p.record(n, value)

	case "type":
		obj, err := p.object(value, "type", "name", "value")
		if err != nil {
			return nil, err
		}
		name, err := p.name(obj["name"], "type")
		if err != nil {
			return nil, err
		}
		if obj["value"] == nil {
			return nil, p.errorf(value, "type %s has no value", name)
		}
		t, err := p.typeExpr(obj["value"])
		if err != nil {
			return nil, err
		}
		return at(p, n, p.b.Alias(name, t)), nil
	}
	return nil, p.errorf(n, "unknown element %q", kind)
}

func (p *parser) let(n, value *yaml.Node) (ast.Element, error) {
	obj, err := p.object(value, "let", "name", "pattern", "mut", "type", "value")
	if err != nil {
		return nil, err
	}
	var pattern ast.Pattern
	switch {
	case obj["name"] != nil && obj["pattern"] != nil:
		return nil, p.errorf(value, "let takes either a name or a pattern")
	case obj["name"] != nil:
		name, err := p.name(obj["name"], "let")
		if err != nil {
			return nil, err
		}
		pattern = at(p, obj["name"], p.b.Bind(name))
	case obj["pattern"] != nil:
		if pattern, err = p.pattern(obj["pattern"]); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf(value, "let needs a name or a pattern")
	}

	mutable, err := p.boolean(obj["mut"])
	if err != nil {
		return nil, err
	}
	var typ ast.TypeExpr
	if obj["type"] != nil {
		if typ, err = p.typeExpr(obj["type"]); err != nil {
			return nil, err
		}
	}
	var e ast.Expr
	if obj["value"] != nil {
		if e, err = p.expr(obj["value"]); err != nil {
			return nil, err
		}
	}
	return at(p, n, p.b.VariableDecl(mutable, pattern, typ, e)), nil
}

func (p *parser) fn(n, value *yaml.Node) (ast.Element, error) {
	obj, err := p.object(value, "fn", "name", "params", "returns", "body")
	if err != nil {
		return nil, err
	}
	name, err := p.name(obj["name"], "fn")
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
	body, err := p.elements(obj["body"])
	if err != nil {
		return nil, err
	}
	return at(p, n, p.b.Fn(name, params, returns, body...)), nil
}

func (p *parser) record(n, value *yaml.Node) (ast.Element, error) {
	obj, err := p.object(value, "struct", "name", "fields")
	if err != nil {
		return nil, err
	}
	name, err := p.name(obj["name"], "struct")
	if err != nil {
		return nil, err
	}
	var fields []*ast.RecordDeclField
	if obj["fields"] != nil {
		entries, err := p.fields(obj["fields"], "the fields of "+name)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			t, err := p.typeExpr(entry[1])
			if err != nil {
				return nil, err
			}
			fields = append(fields, at(p, entry[0], p.b.Field(entry[0].Value, t)))
		}
	}
	return at(p, n, p.b.Struct(name, fields...)), nil
}

// params reads a parameter list. A parameter is a name, or a mapping with a
// name or a pattern, and an optional type.
func (p *parser) params(n *yaml.Node) ([]*ast.Parameter, error) {
	items, err := p.sequence(n, "params")
	if err != nil {
		return nil, err
	}
	out := make([]*ast.Parameter, len(items))
	for i, item := range items {
		if item.Kind == yaml.ScalarNode {
			out[i] = at(p, item, p.b.Param(item.Value, nil))
			continue
		}
		obj, err := p.object(item, "a parameter", "name", "pattern", "type")
		if err != nil {
			return nil, err
		}
		var typ ast.TypeExpr
		if obj["type"] != nil {
			if typ, err = p.typeExpr(obj["type"]); err != nil {
				return nil, err
			}
		}
		var pattern ast.Pattern
		switch {
		case obj["pattern"] != nil:
			if pattern, err = p.pattern(obj["pattern"]); err != nil {
				return nil, err
			}
		case obj["name"] != nil:
			name, err := p.name(obj["name"], "a parameter")
			if err != nil {
				return nil, err
			}
			pattern = at(p, obj["name"], p.b.Bind(name))
		default:
			return nil, p.errorf(item, "a parameter needs a name or a pattern")
		}
		out[i] = at(p, item, p.b.PatternParam(pattern, typ))
	}
	return out, nil
}
