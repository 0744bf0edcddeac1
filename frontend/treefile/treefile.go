// Package treefile loads Bolt syntax trees written down as YAML documents.
//
// A document is a sequence of elements. Each element, expression, pattern or
// type is either a scalar or a mapping with a single key naming its kind:
//
//	# fac.yaml
//	- struct: {name: Point, fields: {x: int, y: int}}
//	- fn:
//	    name: fac
//	    params: [{name: n, type: int}]
//	    returns: int
//	    body:
//	      - return:
//	          match:
//	            value: n
//	            arms:
//	              - {pattern: 0, body: 1}
//	              - {pattern: n, body: {binary: {op: "*", left: n, right: {call: {fn: fac, args: [{binary: {op: "-", left: n, right: 1}}]}}}}}
//	- expr: {call: {fn: fac, args: [3]}}
//
// Plain scalars are references, or bindings where a pattern is expected.
// Integers, booleans and quoted strings are literals.
package treefile

import (
	"go/token"
	"strconv"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Loader turns YAML documents into syntax trees.
// Every tree it loads is allocated by the same ast.Arena, so they may be
// registered into one checker.
type Loader struct {
	builder *ast.Builder
	files   *token.FileSet
}

func NewLoader(files *token.FileSet) *Loader {
	return &Loader{builder: ast.NewBuilder(), files: files}
}

func (l *Loader) Arena() *ast.Arena {
	return l.builder.Arena
}

// Load parses content, the text of the file at path
func (l *Loader) Load(path string, content []byte) (*ast.SourceFile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}
	file := l.files.AddFile(path, -1, len(content))
	file.SetLinesForContent(content)
	p := &parser{b: l.builder, file: file, path: path}

	var elements []ast.Element
	if len(doc.Content) > 0 {
		var err error
		if elements, err = p.elements(doc.Content[0]); err != nil {
			return nil, err
		}
	}
	return l.builder.SourceFile(path, elements...), nil
}

type parser struct {
	b    *ast.Builder
	file *token.File
	path string
}

func (p *parser) errorf(n *yaml.Node, format string, args ...any) error {
	return errors.Wrapf(errors.Errorf(format, args...), "%s:%d:%d", p.path, n.Line, n.Column)
}

func (p *parser) pos(line, column int) token.Pos {
	if line < 1 || line > p.file.LineCount() {
		return token.NoPos
	}
	// multi-line scalars may end past the file
	return min(p.file.LineStart(line)+token.Pos(column-1), token.Pos(p.file.Base()+p.file.Size()))
}

// end returns the position right after the last character of n
func (p *parser) end(n *yaml.Node) token.Pos {
	if len(n.Content) > 0 {
		return p.end(n.Content[len(n.Content)-1])
	}
	width := len(n.Value)
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		width += 2
	}
	return p.pos(n.Line, n.Column+width)
}

func at[N ast.Node](p *parser, n *yaml.Node, node N) N {
	ast.SetRange(node, ast.Range{PosStart: p.pos(n.Line, n.Column), PosEnd: p.end(n)})
	return node
}

// single returns the key and value of a mapping with one entry
func (p *parser) single(n *yaml.Node, what string) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, p.errorf(n, "expected %s as a mapping with a single key", what)
	}
	return n.Content[0].Value, n.Content[1], nil
}

// fields returns the entries of a mapping, in order
func (p *parser) fields(n *yaml.Node, what string) ([][2]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(n, "expected a mapping for %s", what)
	}
	out := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, [2]*yaml.Node{n.Content[i], n.Content[i+1]})
	}
	return out, nil
}

// object looks up the keys of a mapping, and rejects the ones it does not know
func (p *parser) object(n *yaml.Node, what string, known ...string) (map[string]*yaml.Node, error) {
	entries, err := p.fields(n, what)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*yaml.Node, len(entries))
	for _, entry := range entries {
		key := entry[0].Value
		isKnown := false
		for _, k := range known {
			isKnown = isKnown || k == key
		}
		if !isKnown {
			return nil, p.errorf(entry[0], "unknown key %q in %s", key, what)
		}
		out[key] = entry[1]
	}
	return out, nil
}

func (p *parser) sequence(n *yaml.Node, what string) ([]*yaml.Node, error) {
	if n == nil || isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, p.errorf(n, "expected a sequence for %s", what)
	}
	return n.Content, nil
}

func (p *parser) name(n *yaml.Node, what string) (string, error) {
	if n == nil {
		return "", errors.Errorf("%s: missing name of %s", p.path, what)
	}
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return "", p.errorf(n, "expected a name for %s", what)
	}
	return n.Value, nil
}

func (p *parser) boolean(n *yaml.Node) (bool, error) {
	if n == nil {
		return false, nil
	}
	var v bool
	if err := n.Decode(&v); err != nil {
		return false, p.errorf(n, "expected true or false")
	}
	return v, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func isQuoted(n *yaml.Node) bool {
	return n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0
}

// literal returns the constant written by a scalar, if it is not a plain name
func (p *parser) literal(n *yaml.Node) (ast.Expr, bool, error) {
	if isQuoted(n) {
		return at(p, n, p.b.Str(n.Value)), true, nil
	}
	switch n.ShortTag() {
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, false, p.errorf(n, "invalid integer %s", n.Value)
		}
		return at(p, n, p.b.Int(v)), true, nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, false, p.errorf(n, "invalid boolean %s", n.Value)
		}
		return at(p, n, p.b.Bool(v)), true, nil
	case "!!float":
		return nil, false, p.errorf(n, "floating point numbers are not supported")
	}
	return nil, false, nil
}
