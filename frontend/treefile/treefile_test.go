package treefile

import (
	"go/token"
	"testing"

	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const factorial = `
- fn:
    name: fac
    params: [{name: n, type: int}]
    returns: int
    body:
      - return:
          match:
            value: n
            arms:
              - {pattern: 0, body: 1}
              - pattern: m
                body: {binary: {op: "*", left: m, right: {call: {fn: fac, args: [{binary: {op: "-", left: m, right: 1}}]}}}}
- expr: {call: {fn: fac, args: [5]}}
`

func load(t *testing.T, src string) (*ast.SourceFile, *token.FileSet) {
	t.Helper()
	files := token.NewFileSet()
	file, err := NewLoader(files).Load("test.yaml", []byte(src))
	require.NoError(t, err)
	return file, files
}

func TestLoadFactorial(t *testing.T) {
	file, _ := load(t, factorial)
	require.Len(t, file.Elements, 2)

	fn, ok := file.Elements[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "fac", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "n", fn.Params[0].Pattern.(*ast.BindPattern).Name)
	assert.Equal(t, "int", fn.ReturnType.(*ast.ReferenceTypeExpr).Name.String())

	ret := fn.Body[0].(*ast.ReturnStmt)
	match := ret.Value.(*ast.MatchExpr)
	require.Len(t, match.Arms, 2)
	assert.IsType(t, &ast.ExprPattern{}, match.Arms[0].Pattern)
	assert.IsType(t, &ast.BindPattern{}, match.Arms[1].Pattern)

	c := check.New(check.Config{})
	require.NoError(t, c.RegisterSourceFile(file))
	call := file.Elements[1].(*ast.ExprStmt).Expr
	assert.True(t, c.IsIntType(c.TypeOf(call)))
}

func TestScalars(t *testing.T) {
	file, _ := load(t, `
- expr: 1
- expr: "one"
- expr: 'one'
- expr: true
- expr: one
- expr: std.math.one
- expr: {string: 1}
- expr: {ref: x}
- expr: {int: 0x10}
`)
	exprs := make([]ast.Expr, len(file.Elements))
	for i, elem := range file.Elements {
		exprs[i] = elem.(*ast.ExprStmt).Expr
	}
	assert.Equal(t, ast.IntLit(1), exprs[0].(*ast.ConstantExpr).Value)
	assert.Equal(t, ast.StrLit("one"), exprs[1].(*ast.ConstantExpr).Value)
	assert.Equal(t, ast.StrLit("one"), exprs[2].(*ast.ConstantExpr).Value)
	assert.Equal(t, ast.BoolLit(true), exprs[3].(*ast.ConstantExpr).Value)
	assert.Equal(t, "one", exprs[4].(*ast.ReferenceExpr).Name.String())
	assert.Equal(t, []string{"std", "math"}, exprs[5].(*ast.ReferenceExpr).Name.ModulePath)
	assert.Equal(t, ast.StrLit("1"), exprs[6].(*ast.ConstantExpr).Value)
	assert.Equal(t, "x", exprs[7].(*ast.ReferenceExpr).Name.String())
	assert.Equal(t, ast.IntLit(16), exprs[8].(*ast.ConstantExpr).Value)
}

func TestDeclarations(t *testing.T) {
	file, _ := load(t, `
- struct: {name: Point, fields: {x: int, y: int}}
- type: {name: Pair, value: {tuple: [int, string]}}
- type: {name: Handler, value: {fn: {params: [Pair], result: bool}}}
- let: {name: p, value: {record: {name: Point, fields: {x: 1, y: 2}}}}
- let:
    pattern: {record: {name: Point, fields: {x: px, y: null}}}
    value: p
- let: {pattern: {tuple: [a, {typed: {type: string, pattern: b}}]}, value: {tuple: [1, "b"]}}
- let: {name: counter, mut: true, type: int}
- assign: {target: counter, value: {binary: {op: "+", left: px, right: y}}}
- mod:
    name: std.text
    elements:
      - let: {name: greeting, value: "hello"}
- expr: {block: [{let: {name: z, value: a}}, {expr: z}]}
- expr: {lambda: {params: [x, {pattern: {bind: y}, type: int}], returns: int, body: y}}
`)
	require.Len(t, file.Elements, 11)

	record := file.Elements[0].(*ast.RecordDecl)
	require.Len(t, record.Fields, 2)
	assert.Equal(t, "x", record.Fields[0].Name)
	assert.Equal(t, "y", record.Fields[1].Name)

	pattern := file.Elements[4].(*ast.VariableDecl).Pattern.(*ast.RecordPattern)
	assert.False(t, pattern.Rest)
	assert.Nil(t, pattern.Fields[1].Pattern)

	counter := file.Elements[6].(*ast.VariableDecl)
	assert.True(t, counter.Mutable)
	assert.Nil(t, counter.Value)

	mod := file.Elements[8].(*ast.ModuleDecl)
	assert.Equal(t, "std.text", mod.Name.String())

	c := check.New(check.Config{})
	require.NoError(t, c.RegisterSourceFile(file))
	assert.Equal(t, "fn(a, int) -> int", c.TypeOf(file.Elements[10].(*ast.ExprStmt).Expr).String())
	assert.True(t, c.IsIntType(c.TypeOf(file.Elements[9].(*ast.ExprStmt).Expr)))
}

func TestPositions(t *testing.T) {
	file, files := load(t, `- expr: {call: {fn: foo, args: [1]}}
- expr: bar
`)
	call := file.Elements[0].(*ast.ExprStmt).Expr.(*ast.CallExpr)
	start := files.Position(call.Operator.Pos())
	assert.Equal(t, 1, start.Line)
	assert.Equal(t, 21, start.Column)
	assert.Equal(t, 24, files.Position(call.Operator.End()).Column)

	bar := file.Elements[1].(*ast.ExprStmt).Expr
	assert.Equal(t, 2, files.Position(bar.Pos()).Line)
	assert.Equal(t, 9, files.Position(bar.Pos()).Column)

	c := check.New(check.Config{})
	err := c.RegisterSourceFile(file)
	var notFound bolterr.BindingNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 21, files.Position(notFound.Node().Pos()).Column)
}

func TestFilesShareAnArena(t *testing.T) {
	files := token.NewFileSet()
	loader := NewLoader(files)
	first, err := loader.Load("first.yaml", []byte(`- let: {name: a, value: 1}`))
	require.NoError(t, err)
	second, err := loader.Load("second.yaml", []byte(`- expr: a`))
	require.NoError(t, err)
	assert.Same(t, loader.Arena(), first.Arena)
	assert.Same(t, loader.Arena(), second.Arena)

	c := check.New(check.Config{})
	require.NoError(t, c.RegisterSourceFile(first))
	require.NoError(t, c.RegisterSourceFile(second))
}

func TestEmptyDocument(t *testing.T) {
	file, _ := load(t, "")
	assert.Empty(t, file.Elements)
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		msg  string
	}{
		{"not a sequence", `expr: 1`, "expected a sequence"},
		{"unknown element", `- loop: 1`, `unknown element "loop"`},
		{"unknown expression", `- expr: {while: 1}`, `unknown expression "while"`},
		{"unknown key", `- let: {name: a, vale: 1}`, `unknown key "vale" in let`},
		{"let without a name", `- let: {value: 1}`, "let needs a name or a pattern"},
		{"let with both", `- let: {name: a, pattern: b, value: 1}`, "either a name or a pattern"},
		{"floats", `- expr: 1.5`, "floating point"},
		{"two keys", `- {expr: 1, return: 2}`, "single key"},
		{"invalid yaml", "- expr: [1", "could not parse"},
		{"arm without pattern", `- expr: {match: {value: 1, arms: [{body: 1}]}}`, "needs a pattern"},
		{"bad mut", `- let: {name: a, mut: maybe}`, "expected true or false"},
		{"unknown type", `- let: {name: a, type: {list: int}}`, `unknown type "list"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader(token.NewFileSet()).Load("bad.yaml", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}
