package ast

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow(t *testing.T) {
	b := NewBuilder()
	testCases := []struct {
		node     Node
		expected string
	}{
		{b.Binary(b.Int(1), "+", b.Ref("a")), "1 + a"},
		{b.Call(b.Lambda(b.Params("x"), b.Ref("x")), b.Str("s")), `(|x| x)("s")`},
		{b.Let("a", b.Tuple(b.Int(1), b.Bool(false))), "let a = (1, false);"},
		{b.VariableDecl(true, b.Bind("a"), b.TypeRef("int"), nil), "let mut a: int;"},
		{b.Fn("f", []*Parameter{b.Param("n", b.TypeRef("int"))}, b.TypeRef("int"), b.Return(b.Ref("n"))), "fn f(n: int) -> int { return n; }"},
		{b.Module("std.math", b.Alias("Count", b.TypeRef("int"))), "mod std.math { type Count = int; }"},
		{b.RecordPattern("Point", true, b.FieldPattern("x", nil), b.FieldPattern("y", b.Bind("py"))), "Point { x, y: py, .. }"},
		{b.Match(b.Ref("n"), b.Arm(b.ExprPattern(b.Int(0)), b.Int(1))), "match n { 0 => 1 }"},
		{b.FunctionType([]TypeExpr{b.TypeRef("int")}, b.TupleType()), "fn(int) -> ()"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, Show(tc.node))
		})
	}
}

func TestParseQualName(t *testing.T) {
	assert.Equal(t, QualName{Name: "a"}, ParseQualName("a"))
	assert.Equal(t, QualName{ModulePath: []string{"std", "math"}, Name: "sqrt"}, ParseQualName("std.math.sqrt"))
	assert.Equal(t, QualName{Name: ".."}, ParseQualName(".."))
	assert.Equal(t, "std.math.sqrt", ParseQualName("std.math.sqrt").String())
}

func TestArenaParents(t *testing.T) {
	b := NewBuilder()
	one := b.Int(1)
	call := b.Call(b.Ref("f"), one)
	stmt := b.ExprStmt(call)
	file := b.SourceFile("main.bolt", stmt)

	assert.True(t, b.Arena.Owns(file))
	assert.Same(t, call, b.Arena.Parent(one))
	assert.Same(t, stmt, b.Arena.Parent(call))
	assert.Same(t, file, b.Arena.Parent(stmt))
	assert.Nil(t, b.Arena.Parent(file))

	other := NewBuilder()
	assert.False(t, other.Arena.Owns(one))
	assert.Panics(t, func() { other.SourceFile("other.bolt", stmt) })
}

func TestInspectVisitsInOrder(t *testing.T) {
	b := NewBuilder()
	file := b.SourceFile("main.bolt", b.ExprStmt(b.Tuple(b.Int(1), b.Int(2))))
	var kinds []Kind
	Inspect(file, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	assert.Equal(t, []Kind{KindSourceFile, KindExprStmt, KindTupleExpr, KindConstantExpr, KindConstantExpr}, kinds)
}

func TestNodeLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NodeLogger(slog.New(slog.NewTextHandler(buf, nil)))
	b := NewBuilder()
	logger.Info("checking", "expr", Node(b.Binary(b.Int(1), "+", b.Int(2))))
	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `expr="1 + 2"`)
}
