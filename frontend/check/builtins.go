package check

import (
	"github.com/boltlang/bolt/frontend/scope"
	"github.com/boltlang/bolt/frontend/types"
)

func fn(result types.Type, params ...types.Type) types.Function {
	return types.Function{Params: params, Result: result}
}

// builtins returns the global frame, holding the builtin types and operators
func builtins(fresher *types.Fresher) scope.Frame {
	global := scope.NewFrame(scope.GlobalFrame, "")

	for name, atom := range map[string]types.Atom{"int": types.Int, "string": types.String, "bool": types.Bool} {
		global = global.WithType(name, &scope.TypeBinding{Type: atom})
	}
	global = global.WithType("unit", &scope.TypeBinding{Type: types.Unit})

	mono := func(name string, t types.Type) {
		global = global.With(name, &scope.FunctionBinding{Scheme: types.Mono(t)})
	}
	for _, op := range []string{"+", "-", "*", "/", "%"} {
		mono(op, fn(types.Int, types.Int, types.Int))
	}
	for _, op := range []string{"<", ">", "<=", ">="} {
		mono(op, fn(types.Bool, types.Int, types.Int))
	}
	for _, op := range []string{"&&", "||"} {
		mono(op, fn(types.Bool, types.Bool, types.Bool))
	}
	mono("not", fn(types.Bool, types.Bool))
	mono("++", fn(types.String, types.String, types.String))

	for _, op := range []string{"==", "!="} {
		a := fresher.Fresh()
		global = global.With(op, &scope.FunctionBinding{
			Scheme: types.NewScheme([]types.VarID{a.ID}, fn(types.Bool, a, a)),
		})
	}
	return global
}
