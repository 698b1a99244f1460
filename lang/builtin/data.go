package builtin

import "github.com/zbelial/rune/lang/types"

func init() {
	defSubr("set", types.FnArgs{Required: 2}, set)
	defSubr("defalias", types.FnArgs{Required: 2}, defalias)
}

// set assigns a variable in the environment and returns the value.
func set(args []types.Value, env types.Env) (types.Value, error) {
	sym, ok := args[0].(*types.Symbol)
	if !ok {
		return nil, types.TypeError{Expected: types.TagSymbol, Actual: types.TagOf(args[0])}
	}
	env.Set(sym, args[1])
	return args[1], nil
}

// defalias stores a function in a symbol's function slot and returns the
// symbol.
func defalias(args []types.Value, _ types.Env) (types.Value, error) {
	sym, ok := args[0].(*types.Symbol)
	if !ok {
		return nil, types.TypeError{Expected: types.TagSymbol, Actual: types.TagOf(args[0])}
	}
	fn, ok := args[1].(types.Callable)
	if !ok {
		return nil, types.TypeError{Expected: types.TagFunc, Actual: types.TagOf(args[1])}
	}
	sym.SetFunc(fn)
	return sym, nil
}
