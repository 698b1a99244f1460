package builtin

import (
	"github.com/zbelial/rune/lang/compiler"
	"github.com/zbelial/rune/lang/machine"
	"github.com/zbelial/rune/lang/types"
)

func init() {
	defSubr("eval", types.FnArgs{Required: 1}, eval)
}

// eval compiles a form and executes it against the caller's environment.
// The machine creates a fresh value and call-frame stack for the nested
// execution.
func eval(args []types.Value, env types.Env) (types.Value, error) {
	fn, err := compiler.Compile(args[0])
	if err != nil {
		return nil, err
	}
	return machine.Execute(fn, env)
}
