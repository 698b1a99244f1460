package machine

import (
	"github.com/dolthub/swiss"

	"github.com/zbelial/rune/lang/types"
)

// An Environment holds the dynamic variable bindings shared by every
// function executed against it. Mutation is serial: the machine is
// single-threaded.
type Environment struct {
	vars *swiss.Map[*types.Symbol, types.Value]
}

var _ types.Env = (*Environment)(nil)

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{vars: swiss.NewMap[*types.Symbol, types.Value](16)}
}

// Get returns the value bound to sym, if any.
func (e *Environment) Get(sym *types.Symbol) (types.Value, bool) {
	return e.vars.Get(sym)
}

// Set binds sym to v, replacing any previous binding.
func (e *Environment) Set(sym *types.Symbol, v types.Value) {
	e.vars.Put(sym, v)
}
