package machine

import "github.com/zbelial/rune/lang/types"

// VoidVariableError reports a reference to a symbol with no variable
// binding in the environment.
type VoidVariableError struct {
	Sym *types.Symbol
}

func (e VoidVariableError) Error() string { return "void variable: " + e.Sym.Name() }

// VoidFunctionError reports a call to a symbol whose function slot is
// unset.
type VoidFunctionError struct {
	Sym *types.Symbol
}

func (e VoidFunctionError) Error() string { return "void function: " + e.Sym.Name() }
