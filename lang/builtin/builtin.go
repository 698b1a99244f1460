// Package builtin populates the symbol table with the native functions of
// the runtime: arithmetic, numeric comparison, variable and function
// definition, and eval. Importing the package is enough to make them
// resolvable by the machine.
package builtin

import "github.com/zbelial/rune/lang/types"

// defSubr installs a native function in the function slot of the
// interned symbol with the given name.
func defSubr(name string, args types.FnArgs, f types.BuiltinFunc) {
	types.Intern(name).SetFunc(types.NewBuiltin(name, args, f))
}
