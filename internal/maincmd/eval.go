package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/zbelial/rune/lang/compiler"
	"github.com/zbelial/rune/lang/machine"
	"github.com/zbelial/rune/lang/types"

	// make the native functions resolvable
	_ "github.com/zbelial/rune/lang/builtin"
)

func (c *Cmd) Eval(ctx context.Context, stdio mainer.Stdio, args []string) error {
	env := machine.NewEnvironment()
	var last types.Value
	err := forEachForm(stdio, args, func(form types.Value) error {
		fn, err := compiler.Compile(form)
		if err != nil {
			return err
		}
		res, err := machine.Execute(fn, env)
		if err != nil {
			return err
		}
		last = res
		return nil
	})
	if err != nil {
		return err
	}
	if last != nil {
		fmt.Fprintln(stdio.Stdout, last)
	}
	return nil
}
