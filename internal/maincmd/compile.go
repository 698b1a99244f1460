package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/zbelial/rune/lang/compiler"
	"github.com/zbelial/rune/lang/types"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return forEachForm(stdio, args, func(form types.Value) error {
		fn, err := compiler.Compile(form)
		if err != nil {
			return err
		}
		fmt.Fprint(stdio.Stdout, compiler.Disasm(fn))
		return nil
	})
}
