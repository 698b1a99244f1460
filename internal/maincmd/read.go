package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/zbelial/rune/lang/reader"
	"github.com/zbelial/rune/lang/types"
)

func (c *Cmd) Read(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return forEachForm(stdio, args, func(form types.Value) error {
		fmt.Fprintln(stdio.Stdout, form)
		return nil
	})
}

// forEachForm reads every form of every file in turn and hands them to fn.
func forEachForm(stdio mainer.Stdio, files []string, fn func(types.Value) error) error {
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			return printError(stdio, err)
		}
		forms, err := reader.ReadAll(string(b))
		if err != nil {
			return printError(stdio, fmt.Errorf("%s: %w", file, err))
		}
		for _, form := range forms {
			if err := fn(form); err != nil {
				return printError(stdio, fmt.Errorf("%s: %w", file, err))
			}
		}
	}
	return nil
}
