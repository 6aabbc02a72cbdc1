package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/reedlang/reed/lang/parser"
)

func (c *Cmd) Peek(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var lastErr error
	for _, name := range args {
		b, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			lastErr = err
			continue
		}

		cellName := parser.PeekName(b)
		if cellName == nil {
			fmt.Fprintf(stdio.Stdout, "%s: <none>\n", name)
			continue
		}
		fmt.Fprintf(stdio.Stdout, "%s: %s %s\n", name, cellName.Kind, cellName.Ident.Lit)
	}
	return lastErr
}
