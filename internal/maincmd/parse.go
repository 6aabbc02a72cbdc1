package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/parser"
	"github.com/reedlang/reed/lang/scanner"
	"github.com/reedlang/reed/lang/token"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(stdio, token.PosLong, "", args...)
}

func ParseFiles(stdio mainer.Stdio, posMode token.PosMode, nodeFmt string, files ...string) error {
	printer := ast.Printer{
		Output:  stdio.Stdout,
		Pos:     posMode,
		NodeFmt: nodeFmt,
	}
	fs, mods, err := parser.ParseFiles(files...)
	for _, mod := range mods {
		if mod == nil {
			continue
		}
		start, _ := mod.Span()
		file := fs.File(start)
		if err := printer.Print(mod, file); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
