package maincmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mna/mainer"
	"github.com/reedlang/reed/lang/parser"
	"github.com/reedlang/reed/lang/resolver"
	"github.com/reedlang/reed/lang/scanner"
)

func (c *Cmd) Resolve(ctx context.Context, stdio mainer.Stdio, args []string) error {
	globals := resolver.Default()
	if c.flags["globals"] {
		var names []string
		for _, n := range strings.Split(c.Globals, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		globals = resolver.NewGlobals(names)
	}
	return ResolveFiles(stdio, globals, args...)
}

func ResolveFiles(stdio mainer.Stdio, globals *resolver.Globals, files ...string) error {
	fs, mods, perr := parser.ParseFiles(files...)
	if perr != nil {
		// cannot resolve an AST if parsing has errors
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	for i, mod := range mods {
		if rerr := resolver.ResolveModule(fs, mod, globals); rerr != nil {
			scanner.PrintError(stdio.Stderr, rerr)
			return rerr
		}

		for j, cell := range mod.Cells {
			name := cell.NameString()
			if name == "" {
				name = "<anonymous>"
			}
			fmt.Fprintf(stdio.Stdout, "%s: cell %d %s:", files[i], j, name)
			for _, ref := range cell.References {
				fmt.Fprintf(stdio.Stdout, " %s", ref)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	return nil
}
