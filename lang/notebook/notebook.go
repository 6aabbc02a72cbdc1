// Package notebook is the high-level entry point of the module: it parses
// notebook source text into resolved cells, combining the parser and the
// resolver behind a small API. All parsing is synchronous and CPU-bound over
// the in-memory source; every call allocates fresh state, so independent
// parses may run concurrently without coordination.
package notebook

import (
	"errors"

	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/parser"
	"github.com/reedlang/reed/lang/resolver"
	"github.com/reedlang/reed/lang/scanner"
	"github.com/reedlang/reed/lang/token"
)

// Options configures a parse. The zero value (and a nil *Options) uses the
// default recognized-globals set.
type Options struct {
	// Globals is the set of recognized ambient names consumed by the
	// resolver. Nil means resolver.DefaultGlobals().
	Globals []string
}

func (o *Options) globals() *resolver.Globals {
	if o == nil {
		return resolver.Default()
	}
	return resolver.NewGlobals(o.Globals)
}

// ParseCell parses a single cell from src and resolves its references. On
// any syntax or reference error the cell is nil and the error carries the
// positioned diagnostics (see AsDiagnostic).
func ParseCell(src string, opts *Options) (*ast.Cell, error) {
	fset := token.NewFileSet()
	cell, err := parser.ParseCell(fset, "", []byte(src))
	if err != nil {
		return nil, err
	}
	if err := resolver.ResolveCell(fset, cell, opts.globals()); err != nil {
		return nil, err
	}
	return cell, nil
}

// ParseModule parses an ordered sequence of cells from src and resolves
// each one, failing on the first diagnostic encountered.
func ParseModule(src string, opts *Options) (*ast.Module, error) {
	fset := token.NewFileSet()
	mod, err := parser.ParseModule(fset, "", []byte(src))
	if err != nil {
		return nil, err
	}
	if err := resolver.ResolveModule(fset, mod, opts.globals()); err != nil {
		return nil, err
	}
	return mod, nil
}

// PeekName probes src for a declared cell name without a full parse. It is
// best-effort and never fails: a nil result means no name could be
// determined, not that the source is invalid.
func PeekName(src string) *ast.CellName {
	return parser.PeekName([]byte(src))
}

// Diagnostic is a single positioned error. Offset is the 0-based byte
// offset in the source; Line and Column are 1-based.
type Diagnostic struct {
	Message string
	Offset  int
	Line    int
	Column  int
}

// AsDiagnostic extracts the first positioned diagnostic from an error
// returned by ParseCell or ParseModule. It reports false if err carries no
// position information.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		e := list[0]
		return Diagnostic{
			Message: e.Msg,
			Offset:  e.Pos.Offset,
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
		}, true
	}
	var one *scanner.Error
	if errors.As(err, &one) {
		return Diagnostic{
			Message: one.Msg,
			Offset:  one.Pos.Offset,
			Line:    one.Pos.Line,
			Column:  one.Pos.Column,
		}, true
	}
	return Diagnostic{}, false
}
