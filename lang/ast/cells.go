package ast

import (
	"fmt"
	"os"
	"strings"

	"github.com/reedlang/reed/lang/token"
)

// CellNameKind identifies the kind of a cell name or of a resolved
// reference: a plain value, a view, or a mutable value.
type CellNameKind uint8

// List of cell name kinds.
const (
	NamePlain CellNameKind = iota
	NameView
	NameMutable
)

// String returns a human-readable representation of the kind.
func (k CellNameKind) String() string {
	switch k {
	case NameView:
		return "viewof"
	case NameMutable:
		return "mutable"
	default:
		return "plain"
	}
}

// Span records the extent of a source region as a half-open position
// interval [Start, End).
type Span struct {
	Start token.Pos
	End   token.Pos
}

// Ref is a single free-variable reference of a cell, computed by the
// resolver. References are ordered by first occurrence and deduplicated by
// name and kind.
type Ref struct {
	Kind CellNameKind
	Name string
	Pos  token.Pos // position of the first occurrence
}

// String returns the reference in source form, e.g. "viewof x".
func (r *Ref) String() string {
	if r.Kind == NamePlain {
		return r.Name
	}
	return r.Kind.String() + " " + r.Name
}

type (
	// Cell represents a single notebook cell. Body is nil for an empty
	// cell, an *ImportDecl for an import cell, and otherwise an Expr or a
	// *Block.
	Cell struct {
		// Src is the full source text the cell was parsed from. When the
		// cell comes from a module parse, this is the module source, not
		// just the cell's slice of it.
		Src string

		Name *CellName // nil if anonymous
		Eq   token.Pos // 0 if unnamed
		Body Node      // nil if empty

		// Async and Generator report whether the cell body awaits or
		// yields at its own scope.
		Async     bool
		Generator bool

		// FileAttachments maps each attached file name to the ordered
		// source spans of the literal arguments that referenced it.
		// Slicing Src by such a span reproduces the literal exactly,
		// delimiters included.
		FileAttachments map[string][]Span

		// References is the cell's free-variable list, nil until the cell
		// is resolved. Import cells are never resolved.
		References []*Ref

		Start token.Pos
		End   token.Pos
	}

	// CellName represents the declared name of a cell, with its optional
	// viewof or mutable keyword.
	CellName struct {
		Kind    CellNameKind
		Keyword token.Pos // 0 for a plain name
		Ident   *IdentExpr
	}

	// ImportDecl represents the body of an import cell, e.g.
	// import {a, viewof b as c} with {d as e} from "module".
	ImportDecl struct {
		Import  token.Pos
		Lbrace  token.Pos
		Specs   []*ImportSpecifier
		Commas  []token.Pos
		Rbrace  token.Pos
		With    token.Pos // 0 if no injection clause
		WLbrace token.Pos
		Injects []*ImportSpecifier
		WCommas []token.Pos
		WRbrace token.Pos
		From    token.Pos
		Source  *LiteralExpr // always a string literal
	}

	// ImportSpecifier is a single imported or injected name, with an
	// optional viewof/mutable keyword and an optional rename.
	ImportSpecifier struct {
		Kind     CellNameKind
		Keyword  token.Pos  // 0 for a plain specifier
		Imported *IdentExpr
		As       token.Pos  // 0 if no rename
		Local    *IdentExpr // nil if no rename
	}

	// Module represents an ordered sequence of cells parsed from a single
	// source text.
	Module struct {
		// Name is the filename, which may be empty if the module is not a
		// file.
		Name  string
		Cells []*Cell
		EOF   token.Pos
	}
)

// NameString returns the declared name of the cell in source form (e.g.
// "viewof chart"), or "" if the cell is anonymous.
func (n *Cell) NameString() string {
	if n.Name == nil {
		return ""
	}
	if n.Name.Kind == NamePlain {
		return n.Name.Ident.Lit
	}
	return n.Name.Kind.String() + " " + n.Name.Ident.Lit
}

func (n *Cell) Format(f fmt.State, verb rune) {
	lbl := "cell"
	if nm := n.NameString(); nm != "" {
		lbl += " " + nm
	}
	counts := map[string]int{"refs": len(n.References)}
	if len(n.FileAttachments) > 0 {
		counts["files"] = len(n.FileAttachments)
	}
	format(f, verb, n, lbl, counts)
}
func (n *Cell) Span() (start, end token.Pos) {
	return n.Start, n.End
}
func (n *Cell) Walk(v Visitor) {
	if n.Name != nil {
		Walk(v, n.Name)
	}
	if n.Body != nil {
		Walk(v, n.Body)
	}
}

func (n *CellName) Format(f fmt.State, verb rune) {
	lbl := "name " + n.Ident.Lit
	if n.Kind != NamePlain {
		lbl = "name " + n.Kind.String() + " " + n.Ident.Lit
	}
	format(f, verb, n, lbl, nil)
}
func (n *CellName) Span() (start, end token.Pos) {
	_, end = n.Ident.Span()
	if n.Keyword.IsValid() {
		return n.Keyword, end
	}
	start, _ = n.Ident.Span()
	return start, end
}
func (n *CellName) Walk(v Visitor) {
	Walk(v, n.Ident)
}

func (n *ImportDecl) Format(f fmt.State, verb rune) {
	format(f, verb, n, "import "+n.Source.Raw, map[string]int{
		"specs":   len(n.Specs),
		"injects": len(n.Injects),
	})
}
func (n *ImportDecl) Span() (start, end token.Pos) {
	_, end = n.Source.Span()
	return n.Import, end
}
func (n *ImportDecl) Walk(v Visitor) {
	for _, s := range n.Specs {
		Walk(v, s)
	}
	for _, s := range n.Injects {
		Walk(v, s)
	}
	Walk(v, n.Source)
}

// LocalName returns the name the specifier binds in the importing module:
// the rename if there is one, the imported name otherwise.
func (n *ImportSpecifier) LocalName() string {
	if n.Local != nil {
		return n.Local.Lit
	}
	return n.Imported.Lit
}

func (n *ImportSpecifier) Format(f fmt.State, verb rune) {
	lbl := "spec "
	if n.Kind != NamePlain {
		lbl += n.Kind.String() + " "
	}
	lbl += n.Imported.Lit
	if n.Local != nil {
		lbl += " as " + n.Local.Lit
	}
	format(f, verb, n, lbl, nil)
}
func (n *ImportSpecifier) Span() (start, end token.Pos) {
	if n.Keyword.IsValid() {
		start = n.Keyword
	} else {
		start, _ = n.Imported.Span()
	}
	if n.Local != nil {
		_, end = n.Local.Span()
	} else {
		_, end = n.Imported.Span()
	}
	return start, end
}
func (n *ImportSpecifier) Walk(v Visitor) {
	Walk(v, n.Imported)
	if n.Local != nil {
		Walk(v, n.Local)
	}
}

func (n *Module) Format(f fmt.State, verb rune) {
	lbl := "module"
	if n.Name != "" {
		lbl += " " + strings.ReplaceAll(n.Name, string(os.PathSeparator), "/")
	}
	format(f, verb, n, lbl, map[string]int{"cells": len(n.Cells)})
}
func (n *Module) Span() (start, end token.Pos) {
	if len(n.Cells) == 0 {
		return n.EOF, n.EOF
	}
	start, _ = n.Cells[0].Span()
	_, end = n.Cells[len(n.Cells)-1].Span()
	return start, end
}
func (n *Module) Walk(v Visitor) {
	for _, c := range n.Cells {
		Walk(v, c)
	}
}
