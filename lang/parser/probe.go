package parser

import (
	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/scanner"
	"github.com/reedlang/reed/lang/token"
)

// probe states for PeekName.
type probeState int

const (
	probeStart probeState = iota
	probeModifier
	probeName
	probeFunction
)

// PeekName probes src for the name the cell would declare, without parsing
// it. It is a best-effort, token-level state machine that never fails: scan
// errors are swallowed and any problem yields a nil result. Nil means no
// name.
//
// The name of a cell is its leading `name =` form, with an optional viewof,
// mutable or async modifier, or the name of a leading function or class
// declaration. A declaration name is only reported when it is not the very
// last token of the input, so that a name still being typed is not
// committed to.
func PeekName(src []byte) (name *ast.CellName) {
	defer func() {
		if recover() != nil {
			name = nil
		}
	}()

	fset := token.NewFileSet()
	file := fset.AddFile("", -1, len(src))
	var s scanner.Scanner
	s.Init(file, src, discardError)

	state := probeStart
	kind := ast.NamePlain
	var nameVal token.Value

	for {
		var v token.Value
		tok := s.Scan(&v)
		if tok == token.COMMENT {
			continue
		}

		switch state {
		case probeStart, probeModifier:
			if tok == token.IDENT {
				if state == probeStart {
					switch v.Raw {
					case "viewof":
						kind = ast.NameView
						state = probeModifier
						continue
					case "mutable":
						kind = ast.NameMutable
						state = probeModifier
						continue
					case "async":
						state = probeModifier
						continue
					}
				}
				nameVal = v
				state = probeName
				continue
			}
			if tok == token.FUNCTION || tok == token.CLASS {
				state = probeFunction
				continue
			}
			return nil

		case probeName:
			if tok == token.EQ {
				return &ast.CellName{
					Kind:  kind,
					Ident: &ast.IdentExpr{Start: nameVal.Pos, Lit: nameVal.Raw},
				}
			}
			return nil

		case probeFunction:
			if tok == token.STAR {
				continue
			}
			if tok == token.IDENT && file.Offset(v.Pos)+len(v.Raw) < len(src) {
				return &ast.CellName{
					Kind:  ast.NamePlain,
					Ident: &ast.IdentExpr{Start: v.Pos, Lit: v.Raw},
				}
			}
			return nil
		}
	}
}
