package parser

import (
	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/token"
)

// cellClass is the result of the classification probe that decides which cell
// production to commit to.
type cellClass int

const (
	cellEmpty cellClass = iota
	cellImport
	cellNamed
	cellAnon
)

// classifyCell decides the cell production by peeking at the minimum token
// prefix with an independent scanner, without consuming anything from the
// committed parse.
func (p *parser) classifyCell() (class cellClass, kind ast.CellNameKind) {
	switch p.tok {
	case token.EOF, token.SEMICOLON:
		return cellEmpty, ast.NamePlain

	case token.IMPORT:
		// import(...) would be a dynamic-import expression, not an import
		// cell
		if p.peekTok() == token.LPAREN {
			return cellAnon, ast.NamePlain
		}
		return cellImport, ast.NamePlain

	case token.IDENT:
		switch p.val.Raw {
		case "viewof", "mutable":
			toks := p.peekToks(2)
			if len(toks) == 2 && toks[0] == token.IDENT && toks[1] == token.EQ {
				kind = ast.NameView
				if p.val.Raw == "mutable" {
					kind = ast.NameMutable
				}
				return cellNamed, kind
			}
			// the keyword itself may be used as a plain cell name
			if toks[0] == token.EQ {
				return cellNamed, ast.NamePlain
			}
			return cellAnon, ast.NamePlain

		default:
			if p.peekTok() == token.EQ {
				return cellNamed, ast.NamePlain
			}
			return cellAnon, ast.NamePlain
		}
	}
	return cellAnon, ast.NamePlain
}

// parseCell parses a single cell at the current token. The trailing
// terminator is left for the caller. src is the full source text attached to
// the cell.
func (p *parser) parseCell(src string) *ast.Cell {
	cell := &ast.Cell{Src: src, Start: p.val.Pos}

	// reset per-cell state
	p.funcDepth = 0
	p.async, p.generator = false, false
	p.fileAtts = nil

	class, kind := p.classifyCell()
	switch class {
	case cellEmpty:
		cell.End = cell.Start
		return cell

	case cellImport:
		cell.Body = p.parseImportDecl()

	case cellNamed:
		cell.Name = p.parseCellName(kind)
		cell.Eq = p.expect(token.EQ)
		cell.Body = p.parseCellBody()

	default:
		cell.Body = p.parseCellBody()
		// an anonymous cell adopts the name of a named function or class
		// expression body
		switch body := cell.Body.(type) {
		case *ast.FuncExpr:
			if body.Name != nil {
				cell.Name = &ast.CellName{Kind: ast.NamePlain, Ident: body.Name}
			}
		case *ast.ClassExpr:
			if body.Name != nil {
				cell.Name = &ast.CellName{Kind: ast.NamePlain, Ident: body.Name}
			}
		}
	}

	cell.Async = p.async
	cell.Generator = p.generator
	cell.FileAttachments = p.fileAtts
	_, cell.End = cell.Body.Span()
	return cell
}

func (p *parser) parseCellName(kind ast.CellNameKind) *ast.CellName {
	name := &ast.CellName{Kind: kind}
	if kind != ast.NamePlain {
		name.Keyword = p.expect(token.IDENT) // viewof or mutable
	}
	name.Ident = p.parseIdentExpr()
	return name
}

// parseCellBody parses the definition of a non-import cell: a brace-
// delimited statement block or a single expression.
func (p *parser) parseCellBody() ast.Node {
	if p.tok == token.LBRACE {
		return p.parseBlock()
	}
	return p.parseExpr()
}

func (p *parser) parseImportDecl() *ast.ImportDecl {
	var decl ast.ImportDecl
	decl.Import = p.expect(token.IMPORT)

	decl.Lbrace = p.expect(token.LBRACE)
	decl.Specs, decl.Commas = p.parseImportSpecifiers()
	decl.Rbrace = p.expect(token.RBRACE)

	if p.tok == token.WITH {
		decl.With = p.expect(token.WITH)
		decl.WLbrace = p.expect(token.LBRACE)
		decl.Injects, decl.WCommas = p.parseImportSpecifiers()
		decl.WRbrace = p.expect(token.RBRACE)
	}

	if p.tok != token.IDENT || p.val.Raw != "from" {
		p.errorExpected(p.val.Pos, "from")
	}
	decl.From = p.expect(token.IDENT)

	if p.tok != token.STRING {
		p.errorExpected(p.val.Pos, token.STRING.String())
	}
	decl.Source = &ast.LiteralExpr{
		Type:  token.STRING,
		Raw:   p.val.Raw,
		Value: p.val.String,
	}
	decl.Source.Start = p.expect(token.STRING)
	return &decl
}

func (p *parser) parseImportSpecifiers() ([]*ast.ImportSpecifier, []token.Pos) {
	var specs []*ast.ImportSpecifier
	var commas []token.Pos

	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		specs = append(specs, p.parseImportSpecifier())
		if p.tok == token.COMMA {
			// may or may not be the last, trailing comma is valid
			commas = append(commas, p.expect(token.COMMA))
		} else {
			break
		}
	}
	return specs, commas
}

func (p *parser) parseImportSpecifier() *ast.ImportSpecifier {
	var spec ast.ImportSpecifier

	if p.tok == token.IDENT && (p.val.Raw == "viewof" || p.val.Raw == "mutable") {
		// only a modifier if another identifier follows
		if p.peekTok() == token.IDENT {
			spec.Kind = ast.NameView
			if p.val.Raw == "mutable" {
				spec.Kind = ast.NameMutable
			}
			spec.Keyword = p.expect(token.IDENT)
		}
	}
	spec.Imported = p.parseIdentExpr()

	if p.tok == token.IDENT && p.val.Raw == "as" {
		spec.As = p.expect(token.IDENT)
		spec.Local = p.parseIdentExpr()
	}
	return &spec
}
