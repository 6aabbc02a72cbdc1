// Package parser implements the notebook cell grammar: it turns source text
// into cells (lang/ast) layered over an ECMAScript-style expression and
// statement subset. Parsing is strict and fail-fast: the first error aborts
// the parse and no partial AST is returned. The one never-failing operation
// is PeekName, the best-effort probe for a cell's declared name.
package parser

import (
	"errors"
	"os"

	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/scanner"
	"github.com/reedlang/reed/lang/token"
)

// ParseCell parses a single cell from src and requires the end of input
// after it. The cell is added to the provided fset for position reporting
// under the name specified in filename. The error, if non-nil, is guaranteed
// to be a scanner.ErrorList and the cell is nil.
func ParseCell(fset *token.FileSet, filename string, src []byte) (*ast.Cell, error) {
	var p parser
	p.init(fset, filename, src)
	cell := p.parseCellEntry(string(src))
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return cell, nil
}

// ParseModule parses an ordered sequence of cells from src until the end of
// input. Every cell of the module carries the full source text. The error,
// if non-nil, is guaranteed to be a scanner.ErrorList and the module is nil.
func ParseModule(fset *token.FileSet, filename string, src []byte) (*ast.Module, error) {
	var p parser
	p.init(fset, filename, src)
	mod := p.parseModuleEntry(filename, string(src))
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return mod, nil
}

// ParseFiles is a helper function that parses each source file as a module
// and returns the fileset along with the ASTs and any error encountered. The
// error, if non-nil, is guaranteed to be a scanner.ErrorList. A file that
// fails to parse has a nil entry in the returned slice.
func ParseFiles(files ...string) (*token.FileSet, []*ast.Module, error) {
	var errs scanner.ErrorList

	res := make([]*ast.Module, 0, len(files))
	fs := token.NewFileSet()

	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			errs.Add(token.Position{Filename: file}, err.Error())
			res = append(res, nil)
			continue
		}

		mod, err := ParseModule(fs, file, b)
		if err != nil {
			errs = append(errs, err.(scanner.ErrorList)...)
		}
		res = append(res, mod)
	}
	return fs, res, errs.Err()
}

// raised to unwind the parser on the first error, recovered at the entry
// points.
var errPanicMode = errors.New("panic mode")

// parser parses source text and generates cell ASTs.
type parser struct {
	// those fields are immutable after p.init
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File
	src     []byte

	// current token
	tok token.Token
	val token.Value

	// line of the end of the previous token, to detect line breaks between
	// tokens (semicolon insertion and restricted productions)
	prevLine int

	// function nesting depth relative to the cell body; the body itself is
	// depth 0
	funcDepth int

	// when > 0, the 'in' operator is not treated as binary (for-loop init
	// clause)
	noIn int

	// per-cell state, reset by parseCell
	async     bool
	generator bool
	fileAtts  map[string][]ast.Span
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, -1, len(src))
	p.src = src
	p.scanner.Init(p.file, src, p.errors.Add)
}

func (p *parser) parseCellEntry(src string) (cell *ast.Cell) {
	defer p.recovered()
	p.advance()
	cell = p.parseCell(src)
	if p.tok == token.SEMICOLON {
		p.advance()
	}
	p.expect(token.EOF)
	return cell
}

func (p *parser) parseModuleEntry(filename, src string) (mod *ast.Module) {
	defer p.recovered()
	p.advance()

	mod = &ast.Module{Name: filename}
	for p.tok != token.EOF {
		if p.tok == token.SEMICOLON {
			// stray separator between cells
			p.advance()
			continue
		}
		cell := p.parseCell(src)
		mod.Cells = append(mod.Cells, cell)
		// a separator is required unless the next cell starts on a new line
		p.expectSemi()
	}
	mod.EOF = p.val.Pos
	return mod
}

func (p *parser) recovered() {
	if err := recover(); err != nil {
		if err == errPanicMode {
			return
		}
		panic(err)
	}
}

// advance moves the cursor to the next token, skipping over comments. It
// records the line on which the previous token ended.
func (p *parser) advance() {
	if p.val.Pos.IsValid() {
		end := p.val.Pos + token.Pos(len(p.val.Raw))
		p.prevLine = p.file.Position(end).Line
	}
	for {
		p.tok = p.scanner.Scan(&p.val)
		if p.tok != token.COMMENT {
			break
		}
	}
}

// onNewLine returns true if there is a line break between the previous token
// and the current one.
func (p *parser) onNewLine() bool {
	return p.file.Position(p.val.Pos).Line > p.prevLine
}

// expect asserts that the current token is one of toks, consumes it and
// returns its position. On a mismatch it reports the error and unwinds.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	if !tokenIn(p.tok, toks...) {
		var lbl string
		for i, tok := range toks {
			if i > 0 {
				lbl += " or "
			}
			lbl += tok.GoString()
		}
		p.errorExpected(pos, lbl)
	}
	p.advance()
	return pos
}

// expectSemi consumes a statement terminator: an explicit semicolon, or a
// virtual one before '}', at the end of input or at a line break.
func (p *parser) expectSemi() {
	switch {
	case p.tok == token.SEMICOLON:
		p.advance()
	case p.tok == token.RBRACE || p.tok == token.EOF:
	case p.onNewLine():
	default:
		p.errorExpected(p.val.Pos, token.SEMICOLON.GoString())
	}
}

// errorExpected reports an "expected X, found Y" error at pos and unwinds.
func (p *parser) errorExpected(pos token.Pos, lbl string) {
	found := p.tok.String()
	if p.tok == token.IDENT {
		found += " " + p.val.Raw
	}
	p.error(pos, "expected "+lbl+", found "+found)
}

// error reports msg at pos and unwinds the parse.
func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(p.file.Position(pos), msg)
	panic(errPanicMode)
}

// peekToks scans up to n tokens past the current one without moving the
// cursor, using an independent scanner over the shared source. Scan errors
// are swallowed; the probe stops at EOF.
func (p *parser) peekToks(n int) []token.Token {
	s := p.lookaheadAfter()
	toks := make([]token.Token, 0, n)
	var v token.Value
	for len(toks) < n {
		tok := s.Scan(&v)
		if tok == token.COMMENT {
			continue
		}
		toks = append(toks, tok)
		if tok == token.EOF {
			break
		}
	}
	return toks
}

// peekTok returns the token following the current one.
func (p *parser) peekTok() token.Token {
	toks := p.peekToks(1)
	return toks[0]
}

// lookaheadAfter returns an independent scanner positioned immediately
// after the current token.
func (p *parser) lookaheadAfter() *scanner.Scanner {
	off := p.file.Offset(p.val.Pos) + len(p.val.Raw)
	var s scanner.Scanner
	s.InitAt(p.file, p.src, discardError, off)
	return &s
}

// lookaheadAt returns an independent scanner positioned at the start of the
// current token.
func (p *parser) lookaheadAt() *scanner.Scanner {
	var s scanner.Scanner
	s.InitAt(p.file, p.src, discardError, p.file.Offset(p.val.Pos))
	return &s
}

func discardError(token.Position, string) {}

func tokenIn(t token.Token, toks ...token.Token) bool {
	for _, tok := range toks {
		if t == tok {
			return true
		}
	}
	return false
}
