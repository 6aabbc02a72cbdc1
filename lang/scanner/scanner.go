// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/reedlang/reed/lang/token"
)

// Scanner tokenizes source text for the parser to consume.
type Scanner struct {
	// immutable state after Init
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string) // error handler for scanning errors

	// mutable scanning state
	invalidByte byte // when cur==RuneError due to failed utf8 decode, this is the invalid byte
	cur         rune // current character
	off         int  // character offset in bytes of cur
	roff        int  // reading offset in bytes (position after current character)
}

var (
	// byte order mark, only permitted as very first characters
	bom = [3]byte{0xEF, 0xBB, 0xBF}
	// hashbang line, only permitted as very first line (or immediately after
	// bom)
	hashBang = [2]byte{'#', '!'}
)

// Init initializes the scanner to tokenize a new source. It panics if the
// file size is not the same as the length of the src slice.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}
	s.file = file
	s.src = src
	s.err = errHandler

	s.invalidByte = 0
	s.cur = ' '
	s.off = 0
	s.roff = 0

	// skip initial BOM if present
	if len(src) >= len(bom) && bytes.Equal(src[:len(bom)], bom[:]) {
		s.off += len(bom)
		s.roff += len(bom)
	}
	// skip initial hashbang line if present
	if len(src)-s.roff >= len(hashBang) && bytes.Equal(src[s.roff:s.roff+len(hashBang)], hashBang[:]) {
		for s.cur != '\n' && s.cur != -1 {
			s.advance()
		}
	}
	s.advance()
}

// InitAt is like Init but starts scanning at byte offset off. It is used by
// the speculative lookahead parser, which shares the same immutable source
// and file but keeps fully independent scanning state.
func (s *Scanner) InitAt(file *token.File, src []byte, errHandler func(token.Position, string), off int) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}
	if off < 0 || off > len(src) {
		panic(fmt.Sprintf("offset %d out of range for src len %d", off, len(src)))
	}
	s.file = file
	s.src = src
	s.err = errHandler

	s.invalidByte = 0
	s.cur = ' '
	s.off = off
	s.roff = off
	s.advance()
}

// peek returns the byte following the most recently read character without
// advancing the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// peekAt is like peek but looks n bytes past the most recently read
// character.
func (s *Scanner) peekAt(n int) byte {
	if s.roff+n < len(s.src) {
		return s.src[s.roff+n]
	}
	return 0
}

// read the next Unicode char into s.cur; s.cur < 0 means end-of-file.
func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.file.AddLine(s.roff)
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff

	// fast path if the rune is an ASCII char, no decoding necessary
	s.invalidByte = 0
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		// not ASCII
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.roff, "illegal UTF-8 encoding")
			// store the actual invalid byte
			s.invalidByte = s.src[s.roff]
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	s.err(s.file.Position(s.file.Pos(off)), msg)
}

func (s *Scanner) errorf(off int, msg string, args ...any) {
	s.error(off, fmt.Sprintf(msg, args...))
}

// advance only if the current char matches any of the specified ones.
func (s *Scanner) advanceIf(matches ...byte) bool {
	if s.cur >= 0 && s.cur < utf8.RuneSelf && bytes.ContainsRune(matches, s.cur) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespace()

	// current token start
	startOff := s.off
	startPos := s.file.Pos(startOff)

	switch cur := s.cur; {
	case isIdentStart(cur):
		// keywords and identifiers
		lit := s.ident()
		tok = token.IDENT
		if len(lit) > 1 {
			// keywords are longer than one letter - avoid lookup otherwise
			tok = token.LookupKw(lit)
		}
		*tokVal = token.Value{Raw: lit, Pos: startPos}

	case isDecimal(cur) || cur == '.' && isDecimal(rune(s.peek())):
		// number literal
		lit, val := s.number()
		tok = token.NUMBER
		*tokVal = token.Value{Raw: lit, Pos: startPos, Float: val}

	default:
		// keywords, identifiers and numbers are done

		s.advance() // always make progress
		switch cur {
		case '"', '\'':
			tok = token.STRING
			lit, val := s.shortString(cur)
			*tokVal = token.Value{Raw: lit, Pos: startPos, String: val}

		case '`':
			tok = token.TEMPLATE
			lit, val, more := s.templatePiece()
			*tokVal = token.Value{Raw: lit, Pos: startPos, String: val, More: more}

		case '/':
			// can be a comment, /= or /
			switch {
			case s.cur == '/':
				tok = token.COMMENT
				lit, val := s.lineComment()
				*tokVal = token.Value{Raw: lit, Pos: startPos, String: val}
			case s.cur == '*':
				tok = token.COMMENT
				lit, val := s.blockComment()
				*tokVal = token.Value{Raw: lit, Pos: startPos, String: val}
			case s.advanceIf('='):
				tok = s.punct(token.SLASHEQ, startPos, tokVal)
			default:
				tok = s.punct(token.SLASH, startPos, tokVal)
			}

		case ';', ',', '(', ')', '[', ']', '{', '}', ':', '~':
			// unambiguous single-char punctuation
			tok = s.punct(singlePuncts[cur], startPos, tokVal)

		case '+':
			switch {
			case s.advanceIf('+'):
				tok = s.punct(token.PLUSPLUS, startPos, tokVal)
			case s.advanceIf('='):
				tok = s.punct(token.PLUSEQ, startPos, tokVal)
			default:
				tok = s.punct(token.PLUS, startPos, tokVal)
			}

		case '-':
			switch {
			case s.advanceIf('-'):
				tok = s.punct(token.MINUSMINUS, startPos, tokVal)
			case s.advanceIf('='):
				tok = s.punct(token.MINUSEQ, startPos, tokVal)
			default:
				tok = s.punct(token.MINUS, startPos, tokVal)
			}

		case '*':
			switch {
			case s.cur == '*':
				s.advance()
				if s.advanceIf('=') {
					tok = s.punct(token.STARSTAREQ, startPos, tokVal)
				} else {
					tok = s.punct(token.STARSTAR, startPos, tokVal)
				}
			case s.advanceIf('='):
				tok = s.punct(token.STAREQ, startPos, tokVal)
			default:
				tok = s.punct(token.STAR, startPos, tokVal)
			}

		case '%':
			if s.advanceIf('=') {
				tok = s.punct(token.PERCENTEQ, startPos, tokVal)
			} else {
				tok = s.punct(token.PERCENT, startPos, tokVal)
			}

		case '&':
			switch {
			case s.cur == '&':
				s.advance()
				if s.advanceIf('=') {
					tok = s.punct(token.AMPAMPEQ, startPos, tokVal)
				} else {
					tok = s.punct(token.AMPAMP, startPos, tokVal)
				}
			case s.advanceIf('='):
				tok = s.punct(token.AMPEQ, startPos, tokVal)
			default:
				tok = s.punct(token.AMPERSAND, startPos, tokVal)
			}

		case '|':
			switch {
			case s.cur == '|':
				s.advance()
				if s.advanceIf('=') {
					tok = s.punct(token.PIPEPIPEEQ, startPos, tokVal)
				} else {
					tok = s.punct(token.PIPEPIPE, startPos, tokVal)
				}
			case s.advanceIf('='):
				tok = s.punct(token.PIPEEQ, startPos, tokVal)
			default:
				tok = s.punct(token.PIPE, startPos, tokVal)
			}

		case '^':
			if s.advanceIf('=') {
				tok = s.punct(token.CARETEQ, startPos, tokVal)
			} else {
				tok = s.punct(token.CARET, startPos, tokVal)
			}

		case '<':
			switch {
			case s.cur == '<':
				s.advance()
				if s.advanceIf('=') {
					tok = s.punct(token.LTLTEQ, startPos, tokVal)
				} else {
					tok = s.punct(token.LTLT, startPos, tokVal)
				}
			case s.advanceIf('='):
				tok = s.punct(token.LE, startPos, tokVal)
			default:
				tok = s.punct(token.LT, startPos, tokVal)
			}

		case '>':
			switch {
			case s.cur == '>':
				s.advance()
				switch {
				case s.cur == '>':
					s.advance()
					if s.advanceIf('=') {
						tok = s.punct(token.GTGTGTEQ, startPos, tokVal)
					} else {
						tok = s.punct(token.GTGTGT, startPos, tokVal)
					}
				case s.advanceIf('='):
					tok = s.punct(token.GTGTEQ, startPos, tokVal)
				default:
					tok = s.punct(token.GTGT, startPos, tokVal)
				}
			case s.advanceIf('='):
				tok = s.punct(token.GE, startPos, tokVal)
			default:
				tok = s.punct(token.GT, startPos, tokVal)
			}

		case '=':
			switch {
			case s.cur == '=':
				s.advance()
				if s.advanceIf('=') {
					tok = s.punct(token.EQEQEQ, startPos, tokVal)
				} else {
					tok = s.punct(token.EQEQ, startPos, tokVal)
				}
			case s.advanceIf('>'):
				tok = s.punct(token.ARROW, startPos, tokVal)
			default:
				tok = s.punct(token.EQ, startPos, tokVal)
			}

		case '!':
			switch {
			case s.cur == '=':
				s.advance()
				if s.advanceIf('=') {
					tok = s.punct(token.BANGEQEQ, startPos, tokVal)
				} else {
					tok = s.punct(token.BANGEQ, startPos, tokVal)
				}
			default:
				tok = s.punct(token.BANG, startPos, tokVal)
			}

		case '?':
			switch {
			case s.cur == '?':
				s.advance()
				if s.advanceIf('=') {
					tok = s.punct(token.QQEQ, startPos, tokVal)
				} else {
					tok = s.punct(token.QQ, startPos, tokVal)
				}
			case s.cur == '.' && !isDecimal(rune(s.peek())):
				// '?.' but not '?.5' (conditional with a fractional number)
				s.advance()
				tok = s.punct(token.QUESTIONDOT, startPos, tokVal)
			default:
				tok = s.punct(token.QUESTION, startPos, tokVal)
			}

		case '.':
			if s.cur == '.' && s.peek() == '.' {
				s.advance()
				s.advance()
				tok = s.punct(token.DOTDOTDOT, startPos, tokVal)
			} else {
				tok = s.punct(token.DOT, startPos, tokVal)
			}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Pos: startPos}

		default:
			if cur == utf8.RuneError && s.invalidByte > 0 {
				cur = rune(s.invalidByte)
				s.invalidByte = 0
			}
			s.errorf(startOff, "illegal character %#U", cur)
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: string(cur), Pos: startPos}
		}
	}
	return tok
}

// ScanTemplate resumes scanning a template literal immediately after the '}'
// token closing an interpolation. The parser drives it in place of Scan when
// it knows it is inside a template; the returned token is always TEMPLATE and
// its raw text includes the '}' delimiter.
func (s *Scanner) ScanTemplate(tokVal *token.Value) token.Token {
	startPos := s.file.Pos(s.off - 1)
	lit, val, more := s.templatePiece()
	*tokVal = token.Value{Raw: lit, Pos: startPos, String: val, More: more}
	return token.TEMPLATE
}

var singlePuncts = map[rune]token.Token{
	';': token.SEMICOLON,
	',': token.COMMA,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACK,
	']': token.RBRACK,
	'{': token.LBRACE,
	'}': token.RBRACE,
	':': token.COLON,
	'~': token.TILDE,
}

func (s *Scanner) punct(tok token.Token, pos token.Pos, tokVal *token.Value) token.Token {
	*tokVal = token.Value{Raw: tok.String(), Pos: pos}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isIdentStart(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) lineComment() (lit, val string) {
	// first '/' already consumed, hence the -1
	startOff := s.off - 1
	for s.cur != '\n' && s.cur != -1 {
		s.advance()
	}
	return string(s.src[startOff:s.off]), string(s.src[startOff+2 : s.off])
}

func (s *Scanner) blockComment() (lit, val string) {
	// '/' already consumed, '*' is current, hence the -1
	startOff := s.off - 1
	s.advance() // consume '*'

	terminated := false
	for s.cur != -1 {
		if s.cur == '*' && s.peek() == '/' {
			s.advance()
			s.advance()
			terminated = true
			break
		}
		s.advance()
	}
	if !terminated {
		s.error(startOff, "block comment not terminated")
		return string(s.src[startOff:s.off]), string(s.src[startOff+2 : s.off])
	}
	return string(s.src[startOff:s.off]), string(s.src[startOff+2 : s.off-2])
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.cur) {
		s.advance()
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isIdentStart(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' || rn == '$' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9' ||
		rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}
