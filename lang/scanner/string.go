package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// shortString scans a single- or double-quoted string literal. The opening
// quote is already consumed. It returns the raw text including the quotes and
// the decoded value.
func (s *Scanner) shortString(opening rune) (lit, decoded string) {
	// opening quote already consumed, hence the -1
	startOff := s.off - 1
	var sb strings.Builder

	for {
		cur := s.cur
		if cur == '\n' || cur < 0 {
			s.error(startOff, "string literal not terminated")
			break
		}
		s.advance()
		if cur == opening {
			break
		}
		if cur == '\\' {
			s.escape(&sb)
		} else {
			sb.WriteRune(cur)
		}
	}
	return string(s.src[startOff:s.off]), sb.String()
}

// templatePiece scans a piece of a template literal, starting right after the
// opening backtick or right after the '}' that closes an interpolation. It
// stops at the closing backtick (more == false) or at a '${' interpolation
// opening (more == true). The raw text includes the delimiters on both sides.
func (s *Scanner) templatePiece() (lit, decoded string, more bool) {
	// opening delimiter already consumed, hence the -1
	startOff := s.off - 1
	var sb strings.Builder

	for {
		cur := s.cur
		if cur < 0 {
			s.error(startOff, "template literal not terminated")
			break
		}
		if cur == '`' {
			s.advance()
			break
		}
		if cur == '$' && s.peek() == '{' {
			s.advance()
			s.advance()
			more = true
			break
		}
		s.advance()
		if cur == '\\' {
			s.escape(&sb)
		} else {
			sb.WriteRune(cur)
		}
	}
	return string(s.src[startOff:s.off]), sb.String(), more
}

var simpleEscapes = [...]byte{
	'0':  0,
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'`':  '`',
}

// escape parses an escape sequence, writing its decoded value to sb. It
// expects the leading backslash to be consumed. An escaped line break
// contributes nothing (line continuation); an escaped character without
// special meaning contributes itself.
func (s *Scanner) escape(sb *strings.Builder) {
	// initial backslash already consumed, hence the -1
	startOff := s.off - 1

	cur := s.cur
	switch {
	case cur < 0:
		s.error(startOff, "escape sequence not terminated")
		return

	case cur == '\n':
		// line continuation, contributes nothing
		s.advance()
		return

	case cur == 'x':
		// \xhh - exactly 2 hexadecimal digits
		s.advance()
		var rn rune
		for i := 0; i < 2; i++ {
			if !isHexadecimal(s.cur) {
				s.errorf(s.off, "illegal character %#U in escape sequence", s.cur)
				return
			}
			rn = rn*16 + rune(digitVal(s.cur))
			s.advance()
		}
		sb.WriteRune(rn)
		return

	case cur == 'u':
		s.advance()
		var rn rune
		if s.advanceIf('{') {
			// \u{h+} - one or more hexadecimal digits
			var count int
			for isHexadecimal(s.cur) {
				rn = rn*16 + rune(digitVal(s.cur))
				s.advance()
				count++
			}
			if count == 0 || !s.advanceIf('}') {
				s.errorf(s.off, "illegal character %#U in escape sequence", s.cur)
				return
			}
		} else {
			// \uhhhh - exactly 4 hexadecimal digits
			for i := 0; i < 4; i++ {
				if !isHexadecimal(s.cur) {
					s.errorf(s.off, "illegal character %#U in escape sequence", s.cur)
					return
				}
				rn = rn*16 + rune(digitVal(s.cur))
				s.advance()
			}
		}
		if rn > unicode.MaxRune {
			s.error(startOff, "escape sequence is an invalid Unicode code point")
			rn = utf8.RuneError
		}
		sb.WriteRune(rn)
		return
	}

	s.advance()
	if int(cur) < len(simpleEscapes) && (simpleEscapes[cur] != 0 || cur == '0') {
		sb.WriteByte(simpleEscapes[cur])
		return
	}
	// any other escaped character is itself
	sb.WriteRune(cur)
}
