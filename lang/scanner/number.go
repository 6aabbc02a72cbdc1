package scanner

import (
	"strconv"
	"strings"
)

// number scans a number literal: decimal integers and floats with optional
// exponent, and radix-prefixed integers (0x, 0o, 0b). Digits may be grouped
// with '_' separators.
func (s *Scanner) number() (lit string, val float64) {
	startOff := s.off

	base := 10        // number base
	prefix := rune(0) // one of 0 (decimal), 'x', 'o', or 'b'
	digsep := 0       // bit 0: digit present, bit 1: '_' present

	// integer part
	if s.cur != '.' {
		if s.cur == '0' {
			s.advance()
			switch lower(s.cur) {
			case 'x':
				s.advance()
				base, prefix = 16, 'x'
			case 'o':
				s.advance()
				base, prefix = 8, 'o'
			case 'b':
				s.advance()
				base, prefix = 2, 'b'
			default:
				digsep = 1 // leading 0
			}
		}
		digsep |= s.digits(base)
	}

	// fractional part
	if s.cur == '.' && prefix == 0 {
		s.advance()
		digsep |= s.digits(10)
	}

	if digsep&1 == 0 {
		s.error(s.off, litname(prefix)+" has no digits")
	}

	// exponent
	if lower(s.cur) == 'e' && prefix == 0 {
		s.advance()
		s.advanceIf('+', '-')
		if s.digits(10)&1 == 0 {
			s.error(s.off, "exponent has no digits")
		}
	}

	lit = string(s.src[startOff:s.off])

	digits := lit
	if digsep&2 != 0 {
		digits = strings.ReplaceAll(digits, "_", "")
	}
	if prefix != 0 {
		u, err := strconv.ParseUint(digits[2:], base, 64)
		if err != nil && digsep&1 != 0 {
			s.error(startOff, "invalid "+litname(prefix))
		}
		val = float64(u)
	} else {
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil && digsep&1 != 0 {
			s.error(startOff, "invalid number literal")
		}
		val = f
	}
	return lit, val
}

// digits accepts the sequence { digit | '_' } and reports digit and
// separator presence as a bitset (bit 0: digit, bit 1: '_').
func (s *Scanner) digits(base int) (digsep int) {
	for {
		switch {
		case s.cur == '_':
			digsep |= 2
			s.advance()
		case base <= 10 && isDecimal(s.cur) && int(s.cur-'0') < base,
			base == 16 && isHexadecimal(s.cur):
			digsep |= 1
			s.advance()
		default:
			return digsep
		}
	}
}

func litname(prefix rune) string {
	switch prefix {
	case 'x':
		return "hexadecimal literal"
	case 'o':
		return "octal literal"
	case 'b':
		return "binary literal"
	}
	return "decimal literal"
}

func lower(rn rune) rune { return ('a' - 'A') | rn }

func isDecimal(rn rune) bool { return '0' <= rn && rn <= '9' }

func isHexadecimal(rn rune) bool {
	return isDecimal(rn) || 'a' <= lower(rn) && lower(rn) <= 'f'
}

func digitVal(rn rune) int {
	switch {
	case isDecimal(rn):
		return int(rn - '0')
	case 'a' <= lower(rn) && lower(rn) <= 'f':
		return int(lower(rn) - 'a' + 10)
	}
	return 16 // larger than any legal digit val
}
