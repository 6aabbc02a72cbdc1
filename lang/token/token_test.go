package token

import (
	"testing"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupKw(t *testing.T) {
	cases := []struct {
		in   string
		want Token
	}{
		{"await", AWAIT},
		{"break", BREAK},
		{"class", CLASS},
		{"function", FUNCTION},
		{"import", IMPORT},
		{"in", IN},
		{"instanceof", INSTANCEOF},
		{"typeof", TYPEOF},
		{"yield", YIELD},

		// contextual keywords tokenize as identifiers
		{"as", IDENT},
		{"async", IDENT},
		{"from", IDENT},
		{"get", IDENT},
		{"mutable", IDENT},
		{"of", IDENT},
		{"set", IDENT},
		{"static", IDENT},
		{"viewof", IDENT},

		{"x", IDENT},
		{"", IDENT},
		{"Await", IDENT},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := LookupKw(c.in); got != c.want {
				t.Errorf("want %s, got %s", c.want, got)
			}
		})
	}
}

func TestTokenPredicates(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		wantKw := tok >= kwStart && tok <= kwEnd
		if got := tok.IsKeyword(); got != wantKw {
			t.Errorf("%s: IsKeyword want %t, got %t", tok, wantKw, got)
		}
		wantAssign := tok >= assignStart && tok <= assignEnd
		if got := tok.IsAssignOp(); got != wantAssign {
			t.Errorf("%s: IsAssignOp want %t, got %t", tok, wantAssign, got)
		}
	}
	if !EQ.IsAssignOp() || !QQEQ.IsAssignOp() {
		t.Error("EQ and QQEQ must be assignment operators")
	}
	if PLUS.IsAssignOp() {
		t.Error("PLUS must not be an assignment operator")
	}
}

func TestTokenLiteral(t *testing.T) {
	cases := []struct {
		tok  Token
		val  Value
		want string
	}{
		{IDENT, Value{Raw: "foo"}, "foo"},
		{STRING, Value{Raw: `"a\nb"`, String: "a\nb"}, `"a\nb"`},
		{TEMPLATE, Value{Raw: "`hi`", String: "hi"}, `"hi"`},
		{COMMENT, Value{Raw: "// hi", String: " hi"}, " hi"},
		{NUMBER, Value{Raw: "1.5", Float: 1.5}, "1.5"},
		{NUMBER, Value{Raw: "0x10", Float: 16}, "16"},
		{PLUS, Value{Raw: "+"}, ""},
		{EOF, Value{}, ""},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			if got := c.tok.Literal(c.val); got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}
