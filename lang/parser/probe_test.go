package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/parser"
)

func TestPeekName(t *testing.T) {
	cases := []struct {
		in   string
		kind ast.CellNameKind
		name string // "" means no name
	}{
		{"x = 1", ast.NamePlain, "x"},
		{"x=1", ast.NamePlain, "x"},
		{"viewof v = slider()", ast.NameView, "v"},
		{"mutable m = 0", ast.NameMutable, "m"},
		{"async task = run()", ast.NamePlain, "task"},

		// leading function or class declarations
		{"function f() {}", ast.NamePlain, "f"},
		{"function* g() { yield 1 }", ast.NamePlain, "g"},
		{"async function h() {}", ast.NamePlain, "h"},
		{"class C {}", ast.NamePlain, "C"},

		// comments are transparent
		{"/* size */ x = 1", ast.NamePlain, "x"},
		{"x // the name\n= 1", ast.NamePlain, "x"},

		// the name is reported even if the rest of the source is broken
		{`x = "unterminated`, ast.NamePlain, "x"},
		{"viewof v = }{", ast.NameView, "v"},

		// a declaration name that ends the input is still being typed
		{"function f", 0, ""},
		{"function f ", ast.NamePlain, "f"},

		{"", 0, ""},
		{";", 0, ""},
		{"42", 0, ""},
		{"x + 1", 0, ""},
		{"x == 1", 0, ""},
		{"viewof x", 0, ""},
		{"function () {}", 0, ""},
		{"@", 0, ""},
		{`import {a} from "m"`, 0, ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			name := parser.PeekName([]byte(c.in))
			if c.name == "" {
				assert.Nil(t, name)
				return
			}
			require.NotNil(t, name)
			assert.Equal(t, c.kind, name.Kind)
			assert.Equal(t, c.name, name.Ident.Lit)
		})
	}
}

func TestPeekNameAgreesWithParse(t *testing.T) {
	// on well-formed named cells the probe and the full parse agree
	srcs := []string{
		"x = 1",
		"viewof gain = slider(0, 11)",
		"mutable total = 0",
		"function fib(n) { return n < 2 ? n : fib(n - 1) + fib(n - 2); }",
		"class Queue {}",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			_, cell := parseCell(t, src)
			name := parser.PeekName([]byte(src))
			require.NotNil(t, cell.Name)
			require.NotNil(t, name)
			assert.Equal(t, cell.Name.Kind, name.Kind)
			assert.Equal(t, cell.Name.Ident.Lit, name.Ident.Lit)
		})
	}
}
