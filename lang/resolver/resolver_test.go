package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/parser"
	"github.com/reedlang/reed/lang/resolver"
	"github.com/reedlang/reed/lang/scanner"
	"github.com/reedlang/reed/lang/token"
)

func resolveCell(t *testing.T, src string, globals *resolver.Globals) *ast.Cell {
	t.Helper()
	fset := token.NewFileSet()
	cell, err := parser.ParseCell(fset, "test.reed", []byte(src))
	require.NoError(t, err)
	require.NoError(t, resolver.ResolveCell(fset, cell, globals))
	return cell
}

func resolveErr(t *testing.T, src string) error {
	t.Helper()
	fset := token.NewFileSet()
	cell, err := parser.ParseCell(fset, "test.reed", []byte(src))
	require.NoError(t, err)
	err = resolver.ResolveCell(fset, cell, nil)
	require.Error(t, err)
	assert.Nil(t, cell.References)
	return err
}

func refStrings(cell *ast.Cell) []string {
	refs := make([]string, len(cell.References))
	for i, r := range cell.References {
		refs[i] = r.String()
	}
	return refs
}

func TestReferences(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"x = a + b", []string{"a", "b"}},
		{"a + a + a", []string{"a"}},
		{"{ let a = 1; return a + b; }", []string{"b"}},
		{"f = (u) => u * scale", []string{"scale"}},
		{"Math.sqrt(x)", []string{"x"}},
		{"fetch(url)", []string{"url"}},
		{"undefined", []string{}},
		{"this.x + 1", []string{}},
		{"`${first} ${last}`", []string{"first", "last"}},
		{"[...items, extra]", []string{"items", "extra"}},

		// viewof and mutable references
		{"viewof gain", []string{"viewof gain"}},
		{"x = viewof a + mutable b", []string{"viewof a", "mutable b"}},
		{"mutable total = mutable total + d", []string{"mutable total", "d"}},
		{"width + viewof width", []string{"width", "viewof width"}},

		// a local binding never shadows a viewof or mutable reference
		{"{ let x = 1; return viewof x; }", []string{"viewof x"}},

		// shorthand object properties reference the name; plain keys do
		// not. The literal needs parentheses, a leading brace after the
		// cell name opens a statement block.
		{"p = ({x, y: w})", []string{"x", "w"}},
		{"p = ({[k]: 1})", []string{"k"}},
		{"{ return {x, y: w}; }", []string{"x", "w"}},

		// the dynamic-import callee resolves to the host loader, only its
		// argument can reference cells
		{`import("https://cdn.example.com/lib.js")`, []string{}},
		{"lib = (await import(base + name)).default", []string{"base", "name"}},

		// dedup is per name and kind, ordered by first occurrence
		{"{ let x = w; { let y = w + z; } return z; }", []string{"w", "z"}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			cell := resolveCell(t, c.in, nil)
			assert.Equal(t, c.want, refStrings(cell))
		})
	}
}

func TestScoping(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		// var and function declarations hoist to the function scope
		{"{ f(); function f() { return g(); } }", []string{"g"}},
		{"{ a = init; var a; return a; }", []string{"init"}},
		{"{ if (cond) { var a = 1; } return a; }", []string{"cond"}},

		// parameters and catch bind
		{"f = (a, b) => a + b + c", []string{"c"}},
		{"f = (a, b = a + z) => b", []string{"z"}},
		{"{ try { risky(); } catch (e) { return e; } }", []string{"risky"}},

		// named function expressions can self-recurse
		{"f = function rec(n) { return n ? rec(n - 1) : done; }", []string{"done"}},

		// class names bind inside the class, extends resolves outside
		{"class Stack { push(v) { this.items.push(v); } }", []string{}},
		{"class A extends Base { m() { return new A(); } }", []string{"Base"}},

		// for loop heads scope to the loop
		{"{ for (let i = 0; i < n; i++) use(i); }", []string{"n", "use"}},
		{"{ for (const v of vals) use(v); }", []string{"vals", "use"}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			cell := resolveCell(t, c.in, nil)
			assert.Equal(t, c.want, refStrings(cell))
		})
	}
}

func TestArguments(t *testing.T) {
	// bound inside functions and methods, not in arrows or the cell body
	cell := resolveCell(t, "f = function () { return arguments.length; }", nil)
	assert.Empty(t, cell.References)

	cell = resolveCell(t, "class C { m() { return arguments[0]; } }", nil)
	assert.Empty(t, cell.References)

	err := resolveErr(t, "arguments")
	assert.ErrorContains(t, err, "arguments is not allowed")

	err = resolveErr(t, "f = () => arguments")
	assert.ErrorContains(t, err, "arguments is not allowed")
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		in  string
		msg string
	}{
		{"{ window = 1; }", "assignment to global variable: window"},
		{"{ Math += 1; }", "assignment to global variable: Math"},
		{"Date++", "assignment to global variable: Date"},
		{"f = () => (document = null)", "assignment to global variable: document"},
		{"{ let a = 1; let a = 2; }", "already declared in this block: a"},
		{"{ const b = 1; class b {} }", "already declared in this block: b"},
		{"f = (a, a) => a", "already declared in this block: a"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			err := resolveErr(t, c.in)
			assert.ErrorContains(t, err, c.msg)

			var errs scanner.ErrorList
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, "test.reed", errs[0].Pos.Filename)
		})
	}
}

func TestAssignToFreeName(t *testing.T) {
	// assigning to a free non-global name still records the reference
	cell := resolveCell(t, "{ counter = counter + 1; }", nil)
	assert.Equal(t, []string{"counter"}, refStrings(cell))
}

func TestCustomGlobals(t *testing.T) {
	g := resolver.NewGlobals([]string{"d3"})
	cell := resolveCell(t, "d3.csv(Math)", g)
	assert.Equal(t, []string{"Math"}, refStrings(cell))

	// an empty non-nil set recognizes nothing
	g = resolver.NewGlobals([]string{})
	cell = resolveCell(t, "Math.PI", g)
	assert.Equal(t, []string{"Math"}, refStrings(cell))
}

func TestDefaultGlobals(t *testing.T) {
	names := resolver.DefaultGlobals()
	require.NotEmpty(t, names)

	g := resolver.Default()
	for _, n := range names {
		assert.True(t, g.Has(n), n)
	}
	assert.False(t, g.Has("d3"))

	// the returned slice is a copy
	names[0] = "tampered"
	assert.False(t, resolver.Default().Has("tampered"))
}

func TestResolveEmptyAndImportCells(t *testing.T) {
	fset := token.NewFileSet()
	cell, err := parser.ParseCell(fset, "test.reed", []byte(";"))
	require.NoError(t, err)
	require.NoError(t, resolver.ResolveCell(fset, cell, nil))
	require.NotNil(t, cell.References)
	assert.Empty(t, cell.References)

	cell, err = parser.ParseCell(fset, "test.reed", []byte(`import {a} from "m"`))
	require.NoError(t, err)
	require.NoError(t, resolver.ResolveCell(fset, cell, nil))
	assert.Nil(t, cell.References)
}

func TestResolveModule(t *testing.T) {
	fset := token.NewFileSet()
	mod, err := parser.ParseModule(fset, "nb.reed", []byte("a = 1;\nb = a + w"))
	require.NoError(t, err)
	require.NoError(t, resolver.ResolveModule(fset, mod, nil))

	assert.Empty(t, mod.Cells[0].References)
	assert.Equal(t, []string{"a", "w"}, refStrings(mod.Cells[1]))
}

func TestResolveModuleStopsAtFirstError(t *testing.T) {
	fset := token.NewFileSet()
	mod, err := parser.ParseModule(fset, "nb.reed", []byte("x = { window = 1; };\ny = k"))
	require.NoError(t, err)

	err = resolver.ResolveModule(fset, mod, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "assignment to global variable: window")
	assert.Nil(t, mod.Cells[1].References)
}
