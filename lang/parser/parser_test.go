package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/parser"
	"github.com/reedlang/reed/lang/scanner"
	"github.com/reedlang/reed/lang/token"
)

func parseCell(t *testing.T, src string) (*token.FileSet, *ast.Cell) {
	t.Helper()
	fset := token.NewFileSet()
	cell, err := parser.ParseCell(fset, "test.reed", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, cell)
	return fset, cell
}

func TestParseCellNames(t *testing.T) {
	cases := []struct {
		in   string
		want string // NameString, "" for anonymous
	}{
		{"x = 1", "x"},
		{"x=1", "x"},
		{"viewof v = slider()", "viewof v"},
		{"mutable m = 0", "mutable m"},

		// the keywords themselves are valid plain cell names
		{"viewof = 1", "viewof"},
		{"mutable = 2", "mutable"},

		// a leading named function or class declares the cell name
		{"function f() { return 1 }", "f"},
		{"function* g() { yield 1 }", "g"},
		{"async function h() { await x }", "h"},
		{"class Point { constructor(x) { this.x = x } }", "Point"},

		// an explicit name wins over the body's own name
		{"f = function g() {}", "f"},

		{"1 + 2", ""},
		{"function () {}", ""},
		{"class {}", ""},
		{"viewof x", ""}, // a viewof reference, not a named cell
		{"x == 1", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			_, cell := parseCell(t, c.in)
			assert.Equal(t, c.want, cell.NameString())
		})
	}
}

func TestParseCellNameKinds(t *testing.T) {
	_, cell := parseCell(t, "viewof v = 1")
	require.NotNil(t, cell.Name)
	assert.Equal(t, ast.NameView, cell.Name.Kind)
	assert.Equal(t, "v", cell.Name.Ident.Lit)
	assert.True(t, cell.Name.Keyword.IsValid())
	assert.True(t, cell.Eq.IsValid())

	_, cell = parseCell(t, "mutable m = 1")
	require.NotNil(t, cell.Name)
	assert.Equal(t, ast.NameMutable, cell.Name.Kind)
	assert.Equal(t, "m", cell.Name.Ident.Lit)

	_, cell = parseCell(t, "x = 1")
	require.NotNil(t, cell.Name)
	assert.Equal(t, ast.NamePlain, cell.Name.Kind)
	assert.False(t, cell.Name.Keyword.IsValid())
}

func TestParseCellBodies(t *testing.T) {
	_, cell := parseCell(t, "x = 1 + 2")
	require.IsType(t, &ast.BinOpExpr{}, cell.Body)

	_, cell = parseCell(t, "{ let a = 1; return a * 2; }")
	require.IsType(t, &ast.Block{}, cell.Body)

	_, cell = parseCell(t, `import {a} from "m"`)
	require.IsType(t, &ast.ImportDecl{}, cell.Body)
	assert.Nil(t, cell.Name)
}

func TestParseEmptyCell(t *testing.T) {
	for _, src := range []string{"", ";", "  \n ", " ; "} {
		t.Run(src, func(t *testing.T) {
			_, cell := parseCell(t, src)
			assert.Nil(t, cell.Name)
			assert.Nil(t, cell.Body)
			assert.Equal(t, cell.Start, cell.End)
		})
	}
}

func TestParseCellAsyncGenerator(t *testing.T) {
	cases := []struct {
		in        string
		async     bool
		generator bool
	}{
		{"await x", true, false},
		{"x = await fetch(url)", true, false},
		{"{ const r = await load(); return r; }", true, false},
		{"async function f() { await g(); }", true, false},
		{"{ for await (const v of s) { use(v); } }", true, false},

		{"yield 1", false, true},
		{"{ yield a; yield b; }", false, true},
		{"function* f() { yield 1; }", false, true},
		{"{ while (more()) yield next(); }", false, true},

		// a declaration one level deep still marks the cell
		{"{ function* make() { yield seed; } }", false, true},

		// await or yield nested two levels deep does not mark the cell
		{"function f() { async function g() { await x; } }", false, false},
		{"f = () => async () => { await x }", false, false},
		{"f = function () { return function* () { yield 1; }; }", false, false},
		{"async function f() { await p; return function* g() { yield 1; }; }", true, false},

		{"x = 1", false, false},
		{"async () => 1", false, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			_, cell := parseCell(t, c.in)
			assert.Equal(t, c.async, cell.Async, "async")
			assert.Equal(t, c.generator, cell.Generator, "generator")
		})
	}
}

func TestParseFileAttachments(t *testing.T) {
	src := `{
  const a = FileAttachment("data.csv");
  const b = FileAttachment("img.png");
  const c = FileAttachment("data.csv");
  return [a, b, c];
}`
	fset, cell := parseCell(t, src)
	require.Len(t, cell.FileAttachments, 2)

	file := fset.File(cell.Start)
	require.NotNil(t, file)

	spans := cell.FileAttachments["data.csv"]
	require.Len(t, spans, 2)
	for _, sp := range spans {
		assert.Equal(t, `"data.csv"`, src[file.Offset(sp.Start):file.Offset(sp.End)])
	}
	assert.Less(t, spans[0].Start, spans[1].Start)

	spans = cell.FileAttachments["img.png"]
	require.Len(t, spans, 1)
	assert.Equal(t, `"img.png"`, src[file.Offset(spans[0].Start):file.Offset(spans[0].End)])
}

func TestParseFileAttachmentTemplate(t *testing.T) {
	src := "att = FileAttachment(`quakes.json`)"
	fset, cell := parseCell(t, src)

	spans := cell.FileAttachments["quakes.json"]
	require.Len(t, spans, 1)
	file := fset.File(cell.Start)
	assert.Equal(t, "`quakes.json`", src[file.Offset(spans[0].Start):file.Offset(spans[0].End)])
}

func TestParseFileAttachmentErrors(t *testing.T) {
	cases := []struct {
		in  string
		msg string
	}{
		{"FileAttachment", "invalid reassignment of FileAttachment"},
		{"x = FileAttachment", "invalid reassignment of FileAttachment"},
		{"f(FileAttachment)", "invalid reassignment of FileAttachment"},
		{"x = FileAttachment(name)", "FileAttachment requires a single literal string argument"},
		{"x = FileAttachment()", "FileAttachment requires a single literal string argument"},
		{`x = FileAttachment("a", "b")`, "FileAttachment requires a single literal string argument"},
		{`x = FileAttachment("a" + "b")`, "FileAttachment requires a single literal string argument"},
		{"x = FileAttachment(`f${n}`)", "FileAttachment requires a single literal string argument"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			fset := token.NewFileSet()
			cell, err := parser.ParseCell(fset, "test.reed", []byte(c.in))
			assert.Nil(t, cell)
			require.Error(t, err)
			assert.ErrorContains(t, err, c.msg)
		})
	}
}

func TestParseImportCell(t *testing.T) {
	fset := token.NewFileSet()
	cell, err := parser.ParseCell(fset, "test.reed",
		[]byte(`import {a, b as c, viewof d, mutable e as f} from "@user/notebook"`))
	require.NoError(t, err)

	decl, ok := cell.Body.(*ast.ImportDecl)
	require.True(t, ok)
	require.Len(t, decl.Specs, 4)
	assert.Empty(t, decl.Injects)
	assert.False(t, decl.With.IsValid())
	assert.Equal(t, "@user/notebook", decl.Source.Value)

	wantSpecs := []struct {
		kind     ast.CellNameKind
		imported string
		local    string
	}{
		{ast.NamePlain, "a", "a"},
		{ast.NamePlain, "b", "c"},
		{ast.NameView, "d", "d"},
		{ast.NameMutable, "e", "f"},
	}
	for i, want := range wantSpecs {
		spec := decl.Specs[i]
		assert.Equal(t, want.kind, spec.Kind, "spec %d kind", i)
		assert.Equal(t, want.imported, spec.Imported.Lit, "spec %d imported", i)
		assert.Equal(t, want.local, spec.LocalName(), "spec %d local", i)
	}
}

func TestParseImportInjections(t *testing.T) {
	_, cell := parseCell(t, `import {chart} with {width as w, viewof range} from "@d3/chart"`)

	decl := cell.Body.(*ast.ImportDecl)
	require.Len(t, decl.Specs, 1)
	require.Len(t, decl.Injects, 2)
	assert.True(t, decl.With.IsValid())

	assert.Equal(t, "width", decl.Injects[0].Imported.Lit)
	assert.Equal(t, "w", decl.Injects[0].LocalName())
	assert.Equal(t, ast.NameView, decl.Injects[1].Kind)
	assert.Equal(t, "range", decl.Injects[1].Imported.Lit)
}

func TestParseImportErrors(t *testing.T) {
	cases := []struct {
		in  string
		msg string
	}{
		{`import {a} "m"`, "expected from"},
		{`import {a} from m`, "expected string literal, found identifier m"},
		{`import a from "m"`, "expected '{'"},
		{`import {2} from "m"`, "expected identifier"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			fset := token.NewFileSet()
			cell, err := parser.ParseCell(fset, "test.reed", []byte(c.in))
			assert.Nil(t, cell)
			require.Error(t, err)
			assert.ErrorContains(t, err, c.msg)
		})
	}
}

func TestParseDynamicImportCell(t *testing.T) {
	// import(...) is a dynamic-import call expression, an anonymous cell
	_, cell := parseCell(t, `import("https://cdn.example.com/lib.js")`)
	assert.Nil(t, cell.Name)
	call, ok := cell.Body.(*ast.CallExpr)
	require.True(t, ok)
	fn, ok := call.Fn.(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "import", fn.Lit)
	require.Len(t, call.Args, 1)

	// also valid in nested expression positions
	_, cell = parseCell(t, `lib = (await import(url)).default`)
	assert.Equal(t, "lib", cell.NameString())
	assert.True(t, cell.Async)
}

func TestParseDynamicImportErrors(t *testing.T) {
	// the import keyword as an expression requires an immediate call
	for _, src := range []string{"x = import", "x = import.meta", "f(import)"} {
		t.Run(src, func(t *testing.T) {
			fset := token.NewFileSet()
			cell, err := parser.ParseCell(fset, "test.reed", []byte(src))
			assert.Nil(t, cell)
			require.Error(t, err)
			assert.ErrorContains(t, err, "expected expression, found import")
		})
	}
}

func TestParseModule(t *testing.T) {
	fset := token.NewFileSet()
	src := "width = 640;\nviewof gain = slider();\nchart = plot(width, gain)"
	mod, err := parser.ParseModule(fset, "nb.reed", []byte(src))
	require.NoError(t, err)
	require.Len(t, mod.Cells, 3)

	assert.Equal(t, "width", mod.Cells[0].NameString())
	assert.Equal(t, "viewof gain", mod.Cells[1].NameString())
	assert.Equal(t, "chart", mod.Cells[2].NameString())
	for _, cell := range mod.Cells {
		assert.Equal(t, src, cell.Src)
	}
}

func TestParseModuleNewlineSeparated(t *testing.T) {
	fset := token.NewFileSet()
	mod, err := parser.ParseModule(fset, "nb.reed", []byte("a = 1\nb = 2"))
	require.NoError(t, err)
	require.Len(t, mod.Cells, 2)
	assert.Equal(t, "a", mod.Cells[0].NameString())
	assert.Equal(t, "b", mod.Cells[1].NameString())
}

func TestParseModuleStraySemicolons(t *testing.T) {
	fset := token.NewFileSet()
	mod, err := parser.ParseModule(fset, "nb.reed", []byte(";;a = 1;;\n;b = 2;;"))
	require.NoError(t, err)
	require.Len(t, mod.Cells, 2)
	assert.Equal(t, "a", mod.Cells[0].NameString())
	assert.Equal(t, "b", mod.Cells[1].NameString())
}

func TestParseModuleEmpty(t *testing.T) {
	fset := token.NewFileSet()
	mod, err := parser.ParseModule(fset, "nb.reed", nil)
	require.NoError(t, err)
	assert.Empty(t, mod.Cells)
}

func TestParseModuleMissingSeparator(t *testing.T) {
	fset := token.NewFileSet()
	mod, err := parser.ParseModule(fset, "nb.reed", []byte("a = 1 b = 2"))
	assert.Nil(t, mod)
	require.Error(t, err)
	assert.ErrorContains(t, err, "expected ';'")
}

func TestParseErrorsNoPartialAST(t *testing.T) {
	cases := []string{
		"x = ",
		"x = (1 + ",
		"{ let a = ",
		"for (;;) {}", // statements need a block body
		"x = 1 2",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			fset := token.NewFileSet()
			cell, err := parser.ParseCell(fset, "test.reed", []byte(src))
			assert.Nil(t, cell)
			require.Error(t, err)

			var errs scanner.ErrorList
			require.ErrorAs(t, err, &errs)
			require.NotEmpty(t, errs)
			assert.Equal(t, "test.reed", errs[0].Pos.Filename)
		})
	}
}

func TestParseViewofMutableExpressions(t *testing.T) {
	_, cell := parseCell(t, "viewof x")
	view, ok := cell.Body.(*ast.ViewExpr)
	require.True(t, ok)
	assert.Equal(t, "x", view.Ident.Lit)

	_, cell = parseCell(t, "f = () => mutable count + 1")
	require.IsType(t, &ast.ArrowExpr{}, cell.Body)

	// a line break after the keyword means a plain identifier reference
	_, cell = parseCell(t, "viewof\n+ 1")
	bin, ok := cell.Body.(*ast.BinOpExpr)
	require.True(t, ok)
	ident, ok := bin.Left.(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "viewof", ident.Lit)
}

func TestParseMutableAssignment(t *testing.T) {
	_, cell := parseCell(t, "set = () => mutable count = mutable count + 1")
	arrow, ok := cell.Body.(*ast.ArrowExpr)
	require.True(t, ok)

	assign, ok := arrow.Body.(*ast.AssignExpr)
	require.True(t, ok)
	require.IsType(t, &ast.MutableExpr{}, assign.Left)
}
