package notebook_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/notebook"
)

func TestParseCell(t *testing.T) {
	cell, err := notebook.ParseCell("chart = plot(data, {width})", nil)
	require.NoError(t, err)

	assert.Equal(t, "chart", cell.NameString())
	require.Len(t, cell.References, 3)
	assert.Equal(t, "plot", cell.References[0].Name)
	assert.Equal(t, "data", cell.References[1].Name)
	assert.Equal(t, "width", cell.References[2].Name)
}

func TestParseCellViewof(t *testing.T) {
	cell, err := notebook.ParseCell("viewof gain = slider(0, 11)", nil)
	require.NoError(t, err)

	require.NotNil(t, cell.Name)
	assert.Equal(t, ast.NameView, cell.Name.Kind)
	assert.Equal(t, "gain", cell.Name.Ident.Lit)
	require.Len(t, cell.References, 1)
	assert.Equal(t, "slider", cell.References[0].Name)
}

func TestParseCellOptions(t *testing.T) {
	// custom globals replace the default set entirely
	opts := &notebook.Options{Globals: []string{"d3", "topojson"}}
	cell, err := notebook.ParseCell("d3.json(url, topojson)", opts)
	require.NoError(t, err)
	require.Len(t, cell.References, 1)
	assert.Equal(t, "url", cell.References[0].Name)

	// with the defaults, Math is ambient
	cell, err = notebook.ParseCell("Math.sqrt(x)", nil)
	require.NoError(t, err)
	require.Len(t, cell.References, 1)
	assert.Equal(t, "x", cell.References[0].Name)
}

func TestParseCellErrors(t *testing.T) {
	cell, err := notebook.ParseCell("x = (1 +", nil)
	assert.Nil(t, cell)
	require.Error(t, err)

	cell, err = notebook.ParseCell("{ window = 1; }", nil)
	assert.Nil(t, cell)
	require.Error(t, err)
	assert.ErrorContains(t, err, "assignment to global variable: window")
}

func TestParseModule(t *testing.T) {
	src := strings.Join([]string{
		"width = 640;",
		"viewof gain = slider(0, 11);",
		"chart = plot(width, viewof gain)",
	}, "\n")
	mod, err := notebook.ParseModule(src, nil)
	require.NoError(t, err)
	require.Len(t, mod.Cells, 3)

	refs := mod.Cells[2].References
	require.Len(t, refs, 3)
	assert.Equal(t, "plot", refs[0].String())
	assert.Equal(t, "width", refs[1].String())
	assert.Equal(t, "viewof gain", refs[2].String())
}

func TestParseModuleFirstFailure(t *testing.T) {
	mod, err := notebook.ParseModule("a = 1;\nb = +", nil)
	assert.Nil(t, mod)
	require.Error(t, err)
}

func TestPeekName(t *testing.T) {
	name := notebook.PeekName("mutable total = 0")
	require.NotNil(t, name)
	assert.Equal(t, ast.NameMutable, name.Kind)
	assert.Equal(t, "total", name.Ident.Lit)

	assert.Nil(t, notebook.PeekName("1 + 2"))
	assert.Nil(t, notebook.PeekName(""))
}

func TestAsDiagnostic(t *testing.T) {
	_, err := notebook.ParseCell("x = \n@", nil)
	require.Error(t, err)

	d, ok := notebook.AsDiagnostic(err)
	require.True(t, ok)
	assert.Contains(t, d.Message, "illegal character")
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, 1, d.Column)
	assert.Equal(t, 5, d.Offset)

	_, ok = notebook.AsDiagnostic(assert.AnError)
	assert.False(t, ok)
}
