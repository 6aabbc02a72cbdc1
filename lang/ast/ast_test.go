package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/parser"
	"github.com/reedlang/reed/lang/token"
)

func TestIsAssignable(t *testing.T) {
	ident := &ast.IdentExpr{Lit: "x"}
	cases := []struct {
		in   ast.Expr
		want bool
	}{
		{ident, true},
		{&ast.MutableExpr{Ident: ident}, true},
		{&ast.DotExpr{Left: ident, Right: ident}, true},
		{&ast.DotExpr{Left: ident, Right: ident, Optional: true}, false},
		{&ast.IndexExpr{Prefix: ident, Index: ident}, true},
		{&ast.IndexExpr{Prefix: ident, Index: ident, Optional: true}, false},
		{&ast.ParenExpr{Expr: ident}, true},
		{&ast.LiteralExpr{Type: token.NUMBER}, false},
		{&ast.ViewExpr{Ident: ident}, false},
		{&ast.CallExpr{Fn: ident}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ast.IsAssignable(c.in), "%T", c.in)
	}
}

func TestCellNameString(t *testing.T) {
	ident := &ast.IdentExpr{Lit: "x"}
	cases := []struct {
		cell *ast.Cell
		want string
	}{
		{&ast.Cell{}, ""},
		{&ast.Cell{Name: &ast.CellName{Kind: ast.NamePlain, Ident: ident}}, "x"},
		{&ast.Cell{Name: &ast.CellName{Kind: ast.NameView, Ident: ident}}, "viewof x"},
		{&ast.Cell{Name: &ast.CellName{Kind: ast.NameMutable, Ident: ident}}, "mutable x"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.cell.NameString())
	}
}

func TestRefString(t *testing.T) {
	assert.Equal(t, "x", (&ast.Ref{Kind: ast.NamePlain, Name: "x"}).String())
	assert.Equal(t, "viewof x", (&ast.Ref{Kind: ast.NameView, Name: "x"}).String())
	assert.Equal(t, "mutable x", (&ast.Ref{Kind: ast.NameMutable, Name: "x"}).String())
}

func TestWalk(t *testing.T) {
	fset := token.NewFileSet()
	cell, err := parser.ParseCell(fset, "test.reed", []byte("x = f(a + 1, [b])"))
	require.NoError(t, err)

	var enters, exits int
	var idents []string
	var visit ast.VisitorFunc
	visit = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			enters++
			if id, ok := n.(*ast.IdentExpr); ok {
				idents = append(idents, id.Lit)
			}
		} else {
			exits++
		}
		return visit
	}
	ast.Walk(visit, cell)

	assert.Equal(t, enters, exits)
	assert.Equal(t, []string{"x", "f", "a", "b"}, idents)
}

func TestWalkSkipsChildren(t *testing.T) {
	fset := token.NewFileSet()
	cell, err := parser.ParseCell(fset, "test.reed", []byte("x = f(a)"))
	require.NoError(t, err)

	// a nil visitor from the enter call prunes the subtree
	var seen int
	var visit ast.VisitorFunc
	visit = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			seen++
			if _, ok := n.(*ast.CallExpr); ok {
				return nil
			}
		}
		return visit
	}
	ast.Walk(visit, cell)

	// cell, name, name ident, call: nothing below the call is entered
	assert.Equal(t, 4, seen)
}
