// Parts of the resolver package are adapted from the Starlark source code:
// https://github.com/google/starlark-go/tree/ee8ed142361c69d52fe8e9fb5e311d2a0a7c02de
//
// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolver computes the free-variable references of a parsed cell.
//
// # Scopes
//
// The body of a cell is resolved with standard lexical scoping: var and
// function declarations are hoisted to the nearest enclosing function scope
// (the cell body being the outermost one), while let, const and class
// declarations bind at their statement. Function parameters and the catch
// parameter bind in their body block, and every non-arrow function body
// implicitly binds arguments.
//
// # References
//
// An identifier that is not bound anywhere in the cell and is not a
// recognized global becomes a reference, a name the cell expects its
// environment (the other cells) to provide. The viewof x and mutable x
// pseudo-expressions always reference another cell and are collected
// regardless of local bindings, distinguished from a plain x by their kind.
// References are recorded in source order and deduplicated by name and kind.
//
// # Errors
//
// Two reference patterns are rejected: any free use of arguments (the cell
// body is not a real function, so the implicit object does not exist there)
// and an assignment or update targeting a recognized global.
package resolver

import (
	"fmt"

	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/scanner"
	"github.com/reedlang/reed/lang/token"
)

// ResolveCell resolves the body of a single parsed cell and sets its
// References field to the ordered, deduplicated list of free names. Empty
// and import cells are skipped. The cell must come from a successful parse;
// resolving an AST that parsed with errors is undefined.
//
// The returned error, if non-nil, is guaranteed to be a scanner.ErrorList
// and References is left nil.
func ResolveCell(fset *token.FileSet, cell *ast.Cell, globals *Globals) error {
	if cell.Body == nil {
		cell.References = []*ast.Ref{}
		return nil
	}
	if _, ok := cell.Body.(*ast.ImportDecl); ok {
		return nil
	}
	if globals == nil {
		globals = Default()
	}

	var r resolver
	r.init(fset.File(cell.Start), globals)
	r.cellBody(cell.Body)
	r.errors.Sort()
	if err := r.errors.Err(); err != nil {
		return err
	}
	if r.refs == nil {
		r.refs = []*ast.Ref{}
	}
	cell.References = r.refs
	return nil
}

// ResolveModule resolves every cell of the module in order, stopping at the
// first cell that fails.
func ResolveModule(fset *token.FileSet, mod *ast.Module, globals *Globals) error {
	if globals == nil {
		globals = Default()
	}
	for _, cell := range mod.Cells {
		if err := ResolveCell(fset, cell, globals); err != nil {
			return err
		}
	}
	return nil
}

type resolver struct {
	file    *token.File
	errors  scanner.ErrorList
	globals *Globals

	// env is the current local environment, a linked list of blocks with
	// the innermost block first and the cell body block as the tail.
	env *block

	refs []*ast.Ref
	seen map[refKey]bool
}

type refKey struct {
	kind ast.CellNameKind
	name string
}

func (r *resolver) init(file *token.File, globals *Globals) {
	r.file = file
	r.globals = globals
	r.env = nil
	r.seen = make(map[refKey]bool)
}

func (r *resolver) push(b *block) {
	b.parent = r.env
	r.env = b
}

func (r *resolver) pop() {
	r.env = r.env.parent
}

func (r *resolver) errorf(p token.Pos, format string, args ...interface{}) {
	r.errors.Add(r.file.Position(p), fmt.Sprintf(format, args...))
}

// cellBody resolves the top-level body of a cell. The body block is a
// function scope for hoisting purposes but, unlike a real function body, it
// does not bind arguments.
func (r *resolver) cellBody(body ast.Node) {
	r.push(&block{fn: true})
	switch body := body.(type) {
	case *ast.Block:
		r.hoistStmts(body.Stmts)
		for _, s := range body.Stmts {
			r.stmt(s)
		}
	case ast.Expr:
		r.expr(body, false)
	}
	r.pop()
}

// hoist binds a var or function declaration name in the nearest enclosing
// function scope. Duplicate hoisted declarations of the same name are
// allowed, as repeated vars refer to the same variable.
func (r *resolver) hoist(ident *ast.IdentExpr) {
	env := r.env
	for !env.fn {
		env = env.parent
	}
	env.bind(ident.Lit)
}

// hoistStmts walks a statement list without entering nested functions,
// hoisting every var declarator and function declaration name it finds.
func (r *resolver) hoistStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.hoistStmt(s)
	}
}

func (r *resolver) hoistStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.VarDeclStmt:
		if stmt.Type == token.VAR {
			for _, d := range stmt.Decls {
				r.hoist(d.Name)
			}
		}
	case *ast.FuncStmt:
		r.hoist(stmt.Fn.Name)
	case *ast.Block:
		r.hoistStmts(stmt.Stmts)
	case *ast.IfStmt:
		r.hoistStmt(stmt.True)
		if stmt.False != nil {
			r.hoistStmt(stmt.False)
		}
	case *ast.ForInOfStmt:
		if stmt.DeclType == token.VAR {
			if id, ok := ast.Unwrap(stmt.Left).(*ast.IdentExpr); ok {
				r.hoist(id)
			}
		}
		r.hoistStmt(stmt.Body)
	case *ast.ForLoopStmt:
		if stmt.Init != nil {
			r.hoistStmt(stmt.Init)
		}
		r.hoistStmt(stmt.Body)
	case *ast.WhileStmt:
		r.hoistStmt(stmt.Body)
	case *ast.DoWhileStmt:
		r.hoistStmt(stmt.Body)
	case *ast.TryStmt:
		r.hoistStmts(stmt.Body.Stmts)
		if stmt.CatchBody != nil {
			r.hoistStmts(stmt.CatchBody.Stmts)
		}
		if stmt.Final != nil {
			r.hoistStmts(stmt.Final.Stmts)
		}
	case *ast.SwitchStmt:
		for _, c := range stmt.Cases {
			r.hoistStmts(c.Body)
		}
	}
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.VarDeclStmt:
		for _, d := range stmt.Decls {
			// resolve the initializer first, the declared name is not
			// visible to it
			if d.Init != nil {
				r.expr(d.Init, false)
			}
			if stmt.Type != token.VAR {
				r.bind(d.Name)
			}
		}

	case *ast.ExprStmt:
		r.expr(stmt.Expr, false)

	case *ast.Block:
		r.push(new(block))
		for _, s := range stmt.Stmts {
			r.stmt(s)
		}
		r.pop()

	case *ast.IfStmt:
		r.expr(stmt.Cond, false)
		r.stmt(stmt.True)
		if stmt.False != nil {
			r.stmt(stmt.False)
		}

	case *ast.ForInOfStmt:
		r.expr(stmt.Right, false)
		r.push(new(block))
		switch {
		case stmt.DeclType == token.ILLEGAL:
			r.expr(stmt.Left, true)
		case stmt.DeclType == token.VAR:
			// already hoisted
		default:
			r.bind(ast.Unwrap(stmt.Left).(*ast.IdentExpr))
		}
		r.stmt(stmt.Body)
		r.pop()

	case *ast.ForLoopStmt:
		// the init clause declarations are scoped to the loop
		r.push(new(block))
		if stmt.Init != nil {
			r.stmt(stmt.Init)
		}
		if stmt.Cond != nil {
			r.expr(stmt.Cond, false)
		}
		if stmt.Post != nil {
			r.expr(stmt.Post, false)
		}
		r.stmt(stmt.Body)
		r.pop()

	case *ast.WhileStmt:
		r.expr(stmt.Cond, false)
		r.stmt(stmt.Body)

	case *ast.DoWhileStmt:
		r.stmt(stmt.Body)
		r.expr(stmt.Cond, false)

	case *ast.ReturnLikeStmt:
		if stmt.Expr != nil {
			r.expr(stmt.Expr, false)
		}

	case *ast.TryStmt:
		r.stmt(stmt.Body)
		if stmt.CatchBody != nil {
			r.push(new(block))
			if stmt.Param != nil {
				r.bind(stmt.Param)
			}
			for _, s := range stmt.CatchBody.Stmts {
				r.stmt(s)
			}
			r.pop()
		}
		if stmt.Final != nil {
			r.stmt(stmt.Final)
		}

	case *ast.SwitchStmt:
		r.expr(stmt.Cond, false)
		// all cases share a single block scope
		r.push(new(block))
		for _, c := range stmt.Cases {
			if c.Test != nil {
				r.expr(c.Test, false)
			}
			for _, s := range c.Body {
				r.stmt(s)
			}
		}
		r.pop()

	case *ast.FuncStmt:
		// the name is hoisted, resolve only the function itself
		r.function(stmt.Fn)

	case *ast.ClassStmt:
		r.bind(stmt.Class.Name)
		r.class(stmt.Class)

	case *ast.EmptyStmt, *ast.BadStmt:
		// nothing to do
	}
}

// expr resolves an expression; assignsToIdent indicates that the expression
// is the target of an assignment or update.
func (r *resolver) expr(e ast.Expr, assignsToIdent bool) {
	switch e := e.(type) {
	case *ast.IdentExpr:
		r.use(e, assignsToIdent)

	case *ast.ViewExpr:
		r.ref(ast.NameView, e.Ident.Lit, e.Viewof)

	case *ast.MutableExpr:
		// a mutable reference is a valid assignment target, never a
		// global, so the assign flag does not apply
		r.ref(ast.NameMutable, e.Ident.Lit, e.Mutable)

	case *ast.LiteralExpr, *ast.ThisExpr, *ast.SuperExpr, *ast.BadExpr:
		// nothing to do

	case *ast.TemplateExpr:
		for _, x := range e.Exprs {
			r.expr(x, false)
		}

	case *ast.TaggedTemplateExpr:
		r.expr(e.Tag, false)
		r.expr(e.Quasi, false)

	case *ast.ParenExpr:
		r.expr(e.Expr, assignsToIdent)

	case *ast.SeqExpr:
		for _, x := range e.Exprs {
			r.expr(x, false)
		}

	case *ast.ArrayExpr:
		for _, x := range e.Items {
			r.expr(x, false)
		}

	case *ast.ObjectExpr:
		for _, x := range e.Items {
			r.expr(x, false)
		}

	case *ast.Property:
		if e.Lbrack.IsValid() {
			r.expr(e.Key, false)
		}
		if e.Value != nil {
			r.expr(e.Value, false)
		} else if id, ok := e.Key.(*ast.IdentExpr); ok {
			// shorthand property, the key is also the value
			r.use(id, false)
		}

	case *ast.SpreadExpr:
		r.expr(e.Right, false)

	case *ast.CondExpr:
		r.expr(e.Cond, false)
		r.expr(e.True, false)
		r.expr(e.False, false)

	case *ast.BinOpExpr:
		r.expr(e.Left, false)
		r.expr(e.Right, false)

	case *ast.UnaryOpExpr:
		r.expr(e.Right, false)

	case *ast.UpdateExpr:
		r.expr(e.Operand, true)

	case *ast.AssignExpr:
		// resolve the rhs first
		r.expr(e.Right, false)
		r.expr(e.Left, true)

	case *ast.AwaitExpr:
		r.expr(e.Right, false)

	case *ast.YieldExpr:
		if e.Right != nil {
			r.expr(e.Right, false)
		}

	case *ast.CallExpr:
		r.expr(e.Fn, false)
		for _, a := range e.Args {
			r.expr(a, false)
		}

	case *ast.NewExpr:
		r.expr(e.Fn, false)
		for _, a := range e.Args {
			r.expr(a, false)
		}

	case *ast.DotExpr:
		r.expr(e.Left, false)

	case *ast.IndexExpr:
		r.expr(e.Prefix, false)
		r.expr(e.Index, false)

	case *ast.FuncExpr:
		r.function(e)

	case *ast.ArrowExpr:
		r.arrow(e)

	case *ast.ClassExpr:
		r.class(e)
	}
}

// function resolves a function literal, declaration or method tail. The
// body block is a function scope, binds arguments, the function's own name
// (for self-recursion of named expressions) and the parameters.
func (r *resolver) function(fn *ast.FuncExpr) {
	r.push(&block{fn: true})
	r.env.bind("arguments")
	if fn.Name != nil {
		r.env.bind(fn.Name.Lit)
	}
	r.params(fn.Params)
	r.funcBody(fn.Body)
	r.pop()
}

// arrow resolves an arrow function. Like a real function the body is a
// function scope for hoisting, but it does not bind arguments.
func (r *resolver) arrow(a *ast.ArrowExpr) {
	r.push(&block{fn: true})
	r.params(a.Params)
	switch body := a.Body.(type) {
	case *ast.Block:
		r.funcBody(body)
	case ast.Expr:
		r.expr(body, false)
	}
	r.pop()
}

func (r *resolver) params(pl *ast.ParamList) {
	if pl == nil {
		return
	}
	// defaults resolve in the function scope, after all parameters bound
	for _, p := range pl.Params {
		r.bind(p.Name)
	}
	for _, p := range pl.Params {
		if p.Default != nil {
			r.expr(p.Default, false)
		}
	}
}

func (r *resolver) funcBody(b *ast.Block) {
	r.hoistStmts(b.Stmts)
	for _, s := range b.Stmts {
		r.stmt(s)
	}
}

func (r *resolver) class(c *ast.ClassExpr) {
	// the extends clause resolves in the enclosing environment
	if c.Extends != nil {
		r.expr(c.Extends, false)
	}
	r.push(new(block))
	if c.Name != nil {
		r.env.bind(c.Name.Lit)
	}
	if c.Body != nil {
		for _, m := range c.Body.Methods {
			if m.Lbrack.IsValid() {
				r.expr(m.Key, false)
			}
			r.push(&block{fn: true})
			r.env.bind("arguments")
			r.params(m.Params)
			r.funcBody(m.Body)
			r.pop()
		}
	}
	r.pop()
}

// bind declares a block-scoped name in the current block, reporting a
// duplicate declaration in the same block.
func (r *resolver) bind(ident *ast.IdentExpr) {
	if r.env.declared(ident.Lit) {
		r.errorf(ident.Start, "already declared in this block: %s", ident.Lit)
		return
	}
	r.env.bind(ident.Lit)
}

// use resolves an identifier reference. A name bound anywhere in the
// enclosing environment resolves locally; a recognized global is not a
// reference but cannot be assigned to; anything else becomes one of the
// cell's references.
func (r *resolver) use(ident *ast.IdentExpr, isAssign bool) {
	for env := r.env; env != nil; env = env.parent {
		if env.declared(ident.Lit) {
			return
		}
	}

	if ident.Lit == "arguments" {
		r.errorf(ident.Start, "arguments is not allowed")
		return
	}

	// the callee of a dynamic import; import is reserved, so the name can
	// only come from that production and resolves to the host loader
	if ident.Lit == "import" {
		return
	}

	if r.globals.Has(ident.Lit) {
		if isAssign {
			r.errorf(ident.Start, "assignment to global variable: %s", ident.Lit)
		}
		return
	}

	r.ref(ast.NamePlain, ident.Lit, ident.Start)
}

// ref records a free-variable reference, deduplicating by name and kind.
func (r *resolver) ref(kind ast.CellNameKind, name string, pos token.Pos) {
	key := refKey{kind: kind, name: name}
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.refs = append(r.refs, &ast.Ref{Kind: kind, Name: name, Pos: pos})
}
