package parser

import (
	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/token"
)

func (p *parser) parseBlock() *ast.Block {
	var block ast.Block
	block.Lbrace = p.expect(token.LBRACE)

	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	block.Rbrace = p.expect(token.RBRACE)
	return &block
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.SEMICOLON:
		return &ast.EmptyStmt{Semi: p.expect(token.SEMICOLON)}

	case token.LBRACE:
		return p.parseBlock()

	case token.VAR, token.LET, token.CONST:
		stmt := p.parseVarDeclStmt()
		p.expectSemi()
		return stmt

	case token.IF:
		return p.parseIfStmt()

	case token.FOR:
		return p.parseForStmt()

	case token.WHILE:
		return p.parseWhileStmt()

	case token.DO:
		return p.parseDoWhileStmt()

	case token.RETURN, token.BREAK, token.CONTINUE, token.THROW:
		return p.parseReturnLikeStmt()

	case token.TRY:
		return p.parseTryStmt()

	case token.SWITCH:
		return p.parseSwitchStmt()

	case token.FUNCTION:
		return &ast.FuncStmt{Fn: p.parseFuncDecl(token.NoPos)}

	case token.CLASS:
		return p.parseClassStmt()

	case token.IDENT:
		// async function declaration
		if p.val.Raw == "async" && p.peekTok() == token.FUNCTION && !p.peekOnNewLine() {
			asyncPos := p.expect(token.IDENT)
			return &ast.FuncStmt{Fn: p.parseFuncDecl(asyncPos)}
		}
	}

	stmt := &ast.ExprStmt{Expr: p.parseExpr()}
	p.expectSemi()
	return stmt
}

// peekOnNewLine returns true if there is a line break between the current
// token and the next one.
func (p *parser) peekOnNewLine() bool {
	s := p.lookaheadAfter()
	var v token.Value
	for {
		tok := s.Scan(&v)
		if tok != token.COMMENT {
			break
		}
	}
	end := p.val.Pos + token.Pos(len(p.val.Raw))
	return p.file.Position(v.Pos).Line > p.file.Position(end).Line
}

// parseFuncDecl parses a function declaration: like a function expression
// but the name is required.
func (p *parser) parseFuncDecl(asyncPos token.Pos) *ast.FuncExpr {
	fn := p.parseFuncExpr(asyncPos)
	if fn.Name == nil {
		p.errorExpected(fn.Fn, "function name")
	}
	return fn
}

func (p *parser) parseClassStmt() *ast.ClassStmt {
	cls := p.parseClassExpr()
	if cls.Name == nil {
		p.errorExpected(cls.Class, "class name")
	}
	return &ast.ClassStmt{Class: cls}
}

func (p *parser) parseVarDeclStmt() *ast.VarDeclStmt {
	var stmt ast.VarDeclStmt
	stmt.Type = p.tok
	stmt.Start = p.expect(token.VAR, token.LET, token.CONST)

	for {
		var decl ast.VarDecl
		decl.Name = p.parseIdentExpr()
		if p.tok == token.EQ {
			decl.Eq = p.expect(token.EQ)
			decl.Init = p.parseAssignExpr()
		}
		stmt.Decls = append(stmt.Decls, &decl)

		if p.tok != token.COMMA {
			break
		}
		stmt.Commas = append(stmt.Commas, p.expect(token.COMMA))
	}
	return &stmt
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	var stmt ast.IfStmt
	stmt.If = p.expect(token.IF)
	stmt.Lparen = p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	stmt.Rparen = p.expect(token.RPAREN)
	stmt.True = p.parseStmt()

	if p.tok == token.ELSE {
		stmt.Else = p.expect(token.ELSE)
		stmt.False = p.parseStmt()
	}
	return &stmt
}

func (p *parser) parseForStmt() ast.Stmt {
	forPos := p.expect(token.FOR)

	var awaitPos token.Pos
	if p.tok == token.AWAIT {
		awaitPos = p.expect(token.AWAIT)
		if p.funcDepth <= 1 {
			p.async = true
		}
	}
	lparen := p.expect(token.LPAREN)

	switch p.tok {
	case token.SEMICOLON:
		// no init clause
		if awaitPos.IsValid() {
			p.errorExpected(p.val.Pos, "for await-of loop")
		}
		return p.parseForClauses(forPos, lparen, nil)

	case token.VAR, token.LET, token.CONST:
		declType := p.tok
		declPos := p.val.Pos
		p.advance()
		name := p.parseIdentExpr()

		if p.tok == token.IN || p.isOfKeyword() {
			return p.parseForInOfLeft(forPos, awaitPos, lparen, declType, declPos, name)
		}
		if awaitPos.IsValid() {
			p.errorExpected(p.val.Pos, "for await-of loop")
		}

		// classic loop with a declaration init
		init := &ast.VarDeclStmt{Type: declType, Start: declPos}
		decl := &ast.VarDecl{Name: name}
		if p.tok == token.EQ {
			decl.Eq = p.expect(token.EQ)
			decl.Init = p.parseAssignNoIn()
		}
		init.Decls = append(init.Decls, decl)
		for p.tok == token.COMMA {
			init.Commas = append(init.Commas, p.expect(token.COMMA))
			var d ast.VarDecl
			d.Name = p.parseIdentExpr()
			if p.tok == token.EQ {
				d.Eq = p.expect(token.EQ)
				d.Init = p.parseAssignNoIn()
			}
			init.Decls = append(init.Decls, &d)
		}
		return p.parseForClauses(forPos, lparen, init)

	default:
		p.noIn++
		expr := p.parseExpr()
		p.noIn--

		if p.tok == token.IN || p.isOfKeyword() {
			if !ast.IsAssignable(expr) {
				pos, _ := expr.Span()
				p.errorExpected(pos, "assignable expression")
			}
			return p.parseForInOfLeft(forPos, awaitPos, lparen, token.ILLEGAL, token.NoPos, expr)
		}
		if awaitPos.IsValid() {
			p.errorExpected(p.val.Pos, "for await-of loop")
		}
		return p.parseForClauses(forPos, lparen, &ast.ExprStmt{Expr: expr})
	}
}

func (p *parser) isOfKeyword() bool {
	return p.tok == token.IDENT && p.val.Raw == "of"
}

func (p *parser) parseAssignNoIn() ast.Expr {
	p.noIn++
	e := p.parseAssignExpr()
	p.noIn--
	return e
}

func (p *parser) parseForInOfLeft(forPos, awaitPos, lparen token.Pos, declType token.Token, declPos token.Pos, left ast.Expr) *ast.ForInOfStmt {
	var stmt ast.ForInOfStmt
	stmt.For = forPos
	stmt.Await = awaitPos
	stmt.Lparen = lparen
	stmt.DeclType = declType
	stmt.DeclPos = declPos
	stmt.Left = left

	if p.tok == token.IN {
		if awaitPos.IsValid() {
			p.errorExpected(p.val.Pos, "for await-of loop")
		}
		stmt.InOf = p.expect(token.IN)
	} else {
		stmt.Of = true
		stmt.InOf = p.expect(token.IDENT) // of
	}
	stmt.Right = p.parseAssignExpr()
	stmt.Rparen = p.expect(token.RPAREN)
	stmt.Body = p.parseStmt()
	return &stmt
}

func (p *parser) parseForClauses(forPos, lparen token.Pos, init ast.Stmt) *ast.ForLoopStmt {
	var stmt ast.ForLoopStmt
	stmt.For = forPos
	stmt.Lparen = lparen
	stmt.Init = init
	stmt.InitSemi = p.expect(token.SEMICOLON)

	if p.tok != token.SEMICOLON {
		stmt.Cond = p.parseExpr()
	}
	stmt.CondSemi = p.expect(token.SEMICOLON)

	if p.tok != token.RPAREN {
		stmt.Post = p.parseExpr()
	}
	stmt.Rparen = p.expect(token.RPAREN)
	stmt.Body = p.parseStmt()
	return &stmt
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	var stmt ast.WhileStmt
	stmt.While = p.expect(token.WHILE)
	stmt.Lparen = p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	stmt.Rparen = p.expect(token.RPAREN)
	stmt.Body = p.parseStmt()
	return &stmt
}

func (p *parser) parseDoWhileStmt() *ast.DoWhileStmt {
	var stmt ast.DoWhileStmt
	stmt.Do = p.expect(token.DO)
	stmt.Body = p.parseStmt()
	stmt.While = p.expect(token.WHILE)
	stmt.Lparen = p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	stmt.Rparen = p.expect(token.RPAREN)
	p.expectSemi()
	return &stmt
}

func (p *parser) parseReturnLikeStmt() *ast.ReturnLikeStmt {
	var stmt ast.ReturnLikeStmt
	stmt.Type = p.tok
	stmt.Start = p.expect(p.tok)

	switch stmt.Type {
	case token.THROW:
		// the operand is required and must start on the same line
		if p.onNewLine() || !p.maybeExprStart() {
			p.errorExpected(p.val.Pos, "expression")
		}
		stmt.Expr = p.parseExpr()
	case token.RETURN:
		// restricted production: no operand after a line break
		if !p.onNewLine() && p.maybeExprStart() {
			stmt.Expr = p.parseExpr()
		}
	}
	p.expectSemi()
	return &stmt
}

func (p *parser) parseTryStmt() *ast.TryStmt {
	var stmt ast.TryStmt
	stmt.Try = p.expect(token.TRY)
	stmt.Body = p.parseBlock()

	if p.tok == token.CATCH {
		stmt.Catch = p.expect(token.CATCH)
		if p.tok == token.LPAREN {
			stmt.Lparen = p.expect(token.LPAREN)
			stmt.Param = p.parseIdentExpr()
			stmt.Rparen = p.expect(token.RPAREN)
		}
		stmt.CatchBody = p.parseBlock()
	}
	if p.tok == token.FINALLY {
		stmt.Finally = p.expect(token.FINALLY)
		stmt.Final = p.parseBlock()
	}
	if stmt.CatchBody == nil && stmt.Final == nil {
		p.errorExpected(p.val.Pos, token.CATCH.String()+" or "+token.FINALLY.String())
	}
	return &stmt
}

func (p *parser) parseSwitchStmt() *ast.SwitchStmt {
	var stmt ast.SwitchStmt
	stmt.Switch = p.expect(token.SWITCH)
	stmt.Lparen = p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	stmt.Rparen = p.expect(token.RPAREN)
	stmt.Lbrace = p.expect(token.LBRACE)

	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		var c ast.SwitchCase
		if p.tok == token.DEFAULT {
			c.Start = p.expect(token.DEFAULT)
		} else {
			c.Start = p.expect(token.CASE)
			c.Test = p.parseExpr()
		}
		c.Colon = p.expect(token.COLON)
		for !tokenIn(p.tok, token.CASE, token.DEFAULT, token.RBRACE, token.EOF) {
			c.Body = append(c.Body, p.parseStmt())
		}
		stmt.Cases = append(stmt.Cases, &c)
	}
	stmt.Rbrace = p.expect(token.RBRACE)
	return &stmt
}
