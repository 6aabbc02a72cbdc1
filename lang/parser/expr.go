package parser

import (
	"github.com/reedlang/reed/lang/ast"
	"github.com/reedlang/reed/lang/token"
)

var (
	binopPriority = [...]struct{ left, right int }{
		token.QQ:       {1, 1},
		token.PIPEPIPE: {1, 1},
		token.AMPAMP:   {2, 2},
		token.PIPE:     {3, 3},
		token.CARET:    {4, 4},
		token.AMPERSAND: {5, 5},
		token.EQEQ: {6, 6}, token.BANGEQ: {6, 6},
		token.EQEQEQ: {6, 6}, token.BANGEQEQ: {6, 6},
		token.LT: {7, 7}, token.GT: {7, 7}, token.LE: {7, 7}, token.GE: {7, 7},
		token.IN: {7, 7}, token.INSTANCEOF: {7, 7},
		token.LTLT: {8, 8}, token.GTGT: {8, 8}, token.GTGTGT: {8, 8},
		token.PLUS: {9, 9}, token.MINUS: {9, 9},
		token.STAR: {10, 10}, token.SLASH: {10, 10}, token.PERCENT: {10, 10},
		token.STARSTAR: {12, 11}, // right associative
	}

	unopToks = []token.Token{
		token.BANG, token.TILDE, token.PLUS, token.MINUS,
		token.TYPEOF, token.VOID, token.DELETE,
	}
)

func (p *parser) isBinop() bool {
	if p.tok == token.IN && p.noIn > 0 {
		return false
	}
	return int(p.tok) < len(binopPriority) && binopPriority[p.tok].left > 0
}

// parseExpr parses a full expression, including the comma sequence form.
func (p *parser) parseExpr() ast.Expr {
	expr := p.parseAssignExpr()
	if p.tok != token.COMMA {
		return expr
	}

	var seq ast.SeqExpr
	seq.Exprs = append(seq.Exprs, expr)
	for p.tok == token.COMMA {
		seq.Commas = append(seq.Commas, p.expect(token.COMMA))
		seq.Exprs = append(seq.Exprs, p.parseAssignExpr())
	}
	return &seq
}

// parseAssignExpr parses a single assignment-level expression: arrows, yield,
// ternaries and assignments live at this level.
func (p *parser) parseAssignExpr() ast.Expr {
	if p.tok == token.IDENT && p.val.Raw == "async" {
		if e := p.parseAsyncPrefixed(); e != nil {
			return e
		}
	}

	switch {
	case p.tok == token.YIELD:
		return p.parseYieldExpr()

	case p.tok == token.LPAREN && p.arrowAhead():
		return p.parseArrowExpr(token.NoPos)

	case p.tok == token.IDENT && p.peekTok() == token.ARROW:
		return p.parseArrowExpr(token.NoPos)
	}

	left := p.parseCondExpr()
	if !p.tok.IsAssignOp() {
		return left
	}

	if !ast.IsAssignable(left) {
		pos, _ := left.Span()
		p.errorExpected(pos, "assignable expression")
	}
	var assign ast.AssignExpr
	assign.Left = left
	assign.Type = p.tok
	assign.Op = p.expect(p.tok)
	assign.Right = p.parseAssignExpr()
	return &assign
}

func (p *parser) parseYieldExpr() *ast.YieldExpr {
	var y ast.YieldExpr
	y.Yield = p.expect(token.YIELD)
	if p.funcDepth <= 1 {
		p.generator = true
	}
	if p.tok == token.STAR && !p.onNewLine() {
		y.Star = p.expect(token.STAR)
		y.Right = p.parseAssignExpr()
		return &y
	}
	if p.maybeExprStart() && !p.onNewLine() {
		y.Right = p.parseAssignExpr()
	}
	return &y
}

// maybeExprStart returns true if the current token may start an expression.
// Best effort, used where an operand is optional (yield, return).
func (p *parser) maybeExprStart() bool {
	switch p.tok {
	case token.IDENT, token.NUMBER, token.STRING, token.TEMPLATE,
		token.TRUE, token.FALSE, token.NULL, token.THIS, token.SUPER,
		token.LPAREN, token.LBRACK, token.LBRACE,
		token.FUNCTION, token.CLASS, token.NEW, token.AWAIT, token.YIELD,
		token.PLUS, token.MINUS, token.BANG, token.TILDE,
		token.TYPEOF, token.VOID, token.DELETE,
		token.PLUSPLUS, token.MINUSMINUS, token.DOTDOTDOT:
		return true
	}
	return false
}

func (p *parser) parseCondExpr() ast.Expr {
	cond := p.parseBinExpr(0)
	if p.tok != token.QUESTION {
		return cond
	}

	var c ast.CondExpr
	c.Cond = cond
	c.Question = p.expect(token.QUESTION)
	c.True = p.parseAssignExpr()
	c.Colon = p.expect(token.COLON)
	c.False = p.parseAssignExpr()
	return &c
}

// parseBinExpr parses a binary expression where the operator has a priority
// higher than the provided priority (precedence climbing).
func (p *parser) parseBinExpr(priority int) ast.Expr {
	left := p.parseUnaryExpr()

	for p.isBinop() && binopPriority[p.tok].left > priority {
		var bin ast.BinOpExpr
		bin.Left = left
		bin.Type = p.tok
		bin.Op = p.expect(p.tok)
		bin.Right = p.parseBinExpr(binopPriority[bin.Type].right)
		left = &bin
	}
	return left
}

func (p *parser) parseUnaryExpr() ast.Expr {
	switch {
	case tokenIn(p.tok, unopToks...):
		var unop ast.UnaryOpExpr
		unop.Type = p.tok
		unop.Op = p.expect(p.tok)
		unop.Right = p.parseUnaryExpr()
		return &unop

	case p.tok == token.PLUSPLUS || p.tok == token.MINUSMINUS:
		var upd ast.UpdateExpr
		upd.Type = p.tok
		upd.Prefix = true
		upd.Op = p.expect(p.tok)
		upd.Operand = p.parseUnaryExpr()
		if !ast.IsAssignable(upd.Operand) {
			pos, _ := upd.Operand.Span()
			p.errorExpected(pos, "assignable expression")
		}
		return &upd

	case p.tok == token.AWAIT:
		var aw ast.AwaitExpr
		aw.Await = p.expect(token.AWAIT)
		if p.funcDepth <= 1 {
			p.async = true
		}
		aw.Right = p.parseUnaryExpr()
		return &aw
	}
	return p.parsePostfixExpr()
}

func (p *parser) parsePostfixExpr() ast.Expr {
	expr := p.parseSuffixedExpr(false)

	// postfix ++/-- binds only on the same line
	if (p.tok == token.PLUSPLUS || p.tok == token.MINUSMINUS) && !p.onNewLine() {
		if !ast.IsAssignable(expr) {
			pos, _ := expr.Span()
			p.errorExpected(pos, "assignable expression")
		}
		var upd ast.UpdateExpr
		upd.Type = p.tok
		upd.Operand = expr
		upd.Op = p.expect(p.tok)
		return &upd
	}
	return expr
}

// parseSuffixedExpr parses a primary expression and its suffixes: member
// access, index, call, optional chaining and tagged templates. Calls are
// not consumed when noCall is true (constructor callee).
func (p *parser) parseSuffixedExpr(noCall bool) ast.Expr {
	expr := p.parsePrimaryExpr()

	for {
		switch p.tok {
		case token.DOT:
			var dot ast.DotExpr
			dot.Left = expr
			dot.Dot = p.expect(token.DOT)
			dot.Right = p.parseIdentLikeExpr()
			expr = &dot

		case token.QUESTIONDOT:
			pos := p.expect(token.QUESTIONDOT)
			switch p.tok {
			case token.LBRACK:
				var idx ast.IndexExpr
				idx.Prefix = expr
				idx.Optional = true
				idx.Lbrack = p.expect(token.LBRACK)
				idx.Index = p.parseExpr()
				idx.Rbrack = p.expect(token.RBRACK)
				expr = &idx
			case token.LPAREN:
				if noCall {
					return expr
				}
				call := p.parseCallSuffix(expr)
				call.Optional = pos
				expr = call
			default:
				var dot ast.DotExpr
				dot.Left = expr
				dot.Dot = pos
				dot.Optional = true
				dot.Right = p.parseIdentLikeExpr()
				expr = &dot
			}

		case token.LBRACK:
			var idx ast.IndexExpr
			idx.Prefix = expr
			idx.Lbrack = p.expect(token.LBRACK)
			idx.Index = p.parseExpr()
			idx.Rbrack = p.expect(token.RBRACK)
			expr = &idx

		case token.LPAREN:
			if noCall {
				return expr
			}
			expr = p.parseCallSuffix(expr)

		case token.TEMPLATE:
			var tt ast.TaggedTemplateExpr
			tt.Tag = expr
			tt.Quasi = p.parseTemplateExpr()
			expr = &tt

		default:
			return expr
		}
	}
}

func (p *parser) parseCallSuffix(fn ast.Expr) *ast.CallExpr {
	var call ast.CallExpr
	call.Fn = fn
	call.Lparen = p.expect(token.LPAREN)
	call.Args, call.Commas = p.parseArgs()
	call.Rparen = p.expect(token.RPAREN)
	return &call
}

func (p *parser) parseArgs() ([]ast.Expr, []token.Pos) {
	var args []ast.Expr
	var commas []token.Pos

	for !tokenIn(p.tok, token.RPAREN, token.EOF) {
		if p.tok == token.DOTDOTDOT {
			var sp ast.SpreadExpr
			sp.Ellipsis = p.expect(token.DOTDOTDOT)
			sp.Right = p.parseAssignExpr()
			args = append(args, &sp)
		} else {
			args = append(args, p.parseAssignExpr())
		}
		if p.tok == token.COMMA {
			// may or may not be the last, trailing comma is valid
			commas = append(commas, p.expect(token.COMMA))
		} else {
			break
		}
	}
	return args, commas
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.IDENT:
		switch p.val.Raw {
		case "FileAttachment":
			return p.parseFileAttachment()
		case "viewof", "mutable":
			// pseudo-expression if an identifier follows on the same line
			if p.peekTok() == token.IDENT {
				return p.parseViewMutableExpr()
			}
		}
		return p.parseIdentExpr()

	case token.NUMBER:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw, Value: p.val.Float}
		lit.Start = p.expect(token.NUMBER)
		return lit

	case token.STRING:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw, Value: p.val.String}
		lit.Start = p.expect(token.STRING)
		return lit

	case token.TRUE, token.FALSE, token.NULL:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw}
		lit.Start = p.expect(p.tok)
		return lit

	case token.TEMPLATE:
		return p.parseTemplateExpr()

	case token.THIS:
		return &ast.ThisExpr{Start: p.expect(token.THIS)}

	case token.SUPER:
		return &ast.SuperExpr{Start: p.expect(token.SUPER)}

	case token.LPAREN:
		var paren ast.ParenExpr
		paren.Lparen = p.expect(token.LPAREN)
		paren.Expr = p.parseExpr()
		paren.Rparen = p.expect(token.RPAREN)
		return &paren

	case token.LBRACK:
		return p.parseArrayExpr()

	case token.LBRACE:
		return p.parseObjectExpr()

	case token.FUNCTION:
		return p.parseFuncExpr(token.NoPos)

	case token.CLASS:
		return p.parseClassExpr()

	case token.NEW:
		return p.parseNewExpr()

	case token.IMPORT:
		// dynamic import: the import keyword is only valid as the callee
		// of an immediate call, import(source). The identifier cannot
		// collide with a user name since import is reserved.
		if p.peekTok() != token.LPAREN {
			p.errorExpected(p.val.Pos, "expression")
		}
		return &ast.IdentExpr{Start: p.expect(token.IMPORT), Lit: "import"}

	default:
		p.errorExpected(p.val.Pos, "expression")
		panic("unreachable")
	}
}

// parseFileAttachment parses the one restricted call form: the bare
// FileAttachment identifier must be immediately invoked with a single
// string or no-substitution template literal, and the literal's source span
// is recorded against its decoded value.
func (p *parser) parseFileAttachment() ast.Expr {
	ident := p.parseIdentExpr()
	if p.tok != token.LPAREN {
		p.error(ident.Start, "invalid reassignment of FileAttachment")
	}

	var call ast.CallExpr
	call.Fn = ident
	call.Lparen = p.expect(token.LPAREN)

	var name string
	var span ast.Span
	var arg ast.Expr
	switch {
	case p.tok == token.STRING:
		name = p.val.String
		span = ast.Span{Start: p.val.Pos, End: p.val.Pos + token.Pos(len(p.val.Raw))}
		lit := &ast.LiteralExpr{Type: token.STRING, Raw: p.val.Raw, Value: name}
		lit.Start = p.expect(token.STRING)
		arg = lit
	case p.tok == token.TEMPLATE && !p.val.More:
		name = p.val.String
		span = ast.Span{Start: p.val.Pos, End: p.val.Pos + token.Pos(len(p.val.Raw))}
		arg = p.parseTemplateExpr()
	default:
		p.error(call.Lparen, "FileAttachment requires a single literal string argument")
	}
	call.Args = []ast.Expr{arg}

	if p.tok != token.RPAREN {
		p.error(p.val.Pos, "FileAttachment requires a single literal string argument")
	}
	call.Rparen = p.expect(token.RPAREN)

	if p.fileAtts == nil {
		p.fileAtts = make(map[string][]ast.Span)
	}
	p.fileAtts[name] = append(p.fileAtts[name], span)
	return &call
}

func (p *parser) parseViewMutableExpr() ast.Expr {
	kind := ast.NameView
	if p.val.Raw == "mutable" {
		kind = ast.NameMutable
	}
	kw := p.expect(token.IDENT)

	if p.onNewLine() {
		// line break between keyword and identifier: plain identifier use
		return &ast.IdentExpr{Start: kw, Lit: kind.String()}
	}
	ident := p.parseIdentExpr()
	if kind == ast.NameMutable {
		return &ast.MutableExpr{Mutable: kw, Ident: ident}
	}
	return &ast.ViewExpr{Viewof: kw, Ident: ident}
}

func (p *parser) parseTemplateExpr() *ast.TemplateExpr {
	var t ast.TemplateExpr
	for {
		el := &ast.TemplateElement{Start: p.val.Pos, Raw: p.val.Raw, Cooked: p.val.String}
		t.Quasis = append(t.Quasis, el)
		if !p.val.More {
			p.advance()
			return &t
		}

		p.advance()
		t.Exprs = append(t.Exprs, p.parseExpr())
		if p.tok != token.RBRACE {
			p.errorExpected(p.val.Pos, token.RBRACE.GoString())
		}
		// resume the template piece right after the closing '}'
		p.tok = p.scanner.ScanTemplate(&p.val)
	}
}

func (p *parser) parseArrayExpr() *ast.ArrayExpr {
	var expr ast.ArrayExpr
	expr.Lbrack = p.expect(token.LBRACK)

	for !tokenIn(p.tok, token.RBRACK, token.EOF) {
		if p.tok == token.DOTDOTDOT {
			var sp ast.SpreadExpr
			sp.Ellipsis = p.expect(token.DOTDOTDOT)
			sp.Right = p.parseAssignExpr()
			expr.Items = append(expr.Items, &sp)
		} else {
			expr.Items = append(expr.Items, p.parseAssignExpr())
		}
		if p.tok == token.COMMA {
			// may or may not be the last, trailing comma is valid
			expr.Commas = append(expr.Commas, p.expect(token.COMMA))
		} else {
			break
		}
	}
	expr.Rbrack = p.expect(token.RBRACK)
	return &expr
}

func (p *parser) parseObjectExpr() *ast.ObjectExpr {
	var expr ast.ObjectExpr
	expr.Lbrace = p.expect(token.LBRACE)

	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		if p.tok == token.DOTDOTDOT {
			var sp ast.SpreadExpr
			sp.Ellipsis = p.expect(token.DOTDOTDOT)
			sp.Right = p.parseAssignExpr()
			expr.Items = append(expr.Items, &sp)
		} else {
			expr.Items = append(expr.Items, p.parseProperty())
		}
		if p.tok == token.COMMA {
			expr.Commas = append(expr.Commas, p.expect(token.COMMA))
		} else {
			break
		}
	}
	expr.Rbrace = p.expect(token.RBRACE)
	return &expr
}

func (p *parser) parseProperty() *ast.Property {
	var prop ast.Property

	if p.tok == token.STAR {
		// generator method shorthand
		star := p.expect(token.STAR)
		prop.Key = p.parsePropertyKey(&prop)
		prop.Value = p.parseMethodTail(token.NoPos, star)
		return &prop
	}
	prop.Key = p.parsePropertyKey(&prop)

	// async/get/set method forms: the modifier-looking identifier is
	// followed by the real key
	if id, ok := prop.Key.(*ast.IdentExpr); ok &&
		(id.Lit == "async" || id.Lit == "get" || id.Lit == "set") &&
		!tokenIn(p.tok, token.COLON, token.LPAREN, token.COMMA, token.RBRACE, token.EOF) {
		async := token.NoPos
		if id.Lit == "async" {
			async = id.Start
		}
		star := token.NoPos
		if p.tok == token.STAR {
			star = p.expect(token.STAR)
		}
		prop.Lbrack, prop.Rbrack = token.NoPos, token.NoPos
		prop.Key = p.parsePropertyKey(&prop)
		prop.Value = p.parseMethodTail(async, star)
		return &prop
	}

	switch p.tok {
	case token.COLON:
		prop.Colon = p.expect(token.COLON)
		prop.Value = p.parseAssignExpr()
	case token.LPAREN:
		// method shorthand
		prop.Value = p.parseMethodTail(token.NoPos, token.NoPos)
	default:
		// shorthand property, the key must be a plain identifier
		if _, ok := prop.Key.(*ast.IdentExpr); !ok {
			pos, _ := prop.Key.Span()
			p.errorExpected(pos, "identifier")
		}
	}
	return &prop
}

// parsePropertyKey parses an object-literal key: identifier (keywords
// allowed), string, number or computed. The computed-key bracket positions
// are recorded on prop.
func (p *parser) parsePropertyKey(prop *ast.Property) ast.Expr {
	switch p.tok {
	case token.LBRACK:
		prop.Lbrack = p.expect(token.LBRACK)
		key := p.parseAssignExpr()
		prop.Rbrack = p.expect(token.RBRACK)
		return key
	case token.STRING:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw, Value: p.val.String}
		lit.Start = p.expect(token.STRING)
		return lit
	case token.NUMBER:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw, Value: p.val.Float}
		lit.Start = p.expect(token.NUMBER)
		return lit
	default:
		return p.parseIdentLikeExpr()
	}
}

// parseMethodTail parses the parameter list and body of a method form, with
// optional async/star positions already consumed. The resulting FuncExpr has
// no function keyword, its Fn position is left at 0.
func (p *parser) parseMethodTail(async, star token.Pos) *ast.FuncExpr {
	var fn ast.FuncExpr
	fn.Async = async
	fn.Star = star
	fn.Params = p.parseParamList()
	fn.Body = p.parseFuncBody()
	return &fn
}

// parseAsyncPrefixed handles the contextual 'async' keyword at expression
// level: async function, async arrow. It returns nil when async is just a
// plain identifier, leaving the cursor untouched.
func (p *parser) parseAsyncPrefixed() ast.Expr {
	s := p.lookaheadAfter()
	var v token.Value
	next := s.Scan(&v)

	// the async marker binds only on the same line
	endLine := p.file.Position(p.val.Pos + token.Pos(len(p.val.Raw))).Line
	if p.file.Position(v.Pos).Line > endLine {
		return nil
	}

	switch next {
	case token.FUNCTION:
		asyncPos := p.expect(token.IDENT)
		return p.parseFuncExpr(asyncPos)

	case token.IDENT:
		if s.Scan(&v) == token.ARROW {
			asyncPos := p.expect(token.IDENT)
			return p.parseArrowExpr(asyncPos)
		}

	case token.LPAREN:
		// scan to the matching ')' without consuming: async(...) may be a
		// plain call
		depth := 1
		for depth > 0 {
			switch s.Scan(&v) {
			case token.LPAREN, token.LBRACK, token.LBRACE:
				depth++
			case token.RPAREN, token.RBRACK, token.RBRACE:
				depth--
			case token.EOF:
				return nil
			}
		}
		if s.Scan(&v) != token.ARROW {
			return nil
		}
		asyncPos := p.expect(token.IDENT)
		return p.parseArrowExpr(asyncPos)
	}
	return nil
}

// arrowAhead reports whether the parenthesized group starting at the current
// '(' token is the parameter list of an arrow function, by scanning ahead to
// the matching ')' and checking for '=>'.
func (p *parser) arrowAhead() bool {
	s := p.lookaheadAt()
	var v token.Value
	depth := 0
	for {
		switch s.Scan(&v) {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RBRACK, token.RBRACE:
			depth--
		case token.RPAREN:
			depth--
			if depth == 0 {
				return s.Scan(&v) == token.ARROW
			}
		case token.EOF:
			return false
		}
	}
}

func (p *parser) parseArrowExpr(asyncPos token.Pos) *ast.ArrowExpr {
	var arrow ast.ArrowExpr
	arrow.Async = asyncPos

	if p.tok == token.IDENT {
		// bare single-parameter form
		param := &ast.Param{Name: p.parseIdentExpr()}
		arrow.Params = &ast.ParamList{Params: []*ast.Param{param}}
	} else {
		arrow.Params = p.parseParamList()
	}

	if p.onNewLine() {
		p.errorExpected(p.val.Pos, token.ARROW.GoString())
	}
	arrow.Arrow = p.expect(token.ARROW)

	p.funcDepth++
	if p.tok == token.LBRACE {
		arrow.Body = p.parseBlock()
	} else {
		arrow.Body = p.parseAssignExpr()
	}
	p.funcDepth--
	return &arrow
}

func (p *parser) parseFuncExpr(asyncPos token.Pos) *ast.FuncExpr {
	var fn ast.FuncExpr
	fn.Async = asyncPos
	fn.Fn = p.expect(token.FUNCTION)
	if p.tok == token.STAR {
		fn.Star = p.expect(token.STAR)
	}
	if p.tok == token.IDENT {
		fn.Name = p.parseIdentExpr()
	}
	fn.Params = p.parseParamList()
	fn.Body = p.parseFuncBody()
	return &fn
}

func (p *parser) parseFuncBody() *ast.Block {
	p.funcDepth++
	body := p.parseBlock()
	p.funcDepth--
	return body
}

func (p *parser) parseParamList() *ast.ParamList {
	var list ast.ParamList
	list.Lparen = p.expect(token.LPAREN)

	for !tokenIn(p.tok, token.RPAREN, token.EOF) {
		var param ast.Param
		if p.tok == token.DOTDOTDOT {
			param.Ellipsis = p.expect(token.DOTDOTDOT)
		}
		param.Name = p.parseIdentExpr()
		if p.tok == token.EQ {
			param.Eq = p.expect(token.EQ)
			param.Default = p.parseAssignExpr()
		}
		list.Params = append(list.Params, &param)

		if p.tok == token.COMMA {
			// may or may not be the last, trailing comma is valid
			list.Commas = append(list.Commas, p.expect(token.COMMA))
		} else {
			break
		}
	}
	list.Rparen = p.expect(token.RPAREN)
	return &list
}

func (p *parser) parseClassExpr() *ast.ClassExpr {
	var cls ast.ClassExpr
	cls.Class = p.expect(token.CLASS)

	if p.tok == token.IDENT {
		cls.Name = p.parseIdentExpr()
	}
	if p.tok == token.EXTENDS {
		p.expect(token.EXTENDS)
		cls.Extends = p.parseSuffixedExpr(false)
	}
	cls.Body = p.parseClassBody()
	return &cls
}

func (p *parser) parseClassBody() *ast.ClassBody {
	var body ast.ClassBody
	body.Lbrace = p.expect(token.LBRACE)

	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		if p.tok == token.SEMICOLON {
			p.advance()
			continue
		}
		body.Methods = append(body.Methods, p.parseMethodDef())
	}
	body.Rbrace = p.expect(token.RBRACE)
	return &body
}

// parseMethodDef parses a class method. The static, get/set, async and '*'
// modifiers are contextual: an identifier spelled like a modifier followed
// by '(' is the method name.
func (p *parser) parseMethodDef() *ast.MethodDef {
	var m ast.MethodDef

	for p.tok == token.IDENT {
		raw := p.val.Raw
		if raw != "static" && raw != "get" && raw != "set" && raw != "async" {
			break
		}
		pos := p.val.Pos
		p.advance()
		if p.tok == token.LPAREN {
			// the modifier-looking identifier was the method name
			m.Key = &ast.IdentExpr{Start: pos, Lit: raw}
			m.Params = p.parseParamList()
			m.Body = p.parseFuncBody()
			return &m
		}
		switch raw {
		case "static":
			m.Static = pos
		case "async":
			m.Async = pos
		default:
			m.GetSet = pos
		}
	}

	if p.tok == token.STAR {
		m.Star = p.expect(token.STAR)
	}

	switch p.tok {
	case token.LBRACK:
		m.Lbrack = p.expect(token.LBRACK)
		m.Key = p.parseAssignExpr()
		m.Rbrack = p.expect(token.RBRACK)
	case token.STRING:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw, Value: p.val.String}
		lit.Start = p.expect(token.STRING)
		m.Key = lit
	case token.NUMBER:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw, Value: p.val.Float}
		lit.Start = p.expect(token.NUMBER)
		m.Key = lit
	default:
		m.Key = p.parseIdentLikeExpr()
	}

	m.Params = p.parseParamList()
	m.Body = p.parseFuncBody()
	return &m
}

func (p *parser) parseNewExpr() *ast.NewExpr {
	var n ast.NewExpr
	n.New = p.expect(token.NEW)
	n.Fn = p.parseSuffixedExpr(true)
	if p.tok == token.LPAREN {
		n.Lparen = p.expect(token.LPAREN)
		n.Args, n.Commas = p.parseArgs()
		n.Rparen = p.expect(token.RPAREN)
	}
	return &n
}

func (p *parser) parseIdentExpr() *ast.IdentExpr {
	var exp ast.IdentExpr
	exp.Lit = p.val.Raw
	exp.Start = p.expect(token.IDENT)
	return &exp
}

// parseIdentLikeExpr parses an identifier in a position where reserved
// keywords are also valid names (member selectors, object keys, method
// names).
func (p *parser) parseIdentLikeExpr() *ast.IdentExpr {
	if p.tok != token.IDENT && !p.tok.IsKeyword() {
		p.errorExpected(p.val.Pos, token.IDENT.String())
	}
	var exp ast.IdentExpr
	exp.Lit = p.val.Raw
	exp.Start = p.val.Pos
	p.advance()
	return &exp
}
