package ast

import (
	"fmt"

	"github.com/reedlang/reed/lang/token"
)

type (
	// BadStmt represents a bad statement that failed to parse.
	BadStmt struct {
		Start token.Pos
		End   token.Pos
	}

	// Block represents a brace-delimited list of statements. It is used for
	// function bodies, control-flow bodies and the block form of a cell.
	Block struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// ClassStmt represents a class declaration statement. The wrapped
	// expression always has a name.
	ClassStmt struct {
		Class *ClassExpr
	}

	// DoWhileStmt represents a do-while loop statement.
	DoWhileStmt struct {
		Do     token.Pos
		Body   Stmt
		While  token.Pos
		Lparen token.Pos
		Cond   Expr
		Rparen token.Pos
	}

	// EmptyStmt represents a lone semicolon.
	EmptyStmt struct {
		Semi token.Pos
	}

	// ExprStmt represents an expression used as a statement.
	ExprStmt struct {
		Expr Expr
	}

	// ForInOfStmt represents a for-in or for-of loop statement, including
	// the for await-of form.
	ForInOfStmt struct {
		For      token.Pos
		Await    token.Pos   // 0 unless for await-of
		Lparen   token.Pos
		DeclType token.Token // ILLEGAL if the target is a plain expression
		DeclPos  token.Pos
		Left     Expr
		Of       bool // false for for-in
		InOf     token.Pos
		Right    Expr
		Rparen   token.Pos
		Body     Stmt
	}

	// ForLoopStmt represents a classic 3-clause for loop statement.
	ForLoopStmt struct {
		For      token.Pos
		Lparen   token.Pos
		Init     Stmt // may be nil, a VarDeclStmt or an ExprStmt
		InitSemi token.Pos
		Cond     Expr // may be nil
		CondSemi token.Pos
		Post     Expr // may be nil
		Rparen   token.Pos
		Body     Stmt
	}

	// FuncStmt represents a function declaration statement. The wrapped
	// expression always has a name.
	FuncStmt struct {
		Fn *FuncExpr
	}

	// IfStmt represents an if statement with an optional else branch. False
	// is an IfStmt for an else-if chain.
	IfStmt struct {
		If     token.Pos
		Lparen token.Pos
		Cond   Expr
		Rparen token.Pos
		True   Stmt
		Else   token.Pos // 0 if no else
		False  Stmt      // nil if no else
	}

	// ReturnLikeStmt represents a return, break, continue or throw.
	ReturnLikeStmt struct {
		Type  token.Token // return, break, continue, throw
		Start token.Pos   // position of Type
		Expr  Expr        // may be nil, never nil for throw
	}

	// SwitchStmt represents a switch statement.
	SwitchStmt struct {
		Switch token.Pos
		Lparen token.Pos
		Cond   Expr
		Rparen token.Pos
		Lbrace token.Pos
		Cases  []*SwitchCase
		Rbrace token.Pos
	}

	// TryStmt represents a try statement with at least one of a catch or a
	// finally clause.
	TryStmt struct {
		Try       token.Pos
		Body      *Block
		Catch     token.Pos  // 0 if no catch clause
		Lparen    token.Pos  // 0 if no catch parameter
		Param     *IdentExpr // nil if no catch parameter
		Rparen    token.Pos
		CatchBody *Block    // nil if no catch clause
		Finally   token.Pos // 0 if no finally clause
		Final     *Block    // nil if no finally clause
	}

	// VarDeclStmt represents a var, let or const declaration statement with
	// one or more declarators.
	VarDeclStmt struct {
		Type   token.Token // var, let or const
		Start  token.Pos
		Decls  []*VarDecl
		Commas []token.Pos // len(Decls)-1
	}

	// WhileStmt represents a while loop statement.
	WhileStmt struct {
		While  token.Pos
		Lparen token.Pos
		Cond   Expr
		Rparen token.Pos
		Body   Stmt
	}
)

// SwitchCase is a single case (or default, when Test is nil) clause of a
// switch statement.
type SwitchCase struct {
	Start token.Pos // position of case or default
	Test  Expr      // nil for default
	Colon token.Pos
	Body  []Stmt
}

// Span reports the start and end position of the clause.
func (c *SwitchCase) Span() (start, end token.Pos) {
	end = c.Colon + token.Pos(len(token.COLON.String()))
	if len(c.Body) > 0 {
		_, end = c.Body[len(c.Body)-1].Span()
	}
	return c.Start, end
}

// VarDecl is a single declarator of a VarDeclStmt.
type VarDecl struct {
	Name *IdentExpr
	Eq   token.Pos // 0 if no initializer
	Init Expr      // nil if no initializer
}

// Span reports the start and end position of the declarator.
func (d *VarDecl) Span() (start, end token.Pos) {
	start, end = d.Name.Span()
	if d.Init != nil {
		_, end = d.Init.Span()
	}
	return start, end
}

func (n *BadStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad stmt!", nil)
}
func (n *BadStmt) Span() (start, end token.Pos) {
	return n.Start, n.End
}
func (n *BadStmt) Walk(v Visitor) {}
func (n *BadStmt) stmt()          {}

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Block) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *Block) stmt() {}

func (n *ClassStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "class decl "+n.Class.Name.Lit, map[string]int{
		"methods": len(n.Class.Body.Methods),
	})
}
func (n *ClassStmt) Span() (start, end token.Pos) { return n.Class.Span() }
func (n *ClassStmt) Walk(v Visitor)               { Walk(v, n.Class) }
func (n *ClassStmt) stmt()                        {}

func (n *DoWhileStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "do-while", nil)
}
func (n *DoWhileStmt) Span() (start, end token.Pos) {
	return n.Do, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *DoWhileStmt) Walk(v Visitor) {
	Walk(v, n.Body)
	Walk(v, n.Cond)
}
func (n *DoWhileStmt) stmt() {}

func (n *EmptyStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "empty", nil)
}
func (n *EmptyStmt) Span() (start, end token.Pos) {
	return n.Semi, n.Semi + token.Pos(len(token.SEMICOLON.String()))
}
func (n *EmptyStmt) Walk(v Visitor) {}
func (n *EmptyStmt) stmt()          {}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.Expr.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *ExprStmt) stmt()                         {}

func (n *ForInOfStmt) Format(f fmt.State, verb rune) {
	lbl := "for in"
	if n.Of {
		lbl = "for of"
		if n.Await.IsValid() {
			lbl = "for await of"
		}
	}
	format(f, verb, n, lbl, nil)
}
func (n *ForInOfStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.For, end
}
func (n *ForInOfStmt) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
	Walk(v, n.Body)
}
func (n *ForInOfStmt) stmt() {}

func (n *ForLoopStmt) Format(f fmt.State, verb rune) {
	var clauses int
	if n.Init != nil {
		clauses++
	}
	if n.Cond != nil {
		clauses++
	}
	if n.Post != nil {
		clauses++
	}
	format(f, verb, n, "for", map[string]int{"clauses": clauses})
}
func (n *ForLoopStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.For, end
}
func (n *ForLoopStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
	if n.Cond != nil {
		Walk(v, n.Cond)
	}
	if n.Post != nil {
		Walk(v, n.Post)
	}
	Walk(v, n.Body)
}
func (n *ForLoopStmt) stmt() {}

func (n *FuncStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "function decl "+n.Fn.Name.Lit, map[string]int{
		"params": len(n.Fn.Params.Params),
	})
}
func (n *FuncStmt) Span() (start, end token.Pos) { return n.Fn.Span() }
func (n *FuncStmt) Walk(v Visitor)               { Walk(v, n.Fn) }
func (n *FuncStmt) stmt()                        {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.False != nil {
		lbl = "if-else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfStmt) Span() (start, end token.Pos) {
	_, end = n.True.Span()
	if n.False != nil {
		_, end = n.False.Span()
	}
	return n.If, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.True)
	if n.False != nil {
		Walk(v, n.False)
	}
}
func (n *IfStmt) stmt() {}

func (n *ReturnLikeStmt) Format(f fmt.State, verb rune) {
	var exprCount int
	if n.Expr != nil {
		exprCount = 1
	}
	format(f, verb, n, n.Type.String(), map[string]int{"expr": exprCount})
}
func (n *ReturnLikeStmt) Span() (start, end token.Pos) {
	end = n.Start + token.Pos(len(n.Type.String()))
	if n.Expr != nil {
		_, end = n.Expr.Span()
	}
	return n.Start, end
}
func (n *ReturnLikeStmt) Walk(v Visitor) {
	if n.Expr != nil {
		Walk(v, n.Expr)
	}
}
func (n *ReturnLikeStmt) stmt() {}

func (n *SwitchStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "switch", map[string]int{"cases": len(n.Cases)})
}
func (n *SwitchStmt) Span() (start, end token.Pos) {
	return n.Switch, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *SwitchStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	for _, c := range n.Cases {
		if c.Test != nil {
			Walk(v, c.Test)
		}
		for _, s := range c.Body {
			Walk(v, s)
		}
	}
}
func (n *SwitchStmt) stmt() {}

func (n *TryStmt) Format(f fmt.State, verb rune) {
	var catchCount, finallyCount int
	if n.CatchBody != nil {
		catchCount = 1
	}
	if n.Final != nil {
		finallyCount = 1
	}
	format(f, verb, n, "try", map[string]int{"catch": catchCount, "finally": finallyCount})
}
func (n *TryStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	if n.CatchBody != nil {
		_, end = n.CatchBody.Span()
	}
	if n.Final != nil {
		_, end = n.Final.Span()
	}
	return n.Try, end
}
func (n *TryStmt) Walk(v Visitor) {
	Walk(v, n.Body)
	if n.CatchBody != nil {
		if n.Param != nil {
			Walk(v, n.Param)
		}
		Walk(v, n.CatchBody)
	}
	if n.Final != nil {
		Walk(v, n.Final)
	}
}
func (n *TryStmt) stmt() {}

func (n *VarDeclStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Type.String()+" declaration", map[string]int{"decls": len(n.Decls)})
}
func (n *VarDeclStmt) Span() (start, end token.Pos) {
	_, end = n.Decls[len(n.Decls)-1].Span()
	return n.Start, end
}
func (n *VarDeclStmt) Walk(v Visitor) {
	for _, d := range n.Decls {
		Walk(v, d.Name)
		if d.Init != nil {
			Walk(v, d.Init)
		}
	}
}
func (n *VarDeclStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "while", nil)
}
func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.While, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}
