package ast

import (
	"fmt"

	"github.com/reedlang/reed/lang/token"
)

// Unwrap the expression inside the parens. It unwraps multiple ParenExpr
// recursively until it reaches a non-ParenExpr.
func Unwrap(e Expr) Expr {
	if pe, ok := e.(*ParenExpr); ok {
		return Unwrap(pe.Expr)
	}
	return e
}

// IsAssignable returns true if e can be assigned to. For an expression to be
// assignable, it must be an IdentExpr, a non-optional DotExpr or IndexExpr,
// or a MutableExpr - a mutable-wrapped name is the one pseudo-expression
// accepted as an assignment target.
func IsAssignable(e Expr) bool {
	switch e := Unwrap(e).(type) {
	case *IdentExpr, *MutableExpr:
		return true
	case *DotExpr:
		return !e.Optional
	case *IndexExpr:
		return !e.Optional
	default:
		return false
	}
}

type (
	// ArrayExpr represents an array literal.
	ArrayExpr struct {
		Lbrack token.Pos
		Items  []Expr // item may be a SpreadExpr
		Commas []token.Pos
		Rbrack token.Pos
	}

	// ArrowExpr represents an arrow function. Body is either an Expr or a
	// *Block.
	ArrowExpr struct {
		Async  token.Pos // 0 if not async
		Params *ParamList
		Arrow  token.Pos
		Body   Node
	}

	// AssignExpr represents an assignment, plain or compound, e.g. x = y or
	// x += y.
	AssignExpr struct {
		Left  Expr
		Type  token.Token // assignment operator token type
		Op    token.Pos
		Right Expr
	}

	// AwaitExpr represents an await expression.
	AwaitExpr struct {
		Await token.Pos
		Right Expr
	}

	// BadExpr represents a bad expression that failed to parse.
	BadExpr struct {
		Start token.Pos
		End   token.Pos
	}

	// BinOpExpr represents a binary expression, e.g. x + y. Logical
	// operators (&&, ||, ??) and relational keywords (in, instanceof) use
	// this node too.
	BinOpExpr struct {
		Left  Expr
		Type  token.Token // binary operator token type
		Op    token.Pos
		Right Expr
	}

	// CallExpr represents a function call, e.g. x(y, z).
	CallExpr struct {
		Fn       Expr
		Optional token.Pos // 0 if not an ?.() call
		Lparen   token.Pos
		Args     []Expr // arg may be a SpreadExpr
		Commas   []token.Pos
		Rparen   token.Pos
	}

	// ClassExpr represents a class literal.
	ClassExpr struct {
		Class   token.Pos
		Name    *IdentExpr // nil if anonymous
		Extends Expr       // nil if no extends clause
		Body    *ClassBody
	}

	// CondExpr represents a conditional expression, e.g. x ? y : z.
	CondExpr struct {
		Cond     Expr
		Question token.Pos
		True     Expr
		Colon    token.Pos
		False    Expr
	}

	// DotExpr represents a selector expression e.g. x.y or x?.y.
	DotExpr struct {
		Left     Expr
		Dot      token.Pos // position of '.' or '?.'
		Optional bool
		Right    *IdentExpr
	}

	// FuncExpr represents a function literal or declaration.
	FuncExpr struct {
		Async  token.Pos // 0 if not async
		Fn     token.Pos
		Star   token.Pos  // 0 if not a generator
		Name   *IdentExpr // nil if anonymous
		Params *ParamList
		Body   *Block
	}

	// IdentExpr represents an identifier.
	IdentExpr struct {
		Start token.Pos
		Lit   string
	}

	// IndexExpr represents an index expression e.g. x[y] or x?.[y].
	IndexExpr struct {
		Prefix   Expr
		Optional bool // true for ?.[
		Lbrack   token.Pos
		Index    Expr
		Rbrack   token.Pos
	}

	// LiteralExpr represents a literal string, number, boolean or null.
	LiteralExpr struct {
		Type  token.Token // null, true, false, string or number
		Start token.Pos
		Raw   string      // uninterpreted text
		Value interface{} // = string | float64 (nil for null/true/false)
	}

	// MutableExpr represents the pseudo-expression mutable x, a reference
	// to the current value of a mutable cell. It is a valid assignment
	// target.
	MutableExpr struct {
		Mutable token.Pos
		Ident   *IdentExpr
	}

	// NewExpr represents a constructor call, e.g. new X(y). Lparen and
	// Rparen are 0 when the argument list is omitted.
	NewExpr struct {
		New    token.Pos
		Fn     Expr
		Lparen token.Pos
		Args   []Expr
		Commas []token.Pos
		Rparen token.Pos
	}

	// ObjectExpr represents an object literal.
	ObjectExpr struct {
		Lbrace token.Pos
		Items  []Expr // each item is a *Property or a *SpreadExpr
		Commas []token.Pos
		Rbrace token.Pos
	}

	// ParenExpr represents an expression wrapped in parentheses.
	ParenExpr struct {
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// Property represents a single key-value entry of an object literal.
	// Value is nil for the shorthand form {x}; for the method form
	// {x() {...}} Value is a *FuncExpr and Colon is 0.
	Property struct {
		Lbrack token.Pos // 0 if the key is not computed
		Key    Expr
		Rbrack token.Pos
		Colon  token.Pos
		Value  Expr
	}

	// SeqExpr represents a comma-sequence of expressions, e.g. x, y, z.
	SeqExpr struct {
		Exprs  []Expr
		Commas []token.Pos // len(Exprs)-1
	}

	// SpreadExpr represents a spread element, e.g. ...x in an array literal
	// or argument list.
	SpreadExpr struct {
		Ellipsis token.Pos
		Right    Expr
	}

	// SuperExpr represents the super keyword.
	SuperExpr struct {
		Start token.Pos
	}

	// TaggedTemplateExpr represents a tagged template, e.g. html`<b/>`.
	TaggedTemplateExpr struct {
		Tag   Expr
		Quasi *TemplateExpr
	}

	// TemplateExpr represents a template literal. Quasis has exactly one
	// more element than Exprs; the pieces interleave starting and ending
	// with a quasi.
	TemplateExpr struct {
		Quasis []*TemplateElement
		Exprs  []Expr
	}

	// ThisExpr represents the this keyword.
	ThisExpr struct {
		Start token.Pos
	}

	// UnaryOpExpr represents a unary operator expression (e.g. -4, typeof x).
	UnaryOpExpr struct {
		Type  token.Token // unary operator token type
		Op    token.Pos
		Right Expr
	}

	// UpdateExpr represents an increment or decrement, prefix or postfix.
	UpdateExpr struct {
		Type    token.Token // PLUSPLUS or MINUSMINUS
		Op      token.Pos
		Prefix  bool
		Operand Expr
	}

	// ViewExpr represents the pseudo-expression viewof x, a reference to
	// the view of a cell rather than its value.
	ViewExpr struct {
		Viewof token.Pos
		Ident  *IdentExpr
	}

	// YieldExpr represents a yield or yield* expression.
	YieldExpr struct {
		Yield token.Pos
		Star  token.Pos // 0 if not a delegating yield
		Right Expr      // may be nil
	}
)

// TemplateElement is a single literal piece of a template, between the
// backticks and interpolations. Raw includes the delimiters on both sides,
// so that slicing the source by the element positions reproduces it exactly.
type TemplateElement struct {
	Start  token.Pos
	Raw    string
	Cooked string
}

// Span reports the start and end position of the element.
func (e *TemplateElement) Span() (start, end token.Pos) {
	return e.Start, e.Start + token.Pos(len(e.Raw))
}

// ParamList is the parameter list of a function, method or arrow. Lparen
// and Rparen are 0 for the bare single-identifier arrow form.
type ParamList struct {
	Lparen token.Pos
	Params []*Param
	Commas []token.Pos
	Rparen token.Pos
}

// Span reports the start and end position of the list.
func (pl *ParamList) Span() (start, end token.Pos) {
	if pl.Lparen.IsValid() {
		return pl.Lparen, pl.Rparen + token.Pos(len(token.RPAREN.String()))
	}
	return pl.Params[0].Span()
}

// Param is a single function parameter, possibly a rest parameter or with a
// default value.
type Param struct {
	Ellipsis token.Pos // 0 if not a rest parameter
	Name     *IdentExpr
	Eq       token.Pos // 0 if no default
	Default  Expr
}

// Span reports the start and end position of the parameter.
func (p *Param) Span() (start, end token.Pos) {
	start, end = p.Name.Span()
	if p.Ellipsis.IsValid() {
		start = p.Ellipsis
	}
	if p.Default != nil {
		_, end = p.Default.Span()
	}
	return start, end
}

// ClassBody is the brace-delimited body of a class.
type ClassBody struct {
	Lbrace  token.Pos
	Methods []*MethodDef
	Rbrace  token.Pos
}

// MethodDef is a single method of a class body. Getters and setters parse
// as plain methods with GetSet set to the position of the get/set keyword.
type MethodDef struct {
	Static token.Pos // 0 if not static
	GetSet token.Pos // 0 if not a getter/setter
	Async  token.Pos // 0 if not async
	Star   token.Pos // 0 if not a generator
	Lbrack token.Pos // 0 if the key is not computed
	Key    Expr
	Rbrack token.Pos
	Params *ParamList
	Body   *Block
}

// Span reports the start and end position of the method.
func (m *MethodDef) Span() (start, end token.Pos) {
	switch {
	case m.Static.IsValid():
		start = m.Static
	case m.GetSet.IsValid():
		start = m.GetSet
	case m.Async.IsValid():
		start = m.Async
	case m.Star.IsValid():
		start = m.Star
	case m.Lbrack.IsValid():
		start = m.Lbrack
	default:
		start, _ = m.Key.Span()
	}
	_, end = m.Body.Span()
	return start, end
}

func (n *ArrayExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array", map[string]int{"items": len(n.Items)})
}
func (n *ArrayExpr) Span() (start, end token.Pos) {
	return n.Lbrack, n.Rbrack + token.Pos(len(token.RBRACK.String()))
}
func (n *ArrayExpr) Walk(v Visitor) {
	for _, e := range n.Items {
		Walk(v, e)
	}
}
func (n *ArrayExpr) expr() {}

func (n *ArrowExpr) Format(f fmt.State, verb rune) {
	lbl := "arrow"
	if n.Async.IsValid() {
		lbl = "async arrow"
	}
	format(f, verb, n, lbl, map[string]int{"params": len(n.Params.Params)})
}
func (n *ArrowExpr) Span() (start, end token.Pos) {
	if n.Async.IsValid() {
		start = n.Async
	} else {
		start, _ = n.Params.Span()
	}
	_, end = n.Body.Span()
	return start, end
}
func (n *ArrowExpr) Walk(v Visitor) {
	for _, p := range n.Params.Params {
		Walk(v, p.Name)
		if p.Default != nil {
			Walk(v, p.Default)
		}
	}
	Walk(v, n.Body)
}
func (n *ArrowExpr) expr() {}

func (n *AssignExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Type.GoString(), nil)
}
func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *AssignExpr) expr() {}

func (n *AwaitExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "await", nil)
}
func (n *AwaitExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.Await, end
}
func (n *AwaitExpr) Walk(v Visitor) {
	Walk(v, n.Right)
}
func (n *AwaitExpr) expr() {}

func (n *BadExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad expr!", nil)
}
func (n *BadExpr) Span() (start, end token.Pos) {
	return n.Start, n.End
}
func (n *BadExpr) Walk(v Visitor) {}
func (n *BadExpr) expr()          {}

func (n *BinOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Type.GoString(), nil)
}
func (n *BinOpExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinOpExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *CallExpr) expr() {}

func (n *ClassExpr) Format(f fmt.State, verb rune) {
	var extendsCount int
	if n.Extends != nil {
		extendsCount = 1
	}
	format(f, verb, n, "class", map[string]int{
		"extends": extendsCount,
		"methods": len(n.Body.Methods),
	})
}
func (n *ClassExpr) Span() (start, end token.Pos) {
	return n.Class, n.Body.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *ClassExpr) Walk(v Visitor) {
	if n.Name != nil {
		Walk(v, n.Name)
	}
	if n.Extends != nil {
		Walk(v, n.Extends)
	}
	for _, m := range n.Body.Methods {
		if m.Lbrack.IsValid() {
			Walk(v, m.Key)
		}
		for _, p := range m.Params.Params {
			Walk(v, p.Name)
			if p.Default != nil {
				Walk(v, p.Default)
			}
		}
		Walk(v, m.Body)
	}
}
func (n *ClassExpr) expr() {}

func (n *CondExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "cond ?:", nil)
}
func (n *CondExpr) Span() (start, end token.Pos) {
	start, _ = n.Cond.Span()
	_, end = n.False.Span()
	return start, end
}
func (n *CondExpr) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.True)
	Walk(v, n.False)
}
func (n *CondExpr) expr() {}

func (n *DotExpr) Format(f fmt.State, verb rune) {
	lbl := "expr.ident"
	if n.Optional {
		lbl = "expr?.ident"
	}
	format(f, verb, n, lbl, nil)
}
func (n *DotExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *DotExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *DotExpr) expr() {}

func (n *FuncExpr) Format(f fmt.State, verb rune) {
	lbl := "function"
	if n.Async.IsValid() {
		lbl = "async " + lbl
	}
	if n.Star.IsValid() {
		lbl += "*"
	}
	if n.Name != nil {
		lbl += " " + n.Name.Lit
	}
	format(f, verb, n, lbl, map[string]int{"params": len(n.Params.Params)})
}
func (n *FuncExpr) Span() (start, end token.Pos) {
	start = n.Fn
	if n.Async.IsValid() {
		start = n.Async
	}
	_, end = n.Body.Span()
	return start, end
}
func (n *FuncExpr) Walk(v Visitor) {
	if n.Name != nil {
		Walk(v, n.Name)
	}
	for _, p := range n.Params.Params {
		Walk(v, p.Name)
		if p.Default != nil {
			Walk(v, p.Default)
		}
	}
	Walk(v, n.Body)
}
func (n *FuncExpr) expr() {}

func (n *IdentExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Lit, nil)
}
func (n *IdentExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Lit))
}
func (n *IdentExpr) Walk(v Visitor) {}
func (n *IdentExpr) expr()          {}

func (n *IndexExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "expr[index]", nil)
}
func (n *IndexExpr) Span() (start, end token.Pos) {
	start, _ = n.Prefix.Span()
	return start, n.Rbrack + token.Pos(len(token.RBRACK.String()))
}
func (n *IndexExpr) Walk(v Visitor) {
	Walk(v, n.Prefix)
	Walk(v, n.Index)
}
func (n *IndexExpr) expr() {}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	if n.Value == nil {
		format(f, verb, n, n.Type.String(), nil)
	} else {
		format(f, verb, n, n.Type.String()+" "+n.Raw, nil)
	}
}
func (n *LiteralExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *LiteralExpr) Walk(v Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *MutableExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "mutable "+n.Ident.Lit, nil)
}
func (n *MutableExpr) Span() (start, end token.Pos) {
	_, end = n.Ident.Span()
	return n.Mutable, end
}
func (n *MutableExpr) Walk(v Visitor) {
	Walk(v, n.Ident)
}
func (n *MutableExpr) expr() {}

func (n *NewExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "new", map[string]int{"args": len(n.Args)})
}
func (n *NewExpr) Span() (start, end token.Pos) {
	if n.Rparen.IsValid() {
		return n.New, n.Rparen + token.Pos(len(token.RPAREN.String()))
	}
	_, end = n.Fn.Span()
	return n.New, end
}
func (n *NewExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *NewExpr) expr() {}

func (n *ObjectExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "object", map[string]int{"props": len(n.Items)})
}
func (n *ObjectExpr) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *ObjectExpr) Walk(v Visitor) {
	for _, e := range n.Items {
		Walk(v, e)
	}
}
func (n *ObjectExpr) expr() {}

func (n *ParenExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "(expr)", nil)
}
func (n *ParenExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *ParenExpr) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *ParenExpr) expr() {}

func (n *Property) Format(f fmt.State, verb rune) {
	format(f, verb, n, "prop", nil)
}
func (n *Property) Span() (start, end token.Pos) {
	if n.Lbrack.IsValid() {
		start = n.Lbrack
	} else {
		start, _ = n.Key.Span()
	}
	if n.Value != nil {
		_, end = n.Value.Span()
	} else {
		_, end = n.Key.Span()
	}
	return start, end
}
func (n *Property) Walk(v Visitor) {
	Walk(v, n.Key)
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *Property) expr() {}

func (n *SeqExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "seq", map[string]int{"exprs": len(n.Exprs)})
}
func (n *SeqExpr) Span() (start, end token.Pos) {
	start, _ = n.Exprs[0].Span()
	_, end = n.Exprs[len(n.Exprs)-1].Span()
	return start, end
}
func (n *SeqExpr) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
}
func (n *SeqExpr) expr() {}

func (n *SpreadExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "...expr", nil)
}
func (n *SpreadExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.Ellipsis, end
}
func (n *SpreadExpr) Walk(v Visitor) {
	Walk(v, n.Right)
}
func (n *SpreadExpr) expr() {}

func (n *SuperExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "super", nil)
}
func (n *SuperExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(token.SUPER.String()))
}
func (n *SuperExpr) Walk(v Visitor) {}
func (n *SuperExpr) expr()          {}

func (n *TaggedTemplateExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "tagged template", nil)
}
func (n *TaggedTemplateExpr) Span() (start, end token.Pos) {
	start, _ = n.Tag.Span()
	_, end = n.Quasi.Span()
	return start, end
}
func (n *TaggedTemplateExpr) Walk(v Visitor) {
	Walk(v, n.Tag)
	Walk(v, n.Quasi)
}
func (n *TaggedTemplateExpr) expr() {}

func (n *TemplateExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "template", map[string]int{"exprs": len(n.Exprs)})
}
func (n *TemplateExpr) Span() (start, end token.Pos) {
	start, _ = n.Quasis[0].Span()
	_, end = n.Quasis[len(n.Quasis)-1].Span()
	return start, end
}
func (n *TemplateExpr) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
}
func (n *TemplateExpr) expr() {}

func (n *ThisExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "this", nil)
}
func (n *ThisExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(token.THIS.String()))
}
func (n *ThisExpr) Walk(v Visitor) {}
func (n *ThisExpr) expr()          {}

func (n *UnaryOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Type.GoString(), nil)
}
func (n *UnaryOpExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.Op, end
}
func (n *UnaryOpExpr) Walk(v Visitor) {
	Walk(v, n.Right)
}
func (n *UnaryOpExpr) expr() {}

func (n *UpdateExpr) Format(f fmt.State, verb rune) {
	lbl := "postfix "
	if n.Prefix {
		lbl = "prefix "
	}
	format(f, verb, n, lbl+n.Type.GoString(), nil)
}
func (n *UpdateExpr) Span() (start, end token.Pos) {
	if n.Prefix {
		_, end = n.Operand.Span()
		return n.Op, end
	}
	start, _ = n.Operand.Span()
	return start, n.Op + token.Pos(len(n.Type.String()))
}
func (n *UpdateExpr) Walk(v Visitor) {
	Walk(v, n.Operand)
}
func (n *UpdateExpr) expr() {}

func (n *ViewExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "viewof "+n.Ident.Lit, nil)
}
func (n *ViewExpr) Span() (start, end token.Pos) {
	_, end = n.Ident.Span()
	return n.Viewof, end
}
func (n *ViewExpr) Walk(v Visitor) {
	Walk(v, n.Ident)
}
func (n *ViewExpr) expr() {}

func (n *YieldExpr) Format(f fmt.State, verb rune) {
	lbl := "yield"
	if n.Star.IsValid() {
		lbl = "yield*"
	}
	format(f, verb, n, lbl, nil)
}
func (n *YieldExpr) Span() (start, end token.Pos) {
	end = n.Yield + token.Pos(len(token.YIELD.String()))
	if n.Star.IsValid() {
		end = n.Star + token.Pos(len(token.STAR.String()))
	}
	if n.Right != nil {
		_, end = n.Right.Span()
	}
	return n.Yield, end
}
func (n *YieldExpr) Walk(v Visitor) {
	if n.Right != nil {
		Walk(v, n.Right)
	}
}
func (n *YieldExpr) expr() {}
