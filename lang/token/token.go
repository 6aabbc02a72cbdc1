package token

import "strconv"

// A Token represents a lexical token.
type Token int8

//nolint:revive
const (
	ILLEGAL Token = iota
	EOF

	// Tokens with values
	COMMENT  // // code comment or /* ... */
	IDENT    // x
	NUMBER   // 123, 1.23e45, 0x1f
	STRING   // "foo" or 'foo'
	TEMPLATE // `foo` or a piece of `foo${.}bar${.}baz`

	// Punctuation

	// operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	STARSTAR // **
	SLASH    // /
	PERCENT  // %

	AMPERSAND // &
	PIPE      // |
	CARET     // ^
	TILDE     // ~
	LTLT      // <<
	GTGT      // >>
	GTGTGT    // >>>

	AMPAMP   // &&
	PIPEPIPE // ||
	QQ       // ??

	PLUSPLUS   // ++
	MINUSMINUS // --

	// assignment operators, EQ first and compound operators contiguous
	EQ         // =
	PLUSEQ     // +=
	MINUSEQ    // -=
	STAREQ     // *=
	STARSTAREQ // **=
	SLASHEQ    // /=
	PERCENTEQ  // %=
	AMPEQ      // &=
	PIPEEQ     // |=
	CARETEQ    // ^=
	LTLTEQ     // <<=
	GTGTEQ     // >>=
	GTGTGTEQ   // >>>=
	AMPAMPEQ   // &&=
	PIPEPIPEEQ // ||=
	QQEQ       // ??=

	// relational operators
	EQEQ     // ==
	EQEQEQ   // ===
	BANGEQ   // !=
	BANGEQEQ // !==
	LT       // <
	GT       // >
	LE       // <=
	GE       // >=

	// punctuation
	SEMICOLON   // ;
	COMMA       // ,
	LBRACE      // {
	RBRACE      // }
	LBRACK      // [
	RBRACK      // ]
	LPAREN      // (
	RPAREN      // )
	COLON       // :
	DOT         // .
	DOTDOTDOT   // ...
	BANG        // !
	QUESTION    // ?
	QUESTIONDOT // ?.
	ARROW       // =>

	// Keywords
	AWAIT
	BREAK
	CASE
	CATCH
	CLASS
	CONST
	CONTINUE
	DEFAULT
	DELETE
	DO
	ELSE
	EXTENDS
	FALSE
	FINALLY
	FOR
	FUNCTION
	IF
	IMPORT
	IN
	INSTANCEOF
	LET
	NEW
	NULL
	RETURN
	SUPER
	SWITCH
	THIS
	THROW
	TRUE
	TRY
	TYPEOF
	VAR
	VOID
	WHILE
	WITH
	YIELD

	maxToken               = YIELD
	litStart, litEnd       = COMMENT, TEMPLATE
	punctStart, punctEnd   = PLUS, ARROW
	kwStart, kwEnd         = AWAIT, YIELD
	assignStart, assignEnd = EQ, QQEQ
)

func (tok Token) String() string { return tokenNames[tok] }

// GoString is like String but quotes punctuation tokens. Use Sprintf("%#v",
// tok) when constructing error messages.
func (tok Token) GoString() string {
	if tok >= punctStart && tok <= punctEnd {
		return "'" + tokenNames[tok] + "'"
	}
	return tokenNames[tok]
}

// IsKeyword returns true if the token is a reserved keyword.
func (tok Token) IsKeyword() bool { return tok >= kwStart && tok <= kwEnd }

// IsAssignOp returns true if the token is '=' or a compound assignment
// operator.
func (tok Token) IsAssignOp() bool { return tok >= assignStart && tok <= assignEnd }

var tokenNames = [...]string{
	ILLEGAL: "illegal token",
	EOF:     "end of input",

	COMMENT:  "comment",
	IDENT:    "identifier",
	NUMBER:   "number literal",
	STRING:   "string literal",
	TEMPLATE: "template literal",

	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	STARSTAR: "**",
	SLASH:    "/",
	PERCENT:  "%",

	AMPERSAND: "&",
	PIPE:      "|",
	CARET:     "^",
	TILDE:     "~",
	LTLT:      "<<",
	GTGT:      ">>",
	GTGTGT:    ">>>",

	AMPAMP:   "&&",
	PIPEPIPE: "||",
	QQ:       "??",

	PLUSPLUS:   "++",
	MINUSMINUS: "--",

	EQ:         "=",
	PLUSEQ:     "+=",
	MINUSEQ:    "-=",
	STAREQ:     "*=",
	STARSTAREQ: "**=",
	SLASHEQ:    "/=",
	PERCENTEQ:  "%=",
	AMPEQ:      "&=",
	PIPEEQ:     "|=",
	CARETEQ:    "^=",
	LTLTEQ:     "<<=",
	GTGTEQ:     ">>=",
	GTGTGTEQ:   ">>>=",
	AMPAMPEQ:   "&&=",
	PIPEPIPEEQ: "||=",
	QQEQ:       "??=",

	EQEQ:     "==",
	EQEQEQ:   "===",
	BANGEQ:   "!=",
	BANGEQEQ: "!==",
	LT:       "<",
	GT:       ">",
	LE:       "<=",
	GE:       ">=",

	SEMICOLON:   ";",
	COMMA:       ",",
	LBRACE:      "{",
	RBRACE:      "}",
	LBRACK:      "[",
	RBRACK:      "]",
	LPAREN:      "(",
	RPAREN:      ")",
	COLON:       ":",
	DOT:         ".",
	DOTDOTDOT:   "...",
	BANG:        "!",
	QUESTION:    "?",
	QUESTIONDOT: "?.",
	ARROW:       "=>",

	AWAIT:      "await",
	BREAK:      "break",
	CASE:       "case",
	CATCH:      "catch",
	CLASS:      "class",
	CONST:      "const",
	CONTINUE:   "continue",
	DEFAULT:    "default",
	DELETE:     "delete",
	DO:         "do",
	ELSE:       "else",
	EXTENDS:    "extends",
	FALSE:      "false",
	FINALLY:    "finally",
	FOR:        "for",
	FUNCTION:   "function",
	IF:         "if",
	IMPORT:     "import",
	IN:         "in",
	INSTANCEOF: "instanceof",
	LET:        "let",
	NEW:        "new",
	NULL:       "null",
	RETURN:     "return",
	SUPER:      "super",
	SWITCH:     "switch",
	THIS:       "this",
	THROW:      "throw",
	TRUE:       "true",
	TRY:        "try",
	TYPEOF:     "typeof",
	VAR:        "var",
	VOID:       "void",
	WHILE:      "while",
	WITH:       "with",
	YIELD:      "yield",
}

var keywords = func() map[string]Token {
	kw := make(map[string]Token)
	for i := kwStart; i <= kwEnd; i++ {
		kw[tokenNames[i]] = i
	}
	return kw
}()

// LookupKw maps an identifier to its keyword token or IDENT (if not a
// keyword). Contextual keywords (async, of, as, from, viewof, mutable) are
// not reserved and always map to IDENT.
func LookupKw(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Value records the raw text, position and decoded value associated with
// each token.
type Value struct {
	Raw    string  // raw text of token
	Float  float64 // decoded number
	String string  // decoded string, template piece or comment text
	Pos    Pos     // start position of token

	// More is true for a TEMPLATE piece that stops at a '${' interpolation,
	// false when the piece closes the template literal.
	More bool
}

// Literal returns the string representation of the literal value of the token
// from its associated Value struct. If t is not a literal, it returns an empty
// string.
func (tok Token) Literal(v Value) string {
	switch tok {
	case IDENT:
		return v.Raw
	case STRING, TEMPLATE:
		return strconv.Quote(v.String)
	case COMMENT:
		return v.String
	case NUMBER:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return ""
	}
}
