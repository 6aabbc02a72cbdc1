package scanner_test

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/reedlang/reed/internal/filetest"
	"github.com/reedlang/reed/internal/maincmd"
	"github.com/reedlang/reed/lang/scanner"
	"github.com/reedlang/reed/lang/token"
	"github.com/stretchr/testify/require"
)

var testUpdateScannerTests = flag.Bool("test.update-scanner-tests", false, "If set, replace expected scanner test results with actual results.")

func TestScanFiles(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".reed") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.TokenizeFiles(stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateScannerTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateScannerTests)
		})
	}
}

type tokAndRaw struct {
	tok token.Token
	raw string
}

func scanAll(t *testing.T, src string) ([]tokAndRaw, scanner.ErrorList) {
	t.Helper()

	var (
		s    scanner.Scanner
		val  token.Value
		errs scanner.ErrorList
		res  []tokAndRaw
	)
	fset := token.NewFileSet()
	f := fset.AddFile("test", -1, len(src))
	s.Init(f, []byte(src), errs.Add)
	for {
		tok := s.Scan(&val)
		if tok == token.EOF {
			break
		}
		res = append(res, tokAndRaw{tok: tok, raw: val.Raw})
	}
	return res, errs
}

func TestScan(t *testing.T) {
	cases := []struct {
		src  string
		want []tokAndRaw
	}{
		{"", nil},
		{"  \t\n", nil},
		{"x", []tokAndRaw{{token.IDENT, "x"}}},
		{"$foo _bar", []tokAndRaw{{token.IDENT, "$foo"}, {token.IDENT, "_bar"}}},
		{"await function", []tokAndRaw{{token.AWAIT, "await"}, {token.FUNCTION, "function"}}},
		{"async of as from viewof mutable", []tokAndRaw{
			{token.IDENT, "async"}, {token.IDENT, "of"}, {token.IDENT, "as"},
			{token.IDENT, "from"}, {token.IDENT, "viewof"}, {token.IDENT, "mutable"},
		}},
		{"a = b", []tokAndRaw{{token.IDENT, "a"}, {token.EQ, "="}, {token.IDENT, "b"}}},
		{"a === b !== c", []tokAndRaw{
			{token.IDENT, "a"}, {token.EQEQEQ, "==="}, {token.IDENT, "b"},
			{token.BANGEQEQ, "!=="}, {token.IDENT, "c"},
		}},
		{"a ?. b ?? c ? d : e", []tokAndRaw{
			{token.IDENT, "a"}, {token.QUESTIONDOT, "?."}, {token.IDENT, "b"},
			{token.QQ, "??"}, {token.IDENT, "c"}, {token.QUESTION, "?"},
			{token.IDENT, "d"}, {token.COLON, ":"}, {token.IDENT, "e"},
		}},
		{"x ** 2 >>> 1 <<= 3", []tokAndRaw{
			{token.IDENT, "x"}, {token.STARSTAR, "**"}, {token.NUMBER, "2"},
			{token.GTGTGT, ">>>"}, {token.NUMBER, "1"}, {token.LTLTEQ, "<<="},
			{token.NUMBER, "3"},
		}},
		{"x++ + ++y", []tokAndRaw{
			{token.IDENT, "x"}, {token.PLUSPLUS, "++"}, {token.PLUS, "+"},
			{token.PLUSPLUS, "++"}, {token.IDENT, "y"},
		}},
		{"...rest => ok", []tokAndRaw{
			{token.DOTDOTDOT, "..."}, {token.IDENT, "rest"},
			{token.ARROW, "=>"}, {token.IDENT, "ok"},
		}},
		{"// comment\nx", []tokAndRaw{{token.COMMENT, "// comment"}, {token.IDENT, "x"}}},
		{"/* a\nb */x", []tokAndRaw{{token.COMMENT, "/* a\nb */"}, {token.IDENT, "x"}}},
		{`'a' "b"`, []tokAndRaw{{token.STRING, "'a'"}, {token.STRING, `"b"`}}},
		{"`tmpl`", []tokAndRaw{{token.TEMPLATE, "`tmpl`"}}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, errs := scanAll(t, c.src)
			require.NoError(t, errs.Err())
			require.Equal(t, c.want, got)
		})
	}
}

func TestScanNumbers(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"0", 0},
		{"123", 123},
		{"1.5", 1.5},
		{".25", 0.25},
		{"1e3", 1000},
		{"2.5e-1", 0.25},
		{"0x1f", 31},
		{"0b101", 5},
		{"0o17", 15},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			var (
				s    scanner.Scanner
				val  token.Value
				errs scanner.ErrorList
			)
			fset := token.NewFileSet()
			f := fset.AddFile("test", -1, len(c.src))
			s.Init(f, []byte(c.src), errs.Add)

			tok := s.Scan(&val)
			require.NoError(t, errs.Err())
			require.Equal(t, token.NUMBER, tok)
			require.Equal(t, c.src, val.Raw)
			require.Equal(t, c.want, val.Float)
		})
	}
}

func TestScanStrings(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"abc"`, "abc"},
		{`'abc'`, "abc"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"\x41"`, "A"},
		{`"A"`, "A"},
		{`"\u{1F600}"`, "\U0001F600"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			var (
				s    scanner.Scanner
				val  token.Value
				errs scanner.ErrorList
			)
			fset := token.NewFileSet()
			f := fset.AddFile("test", -1, len(c.src))
			s.Init(f, []byte(c.src), errs.Add)

			tok := s.Scan(&val)
			require.NoError(t, errs.Err())
			require.Equal(t, token.STRING, tok)
			require.Equal(t, c.src, val.Raw)
			require.Equal(t, c.want, val.String)
		})
	}
}

func TestScanErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"abc`, "string literal not terminated"},
		{"'abc\ndef'", "string literal not terminated"},
		{"`abc", "template literal not terminated"},
		{"@", "illegal character"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, errs := scanAll(t, c.src)
			require.Error(t, errs.Err())
			require.Contains(t, errs[0].Msg, c.want)
		})
	}
}

func TestScanTemplate(t *testing.T) {
	// a template with an interpolation scans as a first piece that stops at
	// '${', the interpolation tokens, and on the closing '}' the caller
	// switches to ScanTemplate for the next piece.
	src := "`a${x}b`"
	var (
		s    scanner.Scanner
		val  token.Value
		errs scanner.ErrorList
	)
	fset := token.NewFileSet()
	f := fset.AddFile("test", -1, len(src))
	s.Init(f, []byte(src), errs.Add)

	tok := s.Scan(&val)
	require.Equal(t, token.TEMPLATE, tok)
	require.Equal(t, "`a${", val.Raw)
	require.Equal(t, "a", val.String)
	require.True(t, val.More)

	tok = s.Scan(&val)
	require.Equal(t, token.IDENT, tok)
	require.Equal(t, "x", val.Raw)

	tok = s.Scan(&val)
	require.Equal(t, token.RBRACE, tok)

	tok = s.ScanTemplate(&val)
	require.Equal(t, token.TEMPLATE, tok)
	require.Equal(t, "}b`", val.Raw)
	require.Equal(t, "b", val.String)
	require.False(t, val.More)

	tok = s.Scan(&val)
	require.Equal(t, token.EOF, tok)
	require.NoError(t, errs.Err())
}
