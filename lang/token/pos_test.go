package token

import (
	"fmt"
	"testing"
)

func TestPositionLookup(t *testing.T) {
	fset := NewFileSet()
	f := fset.AddFile("test", -1, 10)
	// line starts are the byte offsets following each newline, the way the
	// scanner registers them (newlines at offsets 3, 5 and 8)
	f.AddLine(4)
	f.AddLine(6)
	f.AddLine(9)

	// In Pos values:
	// | 1  2  3  4  5  6  7  8  9  10  11 |
	//   _  _  _  \n _  \n _  _  \n _   EOF

	cases := []struct {
		pos        Pos
		line, col  int
		off        int
	}{
		{1, 1, 1, 0},
		{2, 1, 2, 1},
		{3, 1, 3, 2},
		{4, 1, 4, 3},
		{5, 2, 1, 4},
		{6, 2, 2, 5},
		{7, 3, 1, 6},
		{8, 3, 2, 7},
		{9, 3, 3, 8},
		{10, 4, 1, 9},
		{11, 4, 2, 10}, // EOF
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d", c.pos), func(t *testing.T) {
			pos := f.Position(c.pos)
			if pos.Line != c.line || pos.Column != c.col || pos.Offset != c.off {
				t.Errorf("want %d:%d (offset %d), got %d:%d (offset %d)",
					c.line, c.col, c.off, pos.Line, pos.Column, pos.Offset)
			}
		})
	}

	if pos := f.Position(NoPos); pos.IsValid() {
		t.Errorf("want invalid position for NoPos, got %v", pos)
	}
}

func TestFileSetFile(t *testing.T) {
	fset := NewFileSet()
	f0 := fset.AddFile("a", -1, 5)
	f1 := fset.AddFile("b", -1, 3)

	cases := []struct {
		pos  Pos
		want *File
	}{
		{NoPos, nil},
		{1, f0},
		{6, f0}, // EOF of a
		{7, f1},
		{10, f1}, // EOF of b
		{11, nil},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d", c.pos), func(t *testing.T) {
			if got := fset.File(c.pos); got != c.want {
				t.Errorf("want %v, got %v", c.want, got)
			}
		})
	}
}

func TestFormatPos(t *testing.T) {
	fset := NewFileSet()
	f0 := fset.AddFile("test", -1, 10)
	f1 := fset.AddFile("test_next", -1, 10)

	cases := []struct {
		pos  Pos
		mode PosMode
		file *File
		want string
	}{
		{NoPos, PosLong, f0, "test:-:-"},
		{NoPos, PosOffsets, f0, "-"},
		{NoPos, PosRaw, f0, "0"},
		{NoPos, PosNone, f0, ""},
		{1, PosLong, f0, "test:1:1"},
		{1, PosOffsets, f0, "0"},
		{1, PosRaw, f0, "1"},
		{1, PosNone, f0, ""},
		{2, PosLong, f0, "test:1:2"},
		{2, PosOffsets, f0, "1"},
		{11, PosLong, f0, "test:1:11"},
		{11, PosOffsets, f0, "10"},
		{11, PosRaw, f0, "11"},
		{12, PosLong, f1, "test_next:1:1"},
		{12, PosOffsets, f1, "0"},
		{12, PosRaw, f1, "12"},
		{12, PosNone, f1, ""},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s-%d", c.mode, c.pos), func(t *testing.T) {
			if got := FormatPos(c.mode, c.file, c.pos, true); got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}

	// without the filename, the long mode keeps the leading colon
	if got := FormatPos(PosLong, f0, 1, false); got != ":1:1" {
		t.Errorf("want %q, got %q", ":1:1", got)
	}
	if got := FormatPos(PosLong, f0, NoPos, false); got != ":-:-" {
		t.Errorf("want %q, got %q", ":-:-", got)
	}
}
