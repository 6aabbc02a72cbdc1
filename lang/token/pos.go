package token

import (
	"fmt"
	"sort"
)

// Pos is a compact encoding of a source position within a file set: 1-based,
// so that the zero value means "no position". To obtain the file, line and
// column for a Pos, the FileSet (or File) it was created from is required.
type Pos int

// NoPos is the zero value for Pos, meaning no position information.
const NoPos Pos = 0

// IsValid returns true if the position carries information.
func (p Pos) IsValid() bool { return p != NoPos }

// Position is an expanded source position, valid if Line > 0.
type Position struct {
	Filename string
	Offset   int // byte offset in the file, 0-based
	Line     int // 1-based
	Column   int // 1-based, in bytes
}

// IsValid returns true if the position carries line information.
func (pos Position) IsValid() bool { return pos.Line > 0 }

// String returns the position in "file:line:column" form, degrading
// gracefully when parts are missing.
func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// MakePosition creates a Position for the provided file, offset, line and
// column values.
func MakePosition(filename string, off, line, col int) Position {
	return Position{Filename: filename, Offset: off, Line: line, Column: col}
}

// A File records the name, size and line offsets of a single parsed source,
// so that Pos values can be translated back to offsets and line/column
// locations.
type File struct {
	name  string
	base  int
	size  int
	lines []int // offsets of the first byte of each line, lines[0] == 0
}

// Name returns the file name as registered in the file set.
func (f *File) Name() string { return f.name }

// Base returns the base Pos value of the file.
func (f *File) Base() int { return f.base }

// Size returns the size of the file in bytes.
func (f *File) Size() int { return f.size }

// AddLine registers the byte offset of the first character of a new line.
// Offsets must be added in increasing order.
func (f *File) AddLine(off int) {
	if l := len(f.lines); (l == 0 || f.lines[l-1] < off) && off <= f.size {
		f.lines = append(f.lines, off)
	}
}

// Pos returns the Pos value for the provided 0-based byte offset in f.
func (f *File) Pos(off int) Pos { return Pos(f.base + off) }

// Offset returns the 0-based byte offset of p in f. The Pos one past the last
// byte (EOF) is valid.
func (f *File) Offset(p Pos) int {
	off := int(p) - f.base
	if off < 0 {
		off = 0
	} else if off > f.size {
		off = f.size
	}
	return off
}

// Position expands p to a full Position in f.
func (f *File) Position(p Pos) Position {
	if !p.IsValid() {
		return Position{Filename: f.name}
	}
	off := f.Offset(p)
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > off }) - 1
	line, col := 1, off+1
	if i >= 0 {
		line, col = i+1, off-f.lines[i]+1
	}
	return Position{Filename: f.name, Offset: off, Line: line, Column: col}
}

// A FileSet allocates disjoint Pos ranges to a set of files, so that a single
// Pos value identifies both the file and the location inside it.
type FileSet struct {
	base  int
	files []*File
}

// NewFileSet creates a new, empty file set.
func NewFileSet() *FileSet {
	return &FileSet{base: 1} // 0 is NoPos
}

// AddFile adds a file of the specified size to the file set, reserving
// size+1 Pos values (the extra one for EOF). If base < 0, the next available
// base is used; otherwise base must be at least the file set's current base.
func (fs *FileSet) AddFile(name string, base, size int) *File {
	if base < 0 {
		base = fs.base
	}
	if base < fs.base || size < 0 {
		panic(fmt.Sprintf("invalid base %d or size %d for file %s", base, size, name))
	}
	f := &File{name: name, base: base, size: size, lines: []int{0}}
	fs.base = base + size + 1
	fs.files = append(fs.files, f)
	return f
}

// File returns the file containing p, or nil if no such file exists in the
// set.
func (fs *FileSet) File(p Pos) *File {
	i := sort.Search(len(fs.files), func(i int) bool { return fs.files[i].base > int(p) }) - 1
	if i < 0 {
		return nil
	}
	if f := fs.files[i]; int(p) <= f.base+f.size {
		return f
	}
	return nil
}

// Position expands p to a full Position, looking up the file in the set. It
// returns an invalid Position if p is not in the set.
func (fs *FileSet) Position(p Pos) Position {
	if f := fs.File(p); f != nil {
		return f.Position(p)
	}
	return Position{}
}

// PosMode indicates how positions are rendered by FormatPos.
type PosMode int

// List of supported position printing modes.
const (
	PosNone    PosMode = iota // no position printed
	PosLong                   // file:line:column
	PosOffsets                // byte offset in file
	PosRaw                    // raw Pos integer value
)

func (m PosMode) String() string {
	switch m {
	case PosNone:
		return "none"
	case PosLong:
		return "long"
	case PosOffsets:
		return "offsets"
	case PosRaw:
		return "raw"
	default:
		return fmt.Sprintf("<invalid PosMode %d>", int(m))
	}
}

// FormatPos renders p according to mode, using file to translate the value.
// If withFilename is false, the PosLong mode omits the file name.
func FormatPos(mode PosMode, file *File, p Pos, withFilename bool) string {
	switch mode {
	case PosLong:
		if !p.IsValid() {
			name := ""
			if withFilename && file != nil {
				name = file.name
			}
			return name + ":-:-"
		}
		pos := file.Position(p)
		if !withFilename {
			pos.Filename = ""
			return ":" + pos.String()
		}
		return pos.String()

	case PosOffsets:
		if !p.IsValid() {
			return "-"
		}
		return fmt.Sprintf("%d", file.Offset(p))

	case PosRaw:
		return fmt.Sprintf("%d", int(p))

	default:
		return ""
	}
}
