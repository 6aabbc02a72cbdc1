// Much of the error handling in this package is adapted from the Go source
// code: https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/errors.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"fmt"
	"io"
	"sort"

	"github.com/reedlang/reed/lang/token"
)

// Error represents a single diagnostic with the position where it occurred.
type Error struct {
	Pos token.Position
	Msg string
}

// Error implements the error interface, rendering the position followed by
// the message.
func (e Error) Error() string {
	if e.Pos.Filename != "" || e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// ErrorList is a list of Errors. The zero value is ready to use.
type ErrorList []*Error

// Add appends an Error with the provided position and message to the list.
func (l *ErrorList) Add(pos token.Position, msg string) {
	*l = append(*l, &Error{Pos: pos, Msg: msg})
}

// Reset removes all errors from the list.
func (l *ErrorList) Reset() { *l = (*l)[0:0] }

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	e, f := l[i].Pos, l[j].Pos
	if e.Filename != f.Filename {
		return e.Filename < f.Filename
	}
	if e.Offset != f.Offset {
		return e.Offset < f.Offset
	}
	return l[i].Msg < l[j].Msg
}

// Sort sorts the list by position, and by message within the same position.
func (l ErrorList) Sort() { sort.Sort(l) }

// Err returns an error equivalent to this error list, or nil if the list is
// empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error implements the error interface, rendering the first error along with
// the count of remaining ones.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Unwrap returns the errors in the list as a slice of error values.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// PrintError prints err to w, one error per line if err is an ErrorList.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintf(w, "%s\n", e)
		}
	} else if err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
}
