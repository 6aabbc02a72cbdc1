package scanner

import (
	"os"

	"github.com/reedlang/reed/lang/token"
)

// TokenAndValue pairs a scanned token with its value.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles is a helper function that tokenizes the source files and returns
// the fileset and the list of tokens, grouped by the file at the same index,
// along with any error encountered. The error, if non-nil, is guaranteed to
// be an ErrorList. A file that fails to read has a nil entry in the returned
// slice.
func ScanFiles(files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		errs   ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, name := range files {
		b, err := os.ReadFile(name)
		if err != nil {
			errs.Add(token.Position{Filename: name}, err.Error())
			continue
		}

		f := fs.AddFile(name, -1, len(b))
		s.Init(f, b, errs.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{
				Token: tok,
				Value: tokVal,
			})
			if tok == token.EOF {
				break
			}
		}
	}
	return fs, tokensByFile, errs.Err()
}
