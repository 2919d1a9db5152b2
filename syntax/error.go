package syntax

import "fmt"

// ParseError is returned by Parse when the input does not match the
// grammar in spec.md §4.2. Start holds the 1-based byte offset where
// parsing failed, so a caller can render a caret under the offending
// text; the parser does not fill in End. Grounded on the teacher's parser
// error values (syntax/parser.go's `parseErr`).
type ParseError struct {
	Filename string
	Start    Pos
	End      Pos
	Text     string
}

func (e *ParseError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%d: %s", e.Filename, e.Start, e.Text)
	}
	return fmt.Sprintf("%d: %s", e.Start, e.Text)
}
