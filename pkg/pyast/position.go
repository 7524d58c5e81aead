package pyast

import "fmt"

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

// IsValid reports whether the position points into a file.
func (p Pos) IsValid() bool {
	return p.Line >= 1 && p.Column >= 1
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SyntaxError reports malformed input. Pos is the zero value when the
// parser could not locate the problem.
type SyntaxError struct {
	Message string
	Pos     Pos
}

func (e *SyntaxError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Pos.Line, e.Pos.Column)
	}
	return e.Message
}
