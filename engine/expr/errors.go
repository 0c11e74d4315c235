package expr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lettermath/core"
)

// SyntaxError is returned by Parse for input which does not match the grammar.
// It refers to the first offending token.
type SyntaxError struct {
	Offset   int      // byte offset of the offending token
	Column   int      // 1-based column, counted in graphemes
	Found    string   // description of the offending token
	Expected []string // what the parser would have accepted
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at column %d: unexpected %s, expected %s",
		e.Column, e.Found, strings.Join(e.Expected, " or "))
}

// ErrorCode is core.ESYNTAX for all syntax errors.
func (e *SyntaxError) ErrorCode() int {
	return core.ESYNTAX
}

// UserMessage returns the error message.
func (e *SyntaxError) UserMessage() string {
	return e.Error()
}

var _ core.AppError = &SyntaxError{}

func unexpected(tok token, expected ...string) *SyntaxError {
	return &SyntaxError{
		Offset:   tok.offset,
		Column:   tok.column,
		Found:    tok.String(),
		Expected: expected,
	}
}
