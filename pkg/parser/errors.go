package parser

import (
	"fmt"

	"github.com/leapstack-labs/rowcap/pkg/token"
)

// SyntaxError represents a lexical or parsing error with position information.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected token %s, expected %s"
	ErrUnexpectedInput    = "unexpected token %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrIllegalCharacter   = "illegal character %q"
	ErrConflictingLimit   = "LIMIT and FETCH FIRST cannot both be specified"
	ErrDuplicateClause    = "duplicate %s clause"
)

// ErrorSink retains the first syntax error raised during a parse.
// It is a write-once cell: later records are discarded, making the
// first-error-wins policy an explicit contract rather than a side effect.
// A sink must not be reused across parses.
type ErrorSink struct {
	err *SyntaxError
}

// Record stores an error built from the given position and message.
// Only the first call has any effect.
func (s *ErrorSink) Record(pos token.Position, format string, args ...any) {
	if s.err != nil {
		return
	}
	s.err = &SyntaxError{
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

// HasError returns true if an error has been recorded.
func (s *ErrorSink) HasError() bool {
	return s.err != nil
}

// Err returns the recorded error, or nil if the parse was clean.
func (s *ErrorSink) Err() *SyntaxError {
	return s.err
}
