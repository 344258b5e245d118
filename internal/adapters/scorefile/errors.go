package scorefile

import (
	"errors"
	"fmt"
)

// Sentinel kinds for scores file errors.
var (
	ErrMissingFile   = errors.New("scores file does not exist")
	ErrParse         = errors.New("cannot parse scores file")
	ErrEmptyLog      = errors.New("scores file has no data rows")
	ErrMissingColumn = errors.New("scores file lacks a required column")
)

// ParseError locates a field that is neither a number nor the missing-value
// token.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }
