package parser

import (
	"fmt"

	"github.com/leapstack-labs/formulate/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos.Offset, e.Message)
}

// InternalError marks an invariant violation during reassembly. It is
// unreachable on input that passed recognition.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Message)
}

// Common error messages
const (
	errUnexpectedToken = "unexpected token %s"
	errExpectedToken   = "expected %q, found %s"
	errUnexpectedByte  = "unexpected character %q"
	errIntegerIndex    = "array index must be an integer literal"
	errTrailingInput   = "unexpected trailing input after expression"
)
