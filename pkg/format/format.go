// Package format renders expression trees back to surface text.
package format

import (
	"strings"

	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialect"
)

// Render formats a single tree in the given dialect. The outermost grouping
// parentheses are stripped so top-level expressions are not redundantly
// wrapped.
func Render(d *dialect.Dialect, e core.Expr) (string, error) {
	p := &printer{d: d}
	s, err := p.expr(e)
	if err != nil {
		return "", err
	}
	return p.stripPar(s), nil
}

// RenderProgram formats a program, joining statements with the dialect's
// end-of-line terminator.
func RenderProgram(d *dialect.Dialect, prog core.Program) (string, error) {
	lines := make([]string, len(prog))
	for i, e := range prog {
		s, err := Render(d, e)
		if err != nil {
			return "", err
		}
		lines[i] = s
	}
	return strings.Join(lines, d.Eol()), nil
}

// InternalError marks a malformed tree handed to the formatter.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}
