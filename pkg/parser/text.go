package parser

import (
	"strings"

	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialect"
)

// TextParser parses multi-line programs, one formula per non-empty line.
type TextParser struct {
	line *Parser
}

// NewTextParser creates a text parser bound to a dialect.
func NewTextParser(d *dialect.Dialect) (*TextParser, error) {
	line, err := New(d)
	if err != nil {
		return nil, err
	}
	return &TextParser{line: line}, nil
}

// ParseText splits the input on newlines, skips blank lines, and parses
// each remaining line in order.
func (t *TextParser) ParseText(text string) (core.Program, error) {
	var program core.Program
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		expr, err := t.line.ParseString(line)
		if err != nil {
			return nil, err
		}
		if expr != nil {
			program = append(program, expr)
		}
	}
	return program, nil
}
