// Package translate bundles parsing and formatting into one-call dialect
// conversions.
package translate

import (
	"strings"

	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialect"
	"github.com/leapstack-labs/formulate/pkg/format"
	"github.com/leapstack-labs/formulate/pkg/optimize"
	"github.com/leapstack-labs/formulate/pkg/parser"
)

// Options controls multi-line translation.
type Options struct {
	// Optimize enables the common-subexpression elimination pass.
	Optimize bool
	// Costs overrides the optimizer's cost model; nil selects the defaults.
	Costs *optimize.CostModel
}

// Line translates a single formula from one dialect to another. Physical
// lines are joined with spaces first, and empty input translates to the
// empty string.
func Line(input string, src, dst *dialect.Dialect) (string, error) {
	input = strings.Join(strings.Split(input, "\n"), " ")

	p, err := parser.New(src)
	if err != nil {
		return "", err
	}
	tree, err := p.ParseString(input)
	if err != nil {
		return "", err
	}
	if tree == nil {
		return "", nil
	}
	return format.Render(dst, tree)
}

// Text translates a block of formulas, one per non-empty line, optionally
// running the optimizer over the whole program.
func Text(input string, src, dst *dialect.Dialect, opts Options) (string, error) {
	prog, err := Parse(input, src)
	if err != nil {
		return "", err
	}
	if opts.Optimize {
		prog = optimize.New(opts.Costs).Optimize(prog)
	}
	return format.RenderProgram(dst, prog)
}

// Parse parses a block of formulas without rendering, for callers that
// want to inspect or optimize the program themselves.
func Parse(input string, src *dialect.Dialect) (core.Program, error) {
	tp, err := parser.NewTextParser(src)
	if err != nil {
		return nil, err
	}
	return tp.ParseText(input)
}
