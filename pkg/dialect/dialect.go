// Package dialect provides the surface-syntax configuration shared by the
// parser and the formatter.
//
// A Dialect is a value object: bracket spellings, accepted assignment forms,
// operator and constant tables, and atom formatting. Concrete dialects are
// registered from pkg/dialects/* packages; no component matches on dialect
// identity.
package dialect

import (
	"github.com/leapstack-labs/formulate/pkg/core"
)

// Dialect describes one surface syntax for parsing and formatting.
type Dialect struct {
	Name string

	// Grouping brackets.
	LPar string
	RPar string

	// Function-call delimiters.
	FuncLPar  string
	FuncDelim string
	FuncRPar  string

	// Array-indexing delimiters.
	ArrayLPar  string
	ArrayDelim string
	ArrayRPar  string

	// Assign lists the accepted assignment spellings. The parser accepts any
	// of them; the formatter emits the first.
	Assign []string

	// Power is the surface spelling of the power operator.
	Power string

	// EOL terminates statements when rendering programs.
	EOL string

	// Operators maps canonical operator identifiers to surface spellings.
	// Absent entries pass through unchanged.
	Operators map[string]string

	// Replacements maps canonical atom values to surface spellings (e.g.
	// PI -> np.pi). Absent entries pass through unchanged.
	Replacements map[string]string

	// Constants maps surface constant spellings to canonical symbols (e.g.
	// Pi -> PI). The lexer matches dotted spellings (np.pi) before its
	// identifier rules and recognizes identifier-shaped ones (Pi) after
	// reading a whole identifier.
	Constants map[string]string

	// FormatAtom renders an atom; nil falls back to Replacements lookup with
	// passthrough.
	FormatAtom func(*core.Atom) string

	// PreProcess rewrites the input before tokenization; nil is identity.
	PreProcess func(string) string
}

// CanonicalAssign returns the assignment spelling the formatter emits.
func (d *Dialect) CanonicalAssign() string {
	if len(d.Assign) == 0 {
		return "="
	}
	return d.Assign[0]
}

// Eol returns the statement terminator, defaulting to newline.
func (d *Dialect) Eol() string {
	if d.EOL == "" {
		return "\n"
	}
	return d.EOL
}

// Operator returns the surface spelling of a canonical operator.
func (d *Dialect) Operator(op string) string {
	if s, ok := d.Operators[op]; ok {
		return s
	}
	return op
}

// Atom renders an atom in this dialect.
func (d *Dialect) Atom(a *core.Atom) string {
	if d.FormatAtom != nil {
		return d.FormatAtom(a)
	}
	if s, ok := d.Replacements[a.Value]; ok {
		return s
	}
	return a.Value
}

// Preprocess applies the dialect's pre-tokenization rewrites.
func (d *Dialect) Preprocess(s string) string {
	if d.PreProcess != nil {
		return d.PreProcess(s)
	}
	return s
}

// Validate checks the dialect for configurations the grammar cannot
// tokenize unambiguously.
func (d *Dialect) Validate() error {
	switch {
	case d.Name == "":
		return &Error{Message: "dialect has no name"}
	case d.LPar == "" || d.RPar == "":
		return &Error{Dialect: d.Name, Message: "grouping brackets must be non-empty"}
	case d.LPar == d.RPar:
		return &Error{Dialect: d.Name, Message: "left and right grouping brackets must differ"}
	case d.FuncLPar == "" || d.FuncRPar == "":
		return &Error{Dialect: d.Name, Message: "function brackets must be non-empty"}
	case d.FuncLPar == d.FuncRPar:
		return &Error{Dialect: d.Name, Message: "left and right function brackets must differ"}
	case d.ArrayLPar == "" || d.ArrayRPar == "":
		return &Error{Dialect: d.Name, Message: "array brackets must be non-empty"}
	case d.ArrayLPar == d.ArrayRPar:
		return &Error{Dialect: d.Name, Message: "left and right array brackets must differ"}
	case len(d.Assign) == 0:
		return &Error{Dialect: d.Name, Message: "at least one assignment spelling is required"}
	case d.Power == "":
		return &Error{Dialect: d.Name, Message: "power operator spelling is required"}
	}
	return nil
}
