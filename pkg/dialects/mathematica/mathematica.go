// Package mathematica provides the built-in symbolic input dialect.
package mathematica

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialect"
)

var (
	capitalEscape = regexp.MustCompile(`\\\[Capital(\w+)\]`)
	plainEscape   = regexp.MustCompile(`\\\[(\w+)\]`)
)

// Mathematica is the symbolic dialect. Function calls use square brackets
// with capitalized names, array indexing uses doubled brackets, and the
// assignment rule also accepts := and ==. Accepting == as an assignment
// spelling is inherited from the original rule database; the formatter
// always emits the canonical =.
var Mathematica = &dialect.Dialect{
	Name: "mathematica",

	LPar: "(",
	RPar: ")",

	FuncLPar:  "[",
	FuncDelim: ", ",
	FuncRPar:  "]",

	ArrayLPar:  "[[",
	ArrayDelim: ",",
	ArrayRPar:  "]]",

	Assign: []string{"=", ":=", "=="},
	Power:  "^",

	Operators: map[string]string{
		core.OpPow: "^",
		core.OpNeg: "-",

		"sign":              "Sign",
		"sin":               "Sin",
		"cos":               "Cos",
		"tan":               "Tan",
		"arcsin":            "ArcSin",
		"arccos":            "ArcCos",
		"arctan":            "ArcTan",
		"sinh":              "Sinh",
		"cosh":              "Cosh",
		"tanh":              "Tanh",
		"coth":              "Coth",
		"exp":               "Exp",
		"ln":                "Log",
		"sqrt":              "Sqrt",
		"trunc":             "Trunc",
		"sphericalharmonic": "SphericalHarmonicY",
		"expintegrale":      "ExpIntegralE",
		"gamma":             "Gamma",
	},

	Replacements: map[string]string{
		core.ConstPi: "Pi",
		core.ConstE:  "E",
	},

	Constants: map[string]string{
		"Pi": core.ConstPi,
		"E":  core.ConstE,
	},

	PreProcess: preprocess,
}

// preprocess unwraps Mathematica symbol escapes: \[CapitalXxx] becomes Xxx
// and \[Name] becomes name.
func preprocess(s string) string {
	s = capitalEscape.ReplaceAllString(s, "$1")
	s = plainEscape.ReplaceAllStringFunc(s, func(m string) string {
		inner := plainEscape.FindStringSubmatch(m)[1]
		return strings.ToLower(inner)
	})
	return s
}

func init() {
	dialect.Register(Mathematica)
}
