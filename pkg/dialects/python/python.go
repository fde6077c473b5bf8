// Package python provides the built-in numeric output dialect.
//
// Mathematical functions and constants are prefixed with np. for use with
// numpy; expintegrale maps to scipy.special.expn, and sph_harm and gamma
// pass through bare.
package python

import (
	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialect"
)

// Python is the numeric dialect with plain integer literals.
var Python = New(false)

// New returns the numeric dialect. With int2float set, every integer
// literal is rendered with a trailing dot so downstream division is
// floating point.
func New(int2float bool) *dialect.Dialect {
	d := &dialect.Dialect{
		Name: "python",

		LPar: "(",
		RPar: ")",

		FuncLPar:  "(",
		FuncDelim: ", ",
		FuncRPar:  ")",

		ArrayLPar:  "[",
		ArrayDelim: ",",
		ArrayRPar:  "]",

		Assign: []string{"="},
		Power:  "**",

		Operators: map[string]string{
			core.OpPow: "**",
			core.OpNeg: "-",

			"sign":              "np.sign",
			"sin":               "np.sin",
			"cos":               "np.cos",
			"tan":               "np.tan",
			"arcsin":            "np.asin",
			"arccos":            "np.acos",
			"arctan":            "np.atan",
			"sinh":              "np.sinh",
			"cosh":              "np.cosh",
			"tanh":              "np.tanh",
			"exp":               "np.exp",
			"ln":                "np.log",
			"sqrt":              "np.sqrt",
			"trunc":             "np.trunc",
			"sphericalharmonic": "sph_harm",
			"expintegrale":      "scipy.special.expn",
			"gamma":             "gamma",
		},

		Replacements: map[string]string{
			core.ConstPi: "np.pi",
			core.ConstE:  "np.e",
		},

		Constants: map[string]string{
			"np.pi": core.ConstPi,
			"np.e":  core.ConstE,
		},
	}

	if int2float {
		repl := d.Replacements
		d.FormatAtom = func(a *core.Atom) string {
			if a.Kind == core.AtomInt {
				return a.Value + "."
			}
			if s, ok := repl[a.Value]; ok {
				return s
			}
			return a.Value
		}
	}

	return d
}

func init() {
	dialect.Register(Python)
}
