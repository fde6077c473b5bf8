package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialects/mathematica"
	"github.com/leapstack-labs/formulate/pkg/dialects/python"
)

func parseMathematica(t *testing.T, input string) core.Expr {
	t.Helper()
	p, err := New(mathematica.Mathematica)
	require.NoError(t, err)
	tree, err := p.ParseString(input)
	require.NoError(t, err)
	return tree
}

func TestParser_TreeShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected core.Expr
	}{
		{
			name:     "plain number",
			input:    "9",
			expected: &core.Atom{Kind: core.AtomInt, Value: "9"},
		},
		{
			name:  "left-associative addition",
			input: "9 + 3 + 6",
			expected: &core.Infix{Op: core.OpAdd,
				Left: &core.Infix{Op: core.OpAdd,
					Left:  &core.Atom{Kind: core.AtomInt, Value: "9"},
					Right: &core.Atom{Kind: core.AtomInt, Value: "3"}},
				Right: &core.Atom{Kind: core.AtomInt, Value: "6"}},
		},
		{
			name:  "right-associative power",
			input: "2^3^2",
			expected: &core.Infix{Op: core.OpPow,
				Left: &core.Atom{Kind: core.AtomInt, Value: "2"},
				Right: &core.Infix{Op: core.OpPow,
					Left:  &core.Atom{Kind: core.AtomInt, Value: "3"},
					Right: &core.Atom{Kind: core.AtomInt, Value: "2"}}},
		},
		{
			name:  "unary minus doubles",
			input: "--x",
			expected: &core.Prefix{Op: core.OpNeg,
				Arg: &core.Prefix{Op: core.OpNeg,
					Arg: &core.Atom{Kind: core.AtomIdent, Value: "x"}}},
		},
		{
			name:  "exponential collapse",
			input: "E^(3-2)",
			expected: &core.Prefix{Op: core.OpExp,
				Arg: &core.Infix{Op: core.OpSub,
					Left:  &core.Atom{Kind: core.AtomInt, Value: "3"},
					Right: &core.Atom{Kind: core.AtomInt, Value: "2"}}},
		},
		{
			name:  "function name is canonicalized",
			input: "Sin[Pi]",
			expected: &core.Call{Name: "sin",
				Args: []core.Expr{&core.Atom{Kind: core.AtomConst, Value: core.ConstPi}}},
		},
		{
			name:  "nested calls split the doubled closing bracket",
			input: "Sin[Cos[x]]",
			expected: &core.Call{Name: "sin",
				Args: []core.Expr{&core.Call{Name: "cos",
					Args: []core.Expr{&core.Atom{Kind: core.AtomIdent, Value: "x"}}}}},
		},
		{
			name:  "array assignment",
			input: "C[[1,2]] = r + 4",
			expected: &core.Infix{Op: core.OpAssign,
				Left: &core.Index{Name: "C", Args: []core.Expr{
					&core.Atom{Kind: core.AtomInt, Value: "1"},
					&core.Atom{Kind: core.AtomInt, Value: "2"}}},
				Right: &core.Infix{Op: core.OpAdd,
					Left:  &core.Atom{Kind: core.AtomIdent, Value: "r"},
					Right: &core.Atom{Kind: core.AtomInt, Value: "4"}}},
		},
		{
			name:  "double equals is accepted as assignment",
			input: "a == b",
			expected: &core.Infix{Op: core.OpAssign,
				Left:  &core.Atom{Kind: core.AtomIdent, Value: "a"},
				Right: &core.Atom{Kind: core.AtomIdent, Value: "b"}},
		},
		{
			name:  "comparison when the left side is no lvalue",
			input: "a + 1 == b",
			expected: &core.Infix{Op: core.OpEqual,
				Left: &core.Infix{Op: core.OpAdd,
					Left:  &core.Atom{Kind: core.AtomIdent, Value: "a"},
					Right: &core.Atom{Kind: core.AtomInt, Value: "1"}},
				Right: &core.Atom{Kind: core.AtomIdent, Value: "b"}},
		},
		{
			name:  "delayed assignment spelling",
			input: "f := x + 1",
			expected: &core.Infix{Op: core.OpAssign,
				Left: &core.Atom{Kind: core.AtomIdent, Value: "f"},
				Right: &core.Infix{Op: core.OpAdd,
					Left:  &core.Atom{Kind: core.AtomIdent, Value: "x"},
					Right: &core.Atom{Kind: core.AtomInt, Value: "1"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseMathematica(t, tt.input)
			assert.True(t, core.Equal(tt.expected, tree), "got %#v", tree)
		})
	}
}

func TestParser_PythonInput(t *testing.T) {
	p, err := New(python.Python)
	require.NoError(t, err)

	tree, err := p.ParseString("np.e**np.pi")
	require.NoError(t, err)
	expected := &core.Prefix{Op: core.OpExp,
		Arg: &core.Atom{Kind: core.AtomConst, Value: core.ConstPi}}
	assert.True(t, core.Equal(expected, tree), "got %#v", tree)

	tree, err = p.ParseString("sin(x)**2")
	require.NoError(t, err)
	pow, ok := tree.(*core.Infix)
	require.True(t, ok)
	assert.Equal(t, core.OpPow, pow.Op)
}

func TestParser_EmptyInput(t *testing.T) {
	p, err := New(mathematica.Mathematica)
	require.NoError(t, err)

	for _, input := range []string{"", "   ", "\t"} {
		tree, err := p.ParseString(input)
		require.NoError(t, err)
		assert.Nil(t, tree)
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "dangling operator", input: "9 +"},
		{name: "only operators", input: "+ *"},
		{name: "unbalanced parenthesis", input: "(9 + 3"},
		{name: "array index must be integer", input: "C[[x]]"},
		{name: "trailing input", input: "9 9"},
		{name: "illegal character", input: "9 ?"},
	}

	p, err := New(mathematica.Mathematica)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseString(tt.input)
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, err.Error(), "parse error at offset")
		})
	}
}

// The parser keeps mutable state between calls; a failed parse must not
// poison the next one.
func TestParser_Reuse(t *testing.T) {
	p, err := New(mathematica.Mathematica)
	require.NoError(t, err)

	_, err = p.ParseString("9 +")
	require.Error(t, err)

	tree, err := p.ParseString("9 + 3")
	require.NoError(t, err)
	require.IsType(t, &core.Infix{}, tree)
}
