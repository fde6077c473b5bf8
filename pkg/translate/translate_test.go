package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formulate/pkg/dialects/mathematica"
	"github.com/leapstack-labs/formulate/pkg/dialects/python"
	"github.com/leapstack-labs/formulate/pkg/parser"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "function call", input: "Sin[Pi/2]", expected: "np.sin(np.pi / 2)"},
		{name: "power", input: "2^3^2", expected: "2 ** (3 ** 2)"},
		{name: "exponential", input: "E^(3-2)", expected: "np.exp(3 - 2)"},
		{name: "array assignment", input: "C[[1,2]] = r + 4", expected: "C[1,2] = r + 4"},
		{name: "physical lines are joined", input: "9 +\n3", expected: "9 + 3"},
		{name: "empty input", input: "", expected: ""},
		{name: "symbol escapes", input: `\[Alpha] + \[CapitalGamma]`, expected: "alpha + Gamma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Line(tt.input, mathematica.Mathematica, python.Python)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLine_ParseError(t *testing.T) {
	_, err := Line("9 +", mathematica.Mathematica, python.Python)
	require.Error(t, err)

	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestText(t *testing.T) {
	input := "a = sin(x)\nb = sin(x)\n"

	plain, err := Text(input, python.Python, python.Python, Options{})
	require.NoError(t, err)
	assert.Equal(t, "a = np.sin(x)\nb = np.sin(x)", plain)

	optimized, err := Text(input, python.Python, python.Python, Options{Optimize: true})
	require.NoError(t, err)
	assert.Equal(t, "t_0 = np.sin(x)\na = t_0\nb = t_0", optimized)
}

func TestText_MathematicaSource(t *testing.T) {
	input := "a = Sin[x]\nb = Sin[x] + 1\n"

	out, err := Text(input, mathematica.Mathematica, python.Python, Options{Optimize: true})
	require.NoError(t, err)
	assert.Equal(t, "t_0 = np.sin(x)\na = t_0\nb = t_0 + 1", out)
}
