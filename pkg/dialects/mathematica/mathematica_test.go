package mathematica

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formulate/pkg/dialect"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "capital escape keeps case", input: `\[CapitalGamma]`, expected: "Gamma"},
		{name: "plain escape is lowered", input: `\[Alpha]`, expected: "alpha"},
		{name: "mixed", input: `\[CapitalDelta] + \[Rho]^2`, expected: "Delta + rho^2"},
		{name: "no escapes", input: "Sin[x]", expected: "Sin[x]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mathematica.Preprocess(tt.input))
		})
	}
}

func TestRegistered(t *testing.T) {
	d, ok := dialect.Get("mathematica")
	require.True(t, ok)
	assert.Same(t, Mathematica, d)
	require.NoError(t, d.Validate())
}
