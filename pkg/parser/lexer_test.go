package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formulate/pkg/dialects/mathematica"
	"github.com/leapstack-labs/formulate/pkg/dialects/python"
	"github.com/leapstack-labs/formulate/pkg/token"
)

func TestLexer_Mathematica(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{
			name:  "function call with constant",
			input: "Sin[Pi/2]",
			expected: []token.Token{
				{Type: token.IDENT, Literal: "Sin"},
				{Type: token.PUNCT, Literal: "["},
				{Type: token.CONST, Literal: "PI"},
				{Type: token.SLASH, Literal: "/"},
				{Type: token.INT, Literal: "2"},
				{Type: token.PUNCT, Literal: "]"},
				{Type: token.EOF},
			},
		},
		{
			name:  "doubled array brackets win over single",
			input: "C[[1,2]]",
			expected: []token.Token{
				{Type: token.IDENT, Literal: "C"},
				{Type: token.PUNCT, Literal: "[["},
				{Type: token.INT, Literal: "1"},
				{Type: token.PUNCT, Literal: ","},
				{Type: token.INT, Literal: "2"},
				{Type: token.PUNCT, Literal: "]]"},
				{Type: token.EOF},
			},
		},
		{
			name:  "assignment spellings",
			input: "a := b == c",
			expected: []token.Token{
				{Type: token.IDENT, Literal: "a"},
				{Type: token.ASSIGN, Literal: ":="},
				{Type: token.IDENT, Literal: "b"},
				{Type: token.EQ, Literal: "=="},
				{Type: token.IDENT, Literal: "c"},
				{Type: token.EOF},
			},
		},
		{
			name:  "real literals",
			input: "3. 6.02E23 2e3 1.5e-7",
			expected: []token.Token{
				{Type: token.REAL, Literal: "3."},
				{Type: token.REAL, Literal: "6.02E23"},
				{Type: token.REAL, Literal: "2e3"},
				{Type: token.REAL, Literal: "1.5e-7"},
				{Type: token.EOF},
			},
		},
		{
			name:  "number then identifier",
			input: "2 Ex",
			expected: []token.Token{
				{Type: token.INT, Literal: "2"},
				{Type: token.IDENT, Literal: "Ex"},
				{Type: token.EOF},
			},
		},
		{
			name:  "constant keyword is not a prefix match",
			input: "Piece",
			expected: []token.Token{
				{Type: token.IDENT, Literal: "Piece"},
				{Type: token.EOF},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexAll(tt.input, mathematica.Mathematica)
			require.NoError(t, err)
			require.Len(t, toks, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want.Type, toks[i].Type, "token %d", i)
				assert.Equal(t, want.Literal, toks[i].Literal, "token %d", i)
			}
		})
	}
}

func TestLexer_Python(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{
			name:  "double star power",
			input: "2**3",
			expected: []token.Token{
				{Type: token.INT, Literal: "2"},
				{Type: token.CARET, Literal: "**"},
				{Type: token.INT, Literal: "3"},
				{Type: token.EOF},
			},
		},
		{
			name:  "dotted constants",
			input: "np.pi*np.e",
			expected: []token.Token{
				{Type: token.CONST, Literal: "PI"},
				{Type: token.STAR, Literal: "*"},
				{Type: token.CONST, Literal: "E"},
				{Type: token.EOF},
			},
		},
		{
			name:  "dotted function surface",
			input: "np.sin(x)",
			expected: []token.Token{
				{Type: token.IDENT, Literal: "np.sin"},
				{Type: token.PUNCT, Literal: "("},
				{Type: token.IDENT, Literal: "x"},
				{Type: token.PUNCT, Literal: ")"},
				{Type: token.EOF},
			},
		},
		{
			name:  "call and index brackets",
			input: "sin(x) + A[1]",
			expected: []token.Token{
				{Type: token.IDENT, Literal: "sin"},
				{Type: token.PUNCT, Literal: "("},
				{Type: token.IDENT, Literal: "x"},
				{Type: token.PUNCT, Literal: ")"},
				{Type: token.PLUS, Literal: "+"},
				{Type: token.IDENT, Literal: "A"},
				{Type: token.PUNCT, Literal: "["},
				{Type: token.INT, Literal: "1"},
				{Type: token.PUNCT, Literal: "]"},
				{Type: token.EOF},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexAll(tt.input, python.Python)
			require.NoError(t, err)
			require.Len(t, toks, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want.Type, toks[i].Type, "token %d", i)
				assert.Equal(t, want.Literal, toks[i].Literal, "token %d", i)
			}
		})
	}
}

func TestLexer_IllegalByte(t *testing.T) {
	_, err := lexAll("9 + @", mathematica.Mathematica)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Pos.Offset)
	assert.Contains(t, err.Error(), "parse error at offset 4")
}
