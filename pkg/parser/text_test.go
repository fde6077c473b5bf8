package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialects/python"
)

func TestTextParser_SkipsBlankLines(t *testing.T) {
	tp, err := NewTextParser(python.Python)
	require.NoError(t, err)

	prog, err := tp.ParseText("a = 1\n\n   \n\t\nb = 2\n")
	require.NoError(t, err)
	require.Len(t, prog, 2)

	first, ok := prog[0].(*core.Infix)
	require.True(t, ok)
	assert.Equal(t, core.OpAssign, first.Op)
	assert.True(t, core.Equal(core.Ident("a"), first.Left))

	second, ok := prog[1].(*core.Infix)
	require.True(t, ok)
	assert.True(t, core.Equal(core.Ident("b"), second.Left))
}

func TestTextParser_EmptyInput(t *testing.T) {
	tp, err := NewTextParser(python.Python)
	require.NoError(t, err)

	prog, err := tp.ParseText("\n  \n")
	require.NoError(t, err)
	assert.Empty(t, prog)
}

func TestTextParser_ErrorCarriesOffset(t *testing.T) {
	tp, err := NewTextParser(python.Python)
	require.NoError(t, err)

	_, err = tp.ParseText("a = 1\nb = +\n")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "parse error at offset")
}
