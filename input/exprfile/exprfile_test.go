package exprfile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/lettermath/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := "\ufeff# header\n\nA + B\n   \n  # indented comment\n  (G - H) || (J ^ H)  \r\nA#B\n"
	lines, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Line{
		{No: 3, Text: "A + B"},
		{No: 6, Text: "(G - H) || (J ^ H)"},
		{No: 7, Text: "A#B"},
	}, lines)
}

func TestReadEmpty(t *testing.T) {
	lines, err := Read(strings.NewReader("# nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadOverlongLine(t *testing.T) {
	input := "A\n" + strings.Repeat("B", MaxLineLength+1) + "\n"
	lines, err := Read(strings.NewReader(input))
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Len(t, lines, 1)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "none.txt"))
	assert.Equal(t, core.EMISSING, core.Code(err))
}
