package sfntshaper

import (
	"strings"
	"testing"

	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/lettermath/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

func TestShapeMonospace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.glyphs")
	defer teardown()
	//
	mono, ok := font.PackagedFont("go mono", xfont.StyleNormal, xfont.WeightNormal)
	require.True(t, ok)
	tc, err := mono.PrepareCase(40)
	require.NoError(t, err)
	seq, err := Shaper().Shape(strings.NewReader("iWm"), nil, nil, glyphing.Params{Font: tc})
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, 3)
	for i, g := range seq.Glyphs {
		assert.Equal(t, i, g.ClusterID)
		assert.NotZero(t, g.GID)
		assert.InDelta(t, seq.Glyphs[0].XAdvance, g.XAdvance, 1e-9, "monospace font")
	}
	assert.InDelta(t, 3*seq.Glyphs[0].XAdvance, seq.W, 1e-9)
	assert.Equal(t, 'W', seq.Glyphs[1].CodePoint)
}

func TestShapeEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.glyphs")
	defer teardown()
	//
	tc, err := font.FallbackFont().PrepareCase(40)
	require.NoError(t, err)
	seq, err := Shaper().Shape(strings.NewReader(""), nil, nil, glyphing.Params{Font: tc})
	require.NoError(t, err)
	assert.Empty(t, seq.Glyphs)
	assert.Zero(t, seq.W)
	seq, err = Shaper().Shape(nil, nil, nil, glyphing.Params{Font: tc})
	assert.NoError(t, err)
	assert.Empty(t, seq.Glyphs)
}
