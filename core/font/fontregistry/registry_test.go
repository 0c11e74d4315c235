package fontregistry

import (
	"testing"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

type sw struct {
	s xfont.Style
	w xfont.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":               {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                       {xfont.StyleNormal, xfont.WeightNormal},
		"Roboto-Italic.ttf":                      {xfont.StyleItalic, xfont.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		t.Logf("style = %d, weight = %d", style, weight)
		if style != v.s || weight != v.w {
			t.Errorf("expected different style or weight for %s", k)
		}
	}
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	assert.True(t, Matches("fonts/Clarendon-bold.ttf", "clarendon", xfont.StyleNormal, xfont.WeightBold))
	assert.True(t, Matches("Microsoft/Gill Sans MT Bold Italic.ttf", "gill sans", xfont.StyleItalic, xfont.WeightBlack))
	assert.True(t, Matches("Cambria Math.ttf", "cambria", xfont.StyleNormal, xfont.WeightNormal))
	assert.True(t, Matches("/usr/share/fonts/Roboto-Regular.ttf", "Roboto", xfont.StyleNormal, xfont.WeightMedium))
	assert.False(t, Matches("/usr/share/fonts/Roboto-Regular.ttf", "Roboto", xfont.StyleItalic, xfont.WeightNormal))
	assert.False(t, Matches("Cambria Math.ttf", "calibri", xfont.StyleNormal, xfont.WeightNormal))
}

func TestNormalizeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	assert.Equal(t, "clarendon-italic-bold", NormalizeFontname("Clarendon", xfont.StyleItalic, xfont.WeightBold))
	assert.Equal(t, "go_mono", NormalizeFontname(" Go Mono ", xfont.StyleNormal, xfont.WeightMedium))
	assert.Equal(t, "roboto-light", NormalizeFontname("Roboto.ttf", xfont.StyleNormal, xfont.WeightThin))
	assert.Equal(t, "fira.code", NormalizeFontname("Fira.Code", xfont.StyleNormal, xfont.WeightNormal))
}

func TestRegistryFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	fr := NewRegistry()
	tc, err := fr.TypeCase("no-such-font", 64)
	require.NotNil(t, tc, "expected fallback typecase")
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Equal(t, font.FallbackFont(), tc.ScalableFontParent())
	tc2, _ := fr.TypeCase("still-no-such-font", 64)
	assert.Same(t, tc, tc2, "expected fallback typecase to be cached")
}

func TestRegistryStore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	fr := NewRegistry()
	f, ok := font.PackagedFont("go mono", xfont.StyleNormal, xfont.WeightNormal)
	require.True(t, ok)
	name := NormalizeFontname("Go Mono", xfont.StyleNormal, xfont.WeightNormal)
	fr.StoreFont(name, f)
	assert.True(t, fr.HasFont(name))
	tc, err := fr.TypeCase(name, 32)
	require.NoError(t, err)
	assert.Same(t, f, tc.ScalableFontParent())
	again, err := fr.TypeCase(name, 32)
	require.NoError(t, err)
	assert.Same(t, tc, again)
	fr.LogFontList()
}
