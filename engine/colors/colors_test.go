package colors

import (
	"image/color"
	"testing"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHueWheelSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.colors")
	defer teardown()
	//
	w := HueWheel(HSL, 0, 1, 0.6, 1, 70)
	first := w.Next()
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x33, B: 0x33, A: 0xff}, first, "base color is hsl(0 100% 60%)")
	for k := 1; k < 12; k++ {
		assert.InDelta(t, float64((k*70)%360), w.HueAt(k), 1e-9)
	}
	ref := HueWheel(HSL, 0, 1, 0.6, 1, 70)
	for k := 0; k < 12; k++ {
		c := ref.Next()
		expected := HueWheel(HSL, float64((k*70)%360), 1, 0.6, 1, 0).Next()
		assert.Equal(t, expected, c, "color #%d", k)
	}
}

func TestHueWheelRestart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.colors")
	defer teardown()
	//
	w := HueWheel(LCH, 0, 70, 60, 0.5, 95)
	a := []color.NRGBA{w.Next(), w.Next(), w.Next()}
	w.Restart()
	b := []color.NRGBA{w.Next(), w.Next(), w.Next()}
	assert.Equal(t, a, b)
	assert.NotEqual(t, a[0], a[1])
	assert.Equal(t, uint8(128), a[0].A, "glass colors are translucent")
}

func TestPalette(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.colors")
	defer teardown()
	//
	red, green := color.NRGBA{R: 0xff, A: 0xff}, color.NRGBA{G: 0xff, A: 0xff}
	p := Palette(red, green)
	assert.Equal(t, []color.NRGBA{red, green, red, green, red},
		[]color.NRGBA{p.Next(), p.Next(), p.Next(), p.Next(), p.Next()})
	p.Restart()
	assert.Equal(t, red, p.Next())
	//
	empty := Palette()
	assert.Equal(t, color.NRGBA{}, empty.Next())
	//
	u := Uniform(green)
	assert.Equal(t, green, u.Next())
	assert.Equal(t, green, u.Next())
}

func TestCatalogLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.colors")
	defer teardown()
	//
	cat, err := StandardCatalog(nil)
	require.NoError(t, err)
	for name, expected := range map[string]string{
		"Default": "Default",
		"black":   "Black",
		"pa":      "Pastel",
		"PRIM":    "Primaries",
		"r":       "Rainbow",
		" glass ": "Glass",
	} {
		entry, err := cat.Lookup(name)
		if assert.NoError(t, err, name) {
			assert.Equal(t, expected, entry.Name)
		}
	}
	_, err = cat.Lookup("p")
	assert.Equal(t, core.EINVALID, core.Code(err), "'p' is ambiguous")
	_, err = cat.Lookup("mauve")
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = cat.Lookup("custom")
	assert.Error(t, err, "no custom palette configured")
	assert.Len(t, cat.Entries(), 6)
}

func TestCatalogStrategiesAreFresh(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.colors")
	defer teardown()
	//
	cat, err := StandardCatalog(nil)
	require.NoError(t, err)
	s1, err := cat.Strategy("default")
	require.NoError(t, err)
	s1.Next()
	s1.Next()
	s2, _ := cat.Strategy("default")
	assert.Equal(t, Default().Next(), s2.Next(), "expected a strategy in its initial state")
	black, _ := cat.Strategy("black")
	assert.Equal(t, color.NRGBA{A: 0xff}, black.Next())
}

func TestCustomPalette(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.colors")
	defer teardown()
	//
	conf := testconfig.Conf{
		"lettermath.palette": "#ff0000, #00ff00,#00f",
	}
	cat, err := StandardCatalog(conf)
	require.NoError(t, err)
	s, err := cat.Strategy("cust")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, s.Next())
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, s.Next())
	assert.Equal(t, color.NRGBA{B: 0xff, A: 0xff}, s.Next())
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, s.Next())
	//
	conf["lettermath.palette"] = "#ff0000, chartreuse"
	_, err = StandardCatalog(conf)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
