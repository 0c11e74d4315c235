package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.core")
	defer teardown()
	//
	for input, px := range map[string]float64{
		"12px":   12,
		"12":     12,
		"12PX":   12,
		"12.5px": 12.5,
		".5":     0.5,
		"0":      0,
		"72pt":   71.73,
		"72bp":   72,
		"1in":    72,
		"2.54cm": 72,
		"25.4mm": 72,
	} {
		d, err := ParseSize(input)
		require.NoError(t, err, input)
		assert.InDelta(t, px, d.Pixels(), 0.01, input)
	}
}

func TestParseSizeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.core")
	defer teardown()
	//
	for _, input := range []string{"", "px", "-12px", "+12px", "20%", "12furlong", "12em", "1e3", "40000px"} {
		_, err := ParseSize(input)
		assert.Error(t, err, input)
	}
	d, _ := ParseSize("60px")
	assert.Equal(t, "60px", d.String())
}
