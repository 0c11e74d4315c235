package raster

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/engine/expr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
	none = color.RGBA{}
)

func filled(t *testing.T, w, h int, c color.Color) *Bitmap {
	b, err := NewBitmap(w, h)
	require.NoError(t, err)
	draw.Draw(b.Surface(), b.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return b
}

func TestNewBitmap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	b, err := NewBitmap(0, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Width())
	assert.Equal(t, 1, b.Height())
	assert.Equal(t, none, b.At(0, 0))
	_, err = NewBitmap(MaxExtent+1, 10)
	assert.Equal(t, core.ERASTER, core.Code(err))
	assert.Equal(t, 1, Empty().Width())
}

func TestConcat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	a, b := filled(t, 40, 10, red), filled(t, 35, 21, blue)
	out, err := Composite(expr.Concat, a, b)
	require.NoError(t, err)
	assert.Equal(t, 75, out.Width())
	assert.Equal(t, 21, out.Height())
	// a is centered at y = floor((21-10)/2) = 5
	assert.Equal(t, none, out.At(0, 4))
	assert.Equal(t, red, out.At(0, 5))
	assert.Equal(t, red, out.At(39, 14))
	assert.Equal(t, none, out.At(39, 15))
	assert.Equal(t, blue, out.At(40, 0))
	assert.Equal(t, blue, out.At(74, 20))
}

func TestSourceOver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	a, b := filled(t, 10, 10, red), filled(t, 4, 4, blue)
	for _, op := range []expr.Op{expr.Add, expr.Or} {
		out, err := Composite(op, a, b)
		require.NoError(t, err)
		assert.Equal(t, 10, out.Width())
		assert.Equal(t, 10, out.Height())
		assert.Equal(t, red, out.At(0, 2), "above b")
		assert.Equal(t, blue, out.At(0, 3), "b is left-aligned and centered")
		assert.Equal(t, blue, out.At(3, 6))
		assert.Equal(t, red, out.At(4, 6))
		assert.Equal(t, red, out.At(9, 9))
	}
	// translucent source
	half := filled(t, 10, 10, color.RGBA{B: 0x80, A: 0x80})
	out, err := Composite(expr.Add, a, half)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x7f, B: 0x80, A: 0xff}, out.At(5, 5))
}

func TestSubtractSelf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	a := filled(t, 20, 20, red)
	out, err := Composite(expr.Sub, a, a)
	require.NoError(t, err)
	assert.Zero(t, out.Ink(1), "expected full erasure")
	assert.Equal(t, 400, a.Ink(255), "operand must not change")
	//
	translucent := filled(t, 20, 20, color.RGBA{R: 0x80, A: 0x80})
	out, err = Composite(expr.Sub, translucent, translucent)
	require.NoError(t, err)
	assert.Zero(t, out.Ink(65), "remaining ink is at most a quarter")
}

func TestIntersectionAndXor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	a, b := filled(t, 10, 10, red), filled(t, 5, 10, blue)
	and, err := Composite(expr.And, a, b)
	require.NoError(t, err)
	assert.Equal(t, blue, and.At(0, 0))
	assert.Equal(t, none, and.At(5, 0))
	assert.Equal(t, 50, and.Ink(255))
	//
	xor, err := Composite(expr.Xor, a, b)
	require.NoError(t, err)
	assert.Equal(t, none, xor.At(0, 0))
	assert.Equal(t, red, xor.At(5, 0))
	assert.Equal(t, 50, xor.Ink(255))
	//
	sub, err := Composite(expr.Sub, a, b)
	require.NoError(t, err)
	assert.True(t, sub.Equal(xor), "a - b equals a ^ b if b lies within a")
}

func TestCompositeDoesNotMutate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	a, b := filled(t, 7, 9, red), filled(t, 12, 3, color.RGBA{B: 0x40, A: 0x40})
	ca, cb := a.Clone(), b.Clone()
	for _, op := range []expr.Op{expr.Concat, expr.Add, expr.Sub, expr.And, expr.Or, expr.Xor} {
		out, err := Composite(op, a, b)
		require.NoError(t, err)
		assert.True(t, a.Equal(ca), "%v mutated a", op)
		assert.True(t, b.Equal(cb), "%v mutated b", op)
		assert.NotSame(t, a, out)
	}
}

func TestCenteringRoundsDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	a, b := filled(t, 2, 6, red), filled(t, 2, 3, blue)
	out, err := Composite(expr.Add, a, b)
	require.NoError(t, err)
	assert.Equal(t, red, out.At(0, 0))
	assert.Equal(t, blue, out.At(0, 1), "offset is floor(1.5) = 1")
	assert.Equal(t, blue, out.At(0, 3))
	assert.Equal(t, red, out.At(0, 4))
}

func TestCompositeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	_, err := Composite(expr.Add, nil, Empty())
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	_, err = Composite(expr.Op(42), Empty(), Empty())
	assert.Equal(t, core.EINVALID, core.Code(err))
}
