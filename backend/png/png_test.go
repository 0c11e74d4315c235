package png

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	stdpng "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/engine/raster"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBitmap(t *testing.T) *raster.Bitmap {
	b, err := raster.NewBitmap(12, 7)
	require.NoError(t, err)
	draw.Draw(b.Surface(), image.Rect(0, 0, 6, 7), image.NewUniform(color.RGBA{R: 0xff, A: 0xff}),
		image.Point{}, draw.Src)
	draw.Draw(b.Surface(), image.Rect(6, 0, 12, 3), image.NewUniform(color.RGBA{B: 0x80, A: 0x80}),
		image.Point{}, draw.Src)
	return b
}

func TestEncodeRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	b := testBitmap(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, b))
	img, err := stdpng.Decode(&buf)
	require.NoError(t, err)
	decoded, err := raster.FromImage(img)
	require.NoError(t, err)
	assert.True(t, b.Equal(decoded), "expected %s, have %s", b, decoded)
}

func TestWriteFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.raster")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "out.png")
	b := testBitmap(t)
	require.NoError(t, WriteFile(path, b))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := stdpng.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 7, cfg.Height)
	//
	err = WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir.png"), b)
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, core.EINTERNAL, core.Code(Encode(&bytes.Buffer{}, nil)))
}
