/*
Package raster holds bitmaps and composites them.

Bitmaps are premultiplied RGBA surfaces. Compositing never modifies its
operands; every operation allocates a fresh bitmap. Blending implements
the Porter-Duff operators on 8-bit premultiplied color channels.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lettermath.raster'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.raster")
}

// MaxExtent is the maximum width or height of a bitmap.
const MaxExtent = 1 << 15

// Bitmap is a premultiplied RGBA raster surface of at least 1×1 pixels.
// Bitmaps are owned by whoever created them.
type Bitmap struct {
	img *image.RGBA
}

// NewBitmap allocates a transparent bitmap. Sizes smaller than 1 are set to 1.
func NewBitmap(w, h int) (*Bitmap, error) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > MaxExtent || h > MaxExtent {
		return nil, core.Error(core.ERASTER, "bitmap of %d×%d pixels is too large", w, h)
	}
	return &Bitmap{img: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

// Empty returns a 1×1 transparent bitmap.
func Empty() *Bitmap {
	return &Bitmap{img: image.NewRGBA(image.Rect(0, 0, 1, 1))}
}

// FromImage creates a bitmap from a copy of an image.
func FromImage(img image.Image) (*Bitmap, error) {
	r := img.Bounds()
	b, err := NewBitmap(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(b.img, b.img.Bounds(), img, r.Min, draw.Src)
	return b, nil
}

// Width returns the width of a bitmap in pixels.
func (b *Bitmap) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the height of a bitmap in pixels.
func (b *Bitmap) Height() int {
	return b.img.Rect.Dy()
}

// Bounds returns the bitmap's rectangle, which always starts at (0,0).
func (b *Bitmap) Bounds() image.Rectangle {
	return b.img.Rect
}

// At returns the premultiplied color at (x,y), or transparent black for
// points outside of the bitmap.
func (b *Bitmap) At(x, y int) color.RGBA {
	return b.img.RGBAAt(x, y)
}

// Image returns the bitmap as an image. Clients must not modify it.
func (b *Bitmap) Image() image.Image {
	return b.img
}

// Surface returns the underlying image for drawing. It is meant for the
// producer of a bitmap, before handing it out.
func (b *Bitmap) Surface() draw.Image {
	return b.img
}

// Clone returns a deep copy of a bitmap.
func (b *Bitmap) Clone() *Bitmap {
	img := image.NewRGBA(b.img.Rect)
	copy(img.Pix, b.img.Pix)
	return &Bitmap{img: img}
}

// Ink counts the pixels with an alpha value of at least minAlpha.
func (b *Bitmap) Ink(minAlpha uint8) int {
	n := 0
	for i := 3; i < len(b.img.Pix); i += 4 {
		if b.img.Pix[i] >= minAlpha && b.img.Pix[i] > 0 {
			n++
		}
	}
	return n
}

// Equal reports whether two bitmaps have the same size and pixels.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.img.Rect != other.img.Rect {
		return false
	}
	for i, p := range b.img.Pix {
		if other.img.Pix[i] != p {
			return false
		}
	}
	return true
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("bitmap(%d×%d)", b.Width(), b.Height())
}

// blit copies src into dst with its upper left corner at (x,y).
// Pixels outside of dst are clipped.
func blit(dst, src *Bitmap, x, y int) {
	r := src.img.Rect.Add(image.Pt(x, y)).Intersect(dst.img.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(dst.img, r, src.img, r.Min.Sub(image.Pt(x, y)), draw.Src)
}
