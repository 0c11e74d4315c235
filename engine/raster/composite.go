package raster

import (
	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/engine/expr"
)

// ModeFor returns the compositing mode of a blending operator.
// Concatenation is layout, not blending, and has no mode.
func ModeFor(op expr.Op) (Mode, bool) {
	switch op {
	case expr.Add, expr.Or:
		return SourceOver, true
	case expr.Sub:
		return DestinationOut, true
	case expr.And:
		return SourceIn, true
	case expr.Xor:
		return Xor, true
	}
	return 0, false
}

// Composite combines two bitmaps by an operator into a new bitmap.
//
// Concatenation places b to the right of a. All other operators draw a onto
// a canvas of max(width)×max(height) as the destination and blend b over the
// whole canvas as the source. Operands are left-aligned and vertically
// centered, rounding down.
func Composite(op expr.Op, a, b *Bitmap) (*Bitmap, error) {
	if a == nil || b == nil {
		return nil, core.Error(core.EINTERNAL, "cannot composite missing bitmap")
	}
	if op == expr.Concat {
		return Concat(a, b)
	}
	mode, ok := ModeFor(op)
	if !ok {
		return nil, core.Error(core.EINVALID, "no compositing mode for operator %v", op)
	}
	return Blend(mode, a, b)
}

// Concat places two bitmaps side by side, each vertically centered.
func Concat(a, b *Bitmap) (*Bitmap, error) {
	w, h := a.Width()+b.Width(), max(a.Height(), b.Height())
	out, err := NewBitmap(w, h)
	if err != nil {
		return nil, err
	}
	blit(out, a, 0, center(h, a.Height()))
	blit(out, b, a.Width(), center(h, b.Height()))
	tracer().Debugf("concat %s, %s → %s", a, b, out)
	return out, nil
}

// Blend composites b (source) over a (destination) with a Porter-Duff mode.
func Blend(mode Mode, a, b *Bitmap) (*Bitmap, error) {
	w, h := max(a.Width(), b.Width()), max(a.Height(), b.Height())
	out, err := NewBitmap(w, h)
	if err != nil {
		return nil, err
	}
	blit(out, a, 0, center(h, a.Height()))
	f := mode.Func()
	yb := center(h, b.Height())
	bw, bh := b.Width(), b.Height()
	dst, src := out.img, b.img
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa byte // transparent outside of b
			if x < bw && y >= yb && y < yb+bh {
				j := src.PixOffset(x, y-yb)
				sr, sg, sb, sa = src.Pix[j], src.Pix[j+1], src.Pix[j+2], src.Pix[j+3]
			}
			i := dst.PixOffset(x, y)
			p := dst.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = f(sr, sg, sb, sa, p[0], p[1], p[2], p[3])
		}
	}
	tracer().Debugf("%s %s, %s → %s", mode, a, b, out)
	return out, nil
}

// center returns the offset of an extent e within an extent of total,
// rounded down.
func center(total, e int) int {
	return (total - e) / 2
}
