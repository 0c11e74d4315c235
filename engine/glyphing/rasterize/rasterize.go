/*
Package rasterize renders single grapheme clusters into bitmaps.

A glyph bitmap is as wide as the shaped cluster's advance and as high as
the typecase's ascent plus descent. The baseline sits at the ascent.
Outlines are filled with the vector rasterizer of x/image.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rasterize

import (
	"image"
	"math"
	"strings"
	"unicode"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/lettermath/engine/colors"
	"github.com/npillmayer/lettermath/engine/glyphing"
	"github.com/npillmayer/lettermath/engine/glyphing/harfbuzz"
	"github.com/npillmayer/lettermath/engine/glyphing/sfntshaper"
	"github.com/npillmayer/lettermath/engine/raster"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer traces with key 'lettermath.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.glyphs")
}

var (
	defaultShaper  = harfbuzz.Shaper()
	fallbackShaper = sfntshaper.Shaper()
)

// RenderGlyph renders text, usually a single grapheme cluster, with the
// HarfBuzz shaper. See RenderGlyphWith.
func RenderGlyph(text string, tc *font.TypeCase, strategy colors.Strategy) (*raster.Bitmap, error) {
	return RenderGlyphWith(nil, text, tc, strategy)
}

// RenderGlyphWith renders text with a given shaper. If shaper is nil, HarfBuzz
// is used. If shaping fails, RenderGlyphWith falls back to a simple cmap based
// shaper.
//
// Exactly one color is taken from strategy, even if the text is blank.
// Blank text results in a 1×1 transparent bitmap.
func RenderGlyphWith(shaper glyphing.Shaper, text string, tc *font.TypeCase,
	strategy colors.Strategy) (*raster.Bitmap, error) {
	//
	col := strategy.Next()
	if tc == nil {
		return nil, core.Error(core.ERASTER, "no font to render %q", text)
	}
	if isBlank(text) {
		tracer().Debugf("blank glyph %q", text)
		return raster.Empty(), nil
	}
	seq, err := shape(shaper, text, tc)
	if err != nil {
		return nil, err
	}
	w := int(math.Ceil(seq.W))
	asc, desc := tc.Extents()
	h := asc + desc
	if w <= 0 || h <= 0 {
		tracer().Debugf("glyph %q has no extent", text)
		return raster.Empty(), nil
	}
	mask := vector.NewRasterizer(w, h)
	if err := outline(mask, seq, tc, asc); err != nil {
		return nil, err
	}
	bitmap, err := raster.NewBitmap(w, h)
	if err != nil {
		return nil, err
	}
	mask.Draw(bitmap.Surface(), bitmap.Bounds(), image.NewUniform(col), image.Point{})
	tracer().Debugf("rendered %q as %s in %v", text, bitmap, col)
	return bitmap, nil
}

func shape(shaper glyphing.Shaper, text string, tc *font.TypeCase) (glyphing.GlyphSequence, error) {
	if shaper == nil {
		shaper = defaultShaper
	}
	params := glyphing.Params{Font: tc, Direction: glyphing.LeftToRight}
	seq, err := shaper.Shape(strings.NewReader(text), nil, nil, params)
	if err == nil && len(seq.Glyphs) > 0 {
		return seq, nil
	}
	tracer().Infof("shaping %q failed, falling back to cmap shaper: %v", text, err)
	seq, err = fallbackShaper.Shape(strings.NewReader(text), nil, nil, params)
	if err != nil {
		return seq, core.WrapError(err, core.ERASTER, "cannot shape %q", text)
	}
	return seq, nil
}

// outline adds the outlines of a glyph sequence to a vector mask. Glyph
// coordinates are y-down, relative to the pen position on the baseline.
func outline(mask *vector.Rasterizer, seq glyphing.GlyphSequence, tc *font.TypeCase, baseline int) error {
	sf := tc.ScalableFontParent().SFNT
	ppem := tc.PPEm()
	var b sfnt.Buffer
	penX := float32(0)
	for _, g := range seq.Glyphs {
		segments, err := sf.LoadGlyph(&b, g.GID, ppem, nil)
		if err != nil {
			return core.WrapError(err, core.ERASTER, "cannot load outline of glyph %d", g.GID)
		}
		ox := penX + float32(g.XOffset)
		oy := float32(baseline) - float32(g.YOffset)
		open := false
		for _, seg := range segments {
			p := seg.Args
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					mask.ClosePath()
				}
				mask.MoveTo(ox+fx(p[0].X), oy+fx(p[0].Y))
				open = true
			case sfnt.SegmentOpLineTo:
				mask.LineTo(ox+fx(p[0].X), oy+fx(p[0].Y))
			case sfnt.SegmentOpQuadTo:
				mask.QuadTo(ox+fx(p[0].X), oy+fx(p[0].Y), ox+fx(p[1].X), oy+fx(p[1].Y))
			case sfnt.SegmentOpCubeTo:
				mask.CubeTo(ox+fx(p[0].X), oy+fx(p[0].Y), ox+fx(p[1].X), oy+fx(p[1].Y),
					ox+fx(p[2].X), oy+fx(p[2].Y))
			}
		}
		if open {
			mask.ClosePath()
		}
		penX += float32(g.XAdvance)
	}
	return nil
}

// fx converts a 26.6 fixed point number to float32.
func fx(x fixed.Int26_6) float32 {
	return float32(x) / 64
}

func isBlank(text string) bool {
	for _, r := range text {
		if !unicode.IsSpace(r) && !unicode.Is(unicode.Cf, r) {
			return false
		}
	}
	return true
}
