/*
Package sfntshaper is a simple shaper for cases where we can afford to not
rely on HarfBuzz.

Every code-point is mapped to a glyph with the font's cmap. Glyphs are
advanced by their horizontal metrics and kerned pairwise, if the font has a
kern table. No glyph substitution and no mark positioning happens.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sfntshaper

import (
	"errors"
	"io"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/engine/glyphing"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'lettermath.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.glyphs")
}

type sfntshape struct{}

// Shaper creates a cmap based shaper. It is stateless and safe for
// concurrent use.
func Shaper() glyphing.Shaper {
	return sfntshape{}
}

// Shape creates a glyph sequence from a text. Only left-to-right text is supported;
// context and features are ignored.
func (sfntshape) Shape(text io.RuneReader, buf []glyphing.ShapedGlyph, ctx [][]rune,
	params glyphing.Params) (glyphing.GlyphSequence, error) {
	//
	if text == nil || params.Font == nil {
		return glyphing.GlyphSequence{}, nil
	}
	seq := glyphing.GlyphSequence{Glyphs: buf[:0]}
	sf := params.Font.ScalableFontParent().SFNT
	ppem := params.Font.PPEm()
	var b sfnt.Buffer
	var prev sfnt.GlyphIndex
	i := 0
	for {
		r, sz, err := text.ReadRune()
		if sz == 0 || err != nil {
			break
		}
		gid, err := sf.GlyphIndex(&b, r)
		if err != nil {
			return glyphing.GlyphSequence{}, core.WrapError(err, core.ERASTER,
				"cannot map code-point %U to a glyph", r)
		}
		adv, err := sf.GlyphAdvance(&b, gid, ppem, xfont.HintingNone)
		if err != nil {
			return glyphing.GlyphSequence{}, core.WrapError(err, core.ERASTER,
				"cannot get advance of glyph %d", gid)
		}
		if i > 0 {
			kern, err := sf.Kern(&b, prev, gid, ppem, xfont.HintingNone)
			if err == nil {
				seq.Glyphs[len(seq.Glyphs)-1].XAdvance += float64(kern) / 64
			} else if !errors.Is(err, sfnt.ErrNotFound) {
				tracer().Debugf("kerning of %d/%d: %v", prev, gid, err)
			}
		}
		seq.Glyphs = append(seq.Glyphs, glyphing.ShapedGlyph{
			ClusterID: i,
			XAdvance:  float64(adv) / 64,
			GID:       gid,
			CodePoint: r,
		})
		prev = gid
		i++
	}
	seq.Measure(params.Font)
	return seq, nil
}
