/*
Package glyphing defines the contract for text shapers.

A shaper turns a sequence of code-points into positioned glyphs of a
typecase. Letter expressions shape one grapheme cluster at a time, but the
contract is not restricted to single clusters.

Two shapers exist: package harfbuzz (full OpenType shaping) and package
sfntshaper (cmap lookup plus advances and kerning, for when HarfBuzz
cannot handle a font).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/lettermath/core/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// A ShapedGlyph is a glyph positioned by a shaper. Distances are in pixels
// of the typecase used for shaping.
type ShapedGlyph struct {
	ClusterID int             // position of code-point(s) for this glyph in original string
	XAdvance  float64         // advance after glyph has been set
	YAdvance  float64         //
	XOffset   float64         // position of anchor dot for glyph
	YOffset   float64         // positive values move up
	GID       sfnt.GlyphIndex // glyph index within font
	CodePoint rune            // code-point of first rune to produce this glyph
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, advance=%.2f)", g.GID, g.XAdvance)
}

// A Shaper creates a sequence of glyphs from a sequence of
// Unicode code-points. Glyphs are taken from a font, given in a specific pixel size.
//
// Clients may provide additional information in Params, as well as
// textual context ([2][]rune).
//
type Shaper interface {
	Shape(io.RuneReader, []ShapedGlyph, [][]rune, Params) (GlyphSequence, error)
}

// Params collects shaping parameters.
type Params struct {
	Font      *font.TypeCase  // use a font at a given pixel size
	Direction Direction       // writing direction
	Script    language.Script // 4-letter ISO 15924 script identifier
	Language  language.Tag    // BCP 47 language tag
	Features  []FeatureRange  // OpenType features to apply
}

// FeatureRange tells a shaper to turn a certain OpenType feature on or off for a
// run of code-points.
type FeatureRange struct {
	Feature    string // 4-letter feature tag, e.g. "liga"
	Arg        int    // optional argument for this feature
	On         bool   // turn it on or off?
	Start, End int    // position of code-points to apply feature for
}

// GlyphSequence contains a sequence of shaped glyphs.
type GlyphSequence struct {
	Glyphs  []ShapedGlyph // resulting sequence of glyphs
	W, H, D float64       // width, height, depth of bounding box, in pixels
}

// BoundingBox returns width, height and depth of a glyph sequence.
func (seq GlyphSequence) BoundingBox() (w float64, h float64, d float64) {
	return seq.W, seq.H, seq.D
}

func (seq GlyphSequence) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, g := range seq.Glyphs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.String())
	}
	sb.WriteString(fmt.Sprintf("] w=%.2f", seq.W))
	return sb.String()
}

// Measure sets the bounding box of a sequence from its glyphs' advances and
// the extents of a typecase.
func (seq *GlyphSequence) Measure(tc *font.TypeCase) {
	seq.W = 0
	for _, g := range seq.Glyphs {
		seq.W += g.XAdvance
	}
	if tc != nil {
		asc, desc := tc.Extents()
		seq.H, seq.D = float64(asc), float64(desc)
	}
}
