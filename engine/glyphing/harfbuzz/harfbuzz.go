/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

We use the Go port of HarfBuzz in package textlayout. Font binaries are
parsed once per scalable font and cached.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/lettermath/engine/glyphing"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// tracer traces with key 'lettermath.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB converts a 4-letter OpenType feature tag to a HarfBuzz truetype tag.
// Shorter tags are padded with blanks.
func Feature4HB(tag string) hbtt.Tag {
	b := []byte("    ")
	copy(b, tag)
	return hbtt.Tag(binary.BigEndian.Uint32(b))
}

// FeatureRange4HB converts a feature range struct to a HarfBuzz Feature switch.
func FeatureRange4HB(frng glyphing.FeatureRange) hb.Feature {
	f := hb.Feature{
		Tag:   Feature4HB(frng.Feature),
		Start: frng.Start,
		End:   frng.End,
	}
	if frng.On {
		if frng.Arg > 0 {
			f.Value = uint32(frng.Arg)
		} else {
			f.Value = 1
		}
	}
	return f
}

// --- Shape -----------------------------------------------------------------

type shaper struct {
	sync.Mutex
	faces map[*font.ScalableFont]*hbtt.Font
}

// Shaper returns a HarfBuzz shaper. It is safe for concurrent use.
func Shaper() glyphing.Shaper {
	return &shaper{faces: make(map[*font.ScalableFont]*hbtt.Font)}
}

var defaultShaper = Shaper()

// Shape calls the HarfBuzz shaper.
//
// Shape shapes a sequence of code-points (runes), turning its Unicode characters to
// positioned glyphs. It will select a shape plan based on params, including the
// selected font, and the properties of the input text.
//
// If `params.Features` is not empty, it will be used to control the
// features applied during shaping. If two features have the same tag but
// overlapping ranges the value of the feature with the higher index takes
// precedence.
//
// params.Font must be set, otherwise no output is created.
//
// Clients may provide `buf` to avoid allocating memory by Shape. Shape will wrap it
// into the GlyphSequence returned.
//
func Shape(text io.RuneReader, buf []glyphing.ShapedGlyph, context [][]rune, params glyphing.Params) (glyphing.GlyphSequence, error) {
	return defaultShaper.Shape(text, buf, context, params)
}

func (sh *shaper) face(sf *font.ScalableFont) (*hbtt.Font, error) {
	sh.Lock()
	defer sh.Unlock()
	if face, ok := sh.faces[sf]; ok {
		return face, nil
	}
	face, err := hbtt.Parse(bytes.NewReader(sf.Binary), true)
	if err != nil {
		return nil, core.WrapError(err, core.ERASTER, "HarfBuzz cannot parse font %s", sf.Fontname)
	}
	tracer().Debugf("HarfBuzz parsed font %s", sf.Fontname)
	sh.faces[sf] = face
	return face, nil
}

func (sh *shaper) Shape(text io.RuneReader, buf []glyphing.ShapedGlyph, context [][]rune,
	params glyphing.Params) (glyphing.GlyphSequence, error) {
	//
	if text == nil || params.Font == nil {
		return glyphing.GlyphSequence{}, nil
	}
	// Prepare font
	face, err := sh.face(params.Font.ScalableFontParent())
	if err != nil {
		return glyphing.GlyphSequence{}, err
	}
	hbFont := hb.NewFont(face) // scale is units per em
	// Prepare shaping parameters
	var hbSeqProps hb.SegmentProperties
	convertParams(&hbSeqProps, params)
	features := make([]hb.Feature, 0, len(params.Features))
	for _, feat := range params.Features {
		features = append(features, FeatureRange4HB(feat))
	}
	// Prepare HarfBuzz buffer
	hbBuf := hb.NewBuffer()
	hbBuf.Props = hbSeqProps
	bytesBuf, offset, length := bufferText(text, context)
	runes := bytes.Runes(bytesBuf.Bytes())
	hbBuf.AddRunes(runes, offset, length)
	hbBuf.Shape(hbFont, features)
	// Prepare shaped output
	if len(buf) < len(hbBuf.Info) {
		buf = make([]glyphing.ShapedGlyph, len(hbBuf.Info))
	}
	seq := glyphing.GlyphSequence{
		Glyphs: buf[:len(hbBuf.Info)],
	}
	// move HarfBuzz output to glyph sequence output, converting font units to pixels
	tc := params.Font
	for i, ginfo := range hbBuf.Info {
		gpos := &hbBuf.Pos[i]
		g := &seq.Glyphs[i]
		g.ClusterID = ginfo.Cluster
		g.GID = sfnt.GlyphIndex(ginfo.Glyph)
		g.XAdvance = tc.Scale(float64(gpos.XAdvance))
		g.YAdvance = tc.Scale(float64(gpos.YAdvance))
		g.XOffset = tc.Scale(float64(gpos.XOffset))
		g.YOffset = tc.Scale(float64(gpos.YOffset))
		if g.ClusterID >= 0 && g.ClusterID < len(runes) {
			g.CodePoint = runes[g.ClusterID]
		}
		tracer().Debugf("[%3d] %s", i, g)
	}
	seq.Measure(tc)
	return seq, nil
}

// convertParams is a helper function to convert glyphing parameters to
// HarfBuzz's format.
func convertParams(hbSeqProps *hb.SegmentProperties, params glyphing.Params) {
	if params.Language != language.Und {
		hbSeqProps.Language = Lang4HB(params.Language)
	}
	var none language.Script
	if params.Script != none {
		hbSeqProps.Script = Script4HB(params.Script)
	}
	hbSeqProps.Direction = Direction4HB(params.Direction)
}

// bufferText buffers the input text of a call to Shape(…) as a bytes.Buffer.
// To conform to HarfBuzz's API, context is pre-/appended to the input runes.
//
// bufferText returns the start position of the input within the returned buffer,
// together with the input's length (= rune count).
func bufferText(text io.RuneReader, context [][]rune) (buf bytes.Buffer, off int, length int) {
	if len(context) > 0 {
		for _, r := range context[0] {
			buf.WriteRune(r)
			off++
		}
	}
	for {
		r, sz, err := text.ReadRune()
		if sz == 0 || err != nil {
			break
		}
		length++
		buf.WriteRune(r)
	}
	if len(context) > 1 {
		for _, r := range context[1] {
			buf.WriteRune(r)
		}
	}
	return buf, off, length
}
