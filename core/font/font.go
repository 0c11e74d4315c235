/*
Package font is for typeface and font handling.

We stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Go".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Go Bold".

* A "typecase" is a scaled font, i.e. a font in a certain pixel size,
ready to measure and outline glyphs. The name is reminiscent of the
wooden boxes of typesetters in the era of metal type.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"fmt"
	"os"
	"sync"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'lettermath.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.fonts")
}

// Pixel sizes outside of [MinSize, MaxSize] are rejected by PrepareCase.
const (
	MinSize float64 = 4
	MaxSize float64 = 2000
)

// ScalableFont is an unsized font, parsed from its binary.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a font at a given pixel size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64    // in pixels
}

// LoadOpenTypeFont loads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the binary of an OpenType or TrueType font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font binary")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// PrepareCase creates a typecase of sf at a given pixel size.
// Rasters are 72 dpi, so a size of 100 yields an em of 100 pixels.
func (sf *ScalableFont) PrepareCase(size float64) (*TypeCase, error) {
	if size < MinSize || size > MaxSize {
		return nil, core.Error(core.EINVALID, "font size must be %gpx ≤ size ≤ %gpx, is %g",
			MinSize, MaxSize, size)
	}
	options := &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.ERASTER, "cannot create face for %s", sf.Fontname)
	}
	tracer().Debugf("prepared typecase %s at %.2fpx", sf.Fontname, size)
	return &TypeCase{
		scalableFontParent: sf,
		face:               f,
		size:               size,
	}, nil
}

// ScalableFontParent returns the font a typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PxSize is the em size of the typecase in pixels.
func (tc *TypeCase) PxSize() float64 {
	return tc.size
}

// Face returns the x/image face of the typecase.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// PPEm returns the pixels per em in fixed-point format, as used by package sfnt.
func (tc *TypeCase) PPEm() fixed.Int26_6 {
	return fixed.Int26_6(tc.size * 64)
}

// Extents returns the ascent and descent of the typecase, rounded up to
// whole pixels.
func (tc *TypeCase) Extents() (ascent int, descent int) {
	m := tc.face.Metrics()
	return m.Ascent.Ceil(), m.Descent.Ceil()
}

// Scale converts font design units to pixels.
func (tc *TypeCase) Scale(units float64) float64 {
	upem := tc.scalableFontParent.SFNT.UnitsPerEm()
	if upem == 0 {
		return 0
	}
	return units * tc.size / float64(upem)
}

func (tc *TypeCase) String() string {
	return fmt.Sprintf("%s@%.2fpx", tc.scalableFontParent.Fontname, tc.size)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else fails.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Regular",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}
