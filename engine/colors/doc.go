/*
Package colors provides color strategies for rendering letter expressions.

A color strategy hands out one color per glyph, in the order glyphs are
rendered. Strategies are stateful; every render needs a fresh instance,
which is why clients usually deal with factories.

Hue wheels rotate the hue of a base color in either HSL or CIE LCh space.
Color conversions are done with package go-colorful. LCh colors use a D50
white reference, as CSS lch() does.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package colors

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lettermath.colors'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.colors")
}
