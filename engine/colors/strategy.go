package colors

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Strategy is a stateful source of colors. Next returns the current color
// and advances. Restart puts a strategy back into its initial state.
//
// Strategies are not safe for concurrent use; every render must use its
// own instance.
type Strategy interface {
	Next() color.NRGBA
	Restart()
}

// Factory creates fresh strategy instances.
type Factory func() Strategy

// Space is a color space for hue wheels.
type Space int8

// Color spaces for hue rotation.
const (
	HSL Space = iota // hue, saturation, lightness
	LCH              // CIE LCh, lightness, chroma, hue (as in CSS Color 4)
)

func (s Space) String() string {
	if s == LCH {
		return "lch"
	}
	return "hsl"
}

// --- Hue wheel -------------------------------------------------------------

// Wheel is a strategy rotating the hue of a base color by a fixed step.
// The first color returned is the base color itself.
type Wheel struct {
	space Space
	hue   float64 // degrees
	c     float64 // saturation for HSL, chroma for LCH
	l     float64 // lightness
	alpha float64
	step  float64 // degrees
	k     int     // number of colors returned
}

// HueWheel creates a hue wheel strategy. For HSL, c is the saturation and
// l the lightness, both in [0…1]. For LCH, l is in [0…100] and c in [0…150]
// as with CSS lch(). Alpha is in [0…1].
func HueWheel(space Space, hue, c, l, alpha, step float64) *Wheel {
	return &Wheel{
		space: space,
		hue:   hue,
		c:     c,
		l:     l,
		alpha: alpha,
		step:  step,
	}
}

// HueAt returns the hue of the k-th color of the wheel, counting from 0.
func (w *Wheel) HueAt(k int) float64 {
	h := math.Mod(w.hue+float64(k)*w.step, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Next returns the current color of the wheel and rotates the hue.
func (w *Wheel) Next() color.NRGBA {
	h := w.HueAt(w.k)
	w.k++
	var c colorful.Color
	switch w.space {
	case LCH:
		c = colorful.HclWhiteRef(h, w.c/100, w.l/100, colorful.D50)
	default:
		c = colorful.Hsl(h, w.c, w.l)
	}
	return nrgba(c, w.alpha)
}

// Restart puts the wheel back to its base color.
func (w *Wheel) Restart() {
	w.k = 0
}

func (w *Wheel) String() string {
	return fmt.Sprintf("%s-wheel(h=%g, step=%g)", w.space, w.hue, w.step)
}

// --- Palette ---------------------------------------------------------------

// Cycle is a strategy repeating a finite list of colors.
type Cycle struct {
	colors []color.NRGBA
	k      int
}

// Palette creates a strategy cycling through colors. An empty palette yields
// transparent black forever.
func Palette(colors ...color.NRGBA) *Cycle {
	c := &Cycle{colors: make([]color.NRGBA, len(colors))}
	copy(c.colors, colors)
	return c
}

// Next returns the current palette color and advances to the next one,
// wrapping at the end of the palette.
func (c *Cycle) Next() color.NRGBA {
	if len(c.colors) == 0 {
		return color.NRGBA{}
	}
	col := c.colors[c.k]
	c.k = (c.k + 1) % len(c.colors)
	return col
}

// Restart puts the palette back to its first color.
func (c *Cycle) Restart() {
	c.k = 0
}

// --- Uniform ---------------------------------------------------------------

type uniform color.NRGBA

// Uniform creates a strategy which returns the same color forever.
func Uniform(c color.NRGBA) Strategy {
	return uniform(c)
}

func (u uniform) Next() color.NRGBA { return color.NRGBA(u) }
func (u uniform) Restart()          {}

// --- Helpers ---------------------------------------------------------------

// ParseColor parses a hex color, e.g. "#ff8000" or "#f80".
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("not a color: %q", s)
	}
	return nrgba(c, 1), nil
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

var (
	_ Strategy = &Wheel{}
	_ Strategy = &Cycle{}
	_ Strategy = uniform{}
)
