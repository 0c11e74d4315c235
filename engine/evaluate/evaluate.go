/*
Package evaluate renders syntax trees of letter expressions into bitmaps.

Evaluation walks a tree in pre-order, left operand before right operand.
Every character literal takes exactly one color from the color strategy of
the render context, so the colors of a picture depend on the position of a
glyph in the expression only. Operators composite the bitmaps of their
operands (see package raster).

A render either succeeds as a whole or fails with the first error; there
are no partial pictures.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package evaluate

import (
	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/lettermath/core/locate/resources"
	"github.com/npillmayer/lettermath/engine/colors"
	"github.com/npillmayer/lettermath/engine/expr"
	"github.com/npillmayer/lettermath/engine/glyphing"
	"github.com/npillmayer/lettermath/engine/glyphing/rasterize"
	"github.com/npillmayer/lettermath/engine/raster"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lettermath.eval'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.eval")
}

// Context is threaded through a render. Colors is consumed during the walk
// and must not be shared between renders. Shaper may be nil, in which case
// glyphs are shaped with HarfBuzz.
type Context struct {
	Font   *font.TypeCase
	Colors colors.Strategy
	Shaper glyphing.Shaper
}

// Render evaluates a syntax tree to a bitmap.
func Render(tree expr.Expression, ctx Context) (*raster.Bitmap, error) {
	if tree == nil {
		return nil, core.Error(core.EINTERNAL, "cannot render empty syntax tree")
	}
	if ctx.Colors == nil {
		return nil, core.Error(core.EINTERNAL, "render context has no color strategy")
	}
	if ctx.Font == nil {
		return nil, core.Error(core.ERASTER, "render context has no font")
	}
	bitmap, err := render(tree, &ctx)
	if err != nil {
		tracer().Errorf("render failed: %v", err)
		return nil, err
	}
	tracer().Debugf("rendered %s as %s", expr.Repr(tree), bitmap)
	return bitmap, nil
}

func render(e expr.Expression, ctx *Context) (*raster.Bitmap, error) {
	switch n := e.(type) {
	case *expr.Char:
		b, err := rasterize.RenderGlyphWith(ctx.Shaper, n.Text, ctx.Font, ctx.Colors)
		if err != nil {
			return nil, core.WrapError(err, core.Code(err),
				"cannot render %q at offset %d", n.Text, n.Offset)
		}
		return b, nil
	case *expr.Paren:
		return render(n.Inner, ctx)
	case *expr.Binary:
		left, err := render(n.Left, ctx)
		if err != nil {
			return nil, err
		}
		right, err := render(n.Right, ctx)
		if err != nil {
			return nil, err
		}
		return raster.Composite(n.Op, left, right)
	}
	return nil, core.Error(core.EINTERNAL, "unknown syntax tree node %T", e)
}

// Result is the outcome of rendering a piece of source text.
type Result struct {
	ID     uint64          // request id, if rendered by a Session
	Source string          // source text
	Tree   expr.Expression // nil if the source has syntax errors
	Bitmap *raster.Bitmap  // nil if rendering failed
	Err    error
}

// RenderText parses and renders source text with a fresh color strategy.
// Syntax errors are reported before anything is rendered.
func RenderText(text string, tc *font.TypeCase, factory colors.Factory, shaper glyphing.Shaper) *Result {
	r := &Result{Source: text}
	if r.Tree, r.Err = expr.Parse(text); r.Err != nil {
		return r
	}
	if factory == nil {
		factory = colors.Default
	}
	ctx := Context{Font: tc, Colors: factory(), Shaper: shaper}
	r.Bitmap, r.Err = Render(r.Tree, ctx)
	return r
}

// RenderSource parses source text, resolves a font specification and
// renders the syntax tree with a fresh strategy from factory. conf may be
// nil. A missing font family is not an error: it is traced, and the
// fallback font is used instead.
func RenderSource(conf schuko.Configuration, text string, spec font.Spec,
	factory colors.Factory) (*Result, error) {
	//
	tree, err := expr.Parse(text)
	if err != nil {
		return &Result{Source: text, Err: err}, err
	}
	tc, err := ResolveFont(conf, spec)
	if err != nil {
		return &Result{Source: text, Tree: tree, Err: err}, err
	}
	if factory == nil {
		factory = colors.Default
	}
	r := &Result{Source: text, Tree: tree}
	r.Bitmap, r.Err = Render(tree, Context{Font: tc, Colors: factory()})
	return r, r.Err
}

// ResolveFont resolves a font specification and blocks until the typecase
// is available. A missing family degrades to a warning if a fallback
// typecase could be created.
func ResolveFont(conf schuko.Configuration, spec font.Spec) (*font.TypeCase, error) {
	tc, err := resources.ResolveTypeCase(conf, spec).TypeCase()
	if err != nil {
		if tc != nil && core.Code(err) == core.EMISSING {
			tracer().Infof("%v", err)
			return tc, nil
		}
		return nil, err
	}
	return tc, nil
}
