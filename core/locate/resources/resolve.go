package resources

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/lettermath/core/font/fontregistry"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// NotFound returns an application error for a missing font.
func NotFound(spec font.Spec) error {
	return core.Error(core.EMISSING, "font not found: %s, using fallback font", spec)
}

// --- Fonts -----------------------------------------------------------------

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise is returned by ResolveTypeCase. Calling TypeCase blocks
// until the font has been resolved.
//
// If none of the families of a font specification could be found, the
// promise delivers a typecase of the fallback font together with an error
// of code core.EMISSING. Clients may use the typecase and report the error
// as a warning.
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
	Await(ctx context.Context) (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.TypeCase, error) {
	return loader.await(ctx)
}

// ResolveTypeCase resolves a font specification to a typecase. conf may be nil;
// otherwise key `lettermath.fontdir` names an additional directory to search
// for font files.
func ResolveTypeCase(conf schuko.Configuration, spec font.Spec) TypeCasePromise {
	done := make(chan struct{})
	var result fontPlusErr
	go func() {
		result.font, result.err = resolve(conf, spec)
		close(done)
	}()
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-done:
				return result.font, result.err
			}
		},
	}
}

func resolve(conf schuko.Configuration, spec font.Spec) (*font.TypeCase, error) {
	sel, err := font.ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	registry := fontregistry.GlobalRegistry()
	size := sel.PxSize()
	for _, family := range sel.Families {
		name := fontregistry.NormalizeFontname(family, sel.Style, sel.Weight)
		if registry.HasFont(name) {
			tracer().Debugf("font %s found in registry", name)
			return registry.TypeCase(name, size)
		}
		f := findFont(conf, family, sel.Style, sel.Weight)
		if f == nil {
			tracer().Debugf("font family %q not found", family)
			continue
		}
		registry.StoreFont(name, f)
		return registry.TypeCase(name, size)
	}
	tracer().Infof("no font found for %q", spec)
	tc, err := registry.TypeCase("", size)
	if tc == nil {
		return nil, err
	}
	return tc, NotFound(spec)
}

// findFont searches a family in the packaged fonts, the configured font
// directory and the system fonts, in this order.
func findFont(conf schuko.Configuration, family string, style xfont.Style, weight xfont.Weight) *font.ScalableFont {
	if f, ok := font.PackagedFont(family, style, weight); ok {
		tracer().Debugf("%s is a packaged font", family)
		return f
	}
	if conf != nil {
		if dir := conf.GetString("lettermath.fontdir"); dir != "" {
			if fpath := findInDirectory(dir, family, style, weight); fpath != "" {
				f, err := font.LoadOpenTypeFont(fpath)
				if err == nil {
					tracer().Debugf("%s found in font directory as %s", family, fpath)
					return f
				}
				tracer().Errorf(err.Error())
			}
		}
	}
	for _, pattern := range systemFontPatterns(family, style, weight) {
		fpath, err := findfont.Find(pattern) // try to find as system font
		if err != nil || fpath == "" || !isLoadable(fpath) {
			continue
		}
		if !fontregistry.Matches(fpath, family, style, weight) {
			tracer().Debugf("system font %s does not match %s", fpath, family)
			continue
		}
		f, err := font.LoadOpenTypeFont(fpath)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		tracer().Debugf("%s is a system font: %s", family, fpath)
		return f
	}
	return nil
}

func findInDirectory(dir, family string, style xfont.Style, weight xfont.Weight) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		tracer().Errorf("cannot read font directory %s: %v", dir, err)
		return ""
	}
	for _, e := range entries {
		if e.IsDir() || !isLoadable(e.Name()) {
			continue
		}
		if fontregistry.Matches(e.Name(), family, style, weight) {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}

// systemFontPatterns returns file name patterns to search for,
// e.g. "Roboto-BoldItalic" before "Roboto".
func systemFontPatterns(family string, style xfont.Style, weight xfont.Weight) []string {
	base := strings.ReplaceAll(strings.TrimSpace(family), " ", "")
	var variant string
	if weight >= xfont.WeightSemiBold {
		variant = "Bold"
	}
	if style == xfont.StyleItalic || style == xfont.StyleOblique {
		variant += "Italic"
	}
	if variant == "" {
		return []string{base + "-Regular", base, family}
	}
	return []string{base + "-" + variant, base + variant, family}
}

// sfnt does not parse font collections.
func isLoadable(fname string) bool {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}
