package font

import (
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// The Go font family is compiled into the binary. We use it as the packaged
// set of fonts and map CSS generic families onto it.
var packagedFamilies = map[string][4][]byte{
	// regular, italic, bold, bold-italic
	"go":           {goregular.TTF, goitalic.TTF, gobold.TTF, gobolditalic.TTF},
	"go-mono":      {gomono.TTF, gomonoitalic.TTF, gomonobold.TTF, gomonobolditalic.TTF},
	"go-medium":    {gomedium.TTF, gomediumitalic.TTF, gobold.TTF, gobolditalic.TTF},
	"go-smallcaps": {gosmallcaps.TTF, gosmallcapsitalic.TTF, gosmallcaps.TTF, gosmallcapsitalic.TTF},
}

var genericFamilies = map[string]string{
	"sans-serif": "go",
	"sans":       "go",
	"serif":      "go",
	"system-ui":  "go",
	"go-sans":    "go",
	"go-regular": "go",
	"monospace":  "go-mono",
}

// PackagedFamily returns the key of a packaged font family for a family
// name, or false if the name is not one of the packaged families.
func PackagedFamily(family string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(family))
	key = strings.ReplaceAll(key, " ", "-")
	if g, ok := genericFamilies[key]; ok {
		key = g
	}
	_, ok := packagedFamilies[key]
	return key, ok
}

var packagedCache = struct {
	sync.Mutex
	fonts map[string]*ScalableFont
}{fonts: make(map[string]*ScalableFont)}

// PackagedFont returns a font from the packaged Go font family which
// matches family, style and weight best.
func PackagedFont(family string, style xfont.Style, weight xfont.Weight) (*ScalableFont, bool) {
	key, ok := PackagedFamily(family)
	if !ok {
		return nil, false
	}
	variant := 0
	if style == xfont.StyleItalic || style == xfont.StyleOblique {
		variant |= 1
	}
	if weight >= xfont.WeightSemiBold {
		variant |= 2
	}
	name := key + variantSuffix[variant]
	packagedCache.Lock()
	defer packagedCache.Unlock()
	if f, ok := packagedCache.fonts[name]; ok {
		return f, true
	}
	f, err := ParseOpenTypeFont(packagedFamilies[key][variant])
	if err != nil {
		tracer().Errorf("packaged font %s is broken: %v", name, err)
		return nil, false
	}
	f.Filepath = "internal"
	if f.Fontname == "" {
		f.Fontname = name
	}
	tracer().Debugf("loaded packaged font %s as %s", f.Fontname, name)
	packagedCache.fonts[name] = f
	return f, true
}

var variantSuffix = [4]string{"", "-italic", "-bold", "-bold-italic"}
