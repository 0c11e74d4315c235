package font

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/dimen"
	xfont "golang.org/x/image/font"
)

// Spec is a font specification in the manner of a CSS font shorthand,
// e.g. "100px Go" or "bold 48px 'Go Mono', monospace".
type Spec string

// DefaultSpec is used when no font has been configured.
const DefaultSpec Spec = "100px Go"

// Selector is the interpreted form of a Spec.
type Selector struct {
	Families []string     // in order of preference
	Size     dimen.Dimen  // em size
	Style    xfont.Style  // normal, italic or oblique
	Weight   xfont.Weight // CSS weight, mapped to x/image weights
}

// PxSize returns the em size of a selector in pixels.
func (sel Selector) PxSize() float64 {
	return sel.Size.Pixels()
}

func (sel Selector) String() string {
	return fmt.Sprintf("%s %.2fpx (style=%d, weight=%d)", strings.Join(sel.Families, ","),
		sel.PxSize(), sel.Style, sel.Weight)
}

// ParseSpec interprets a font specification. Syntax is
//
//     [style|weight]* size[/line-height] family[, family]*
//
// A size without unit is taken as pixels. If no family is given,
// "sans-serif" is assumed.
func ParseSpec(spec Spec) (Selector, error) {
	sel := Selector{Style: xfont.StyleNormal, Weight: xfont.WeightNormal}
	fields := strings.Fields(string(spec))
	i := 0
	for ; i < len(fields); i++ {
		kw := strings.ToLower(fields[i])
		if s, ok := styleKeywords[kw]; ok {
			sel.Style = s
			continue
		}
		if w, ok := weightKeyword(kw); ok && (!isNumeric(kw) || startsWithDigit(fields, i+1)) {
			sel.Weight = w
			continue
		}
		break
	}
	if i == len(fields) {
		return sel, core.Error(core.EINVALID, "font specification %q lacks a size", spec)
	}
	size := fields[i]
	if slash := strings.IndexByte(size, '/'); slash >= 0 {
		size = size[:slash] // line-height is meaningless for single glyphs
	}
	d, err := dimen.ParseSize(size)
	if err != nil || d <= 0 {
		return sel, core.Error(core.EINVALID, "font specification %q has invalid size %q", spec, fields[i])
	}
	sel.Size = d
	rest := strings.Join(fields[i+1:], " ")
	for _, fam := range strings.Split(rest, ",") {
		fam = strings.Trim(strings.TrimSpace(fam), `"'`)
		if fam != "" {
			sel.Families = append(sel.Families, fam)
		}
	}
	if len(sel.Families) == 0 {
		sel.Families = []string{"sans-serif"}
	}
	return sel, nil
}

var styleKeywords = map[string]xfont.Style{
	"normal":  xfont.StyleNormal,
	"italic":  xfont.StyleItalic,
	"oblique": xfont.StyleOblique,
}

func weightKeyword(kw string) (xfont.Weight, bool) {
	switch kw {
	case "thin":
		return xfont.WeightThin, true
	case "light":
		return xfont.WeightLight, true
	case "medium":
		return xfont.WeightMedium, true
	case "semibold":
		return xfont.WeightSemiBold, true
	case "bold":
		return xfont.WeightBold, true
	case "extrabold":
		return xfont.WeightExtraBold, true
	case "black":
		return xfont.WeightBlack, true
	}
	// CSS numeric weights 100…900; WeightNormal is 400
	if n, err := strconv.Atoi(kw); err == nil && n >= 100 && n <= 900 && n%100 == 0 {
		return xfont.Weight(n/100 - 4), true
	}
	return xfont.WeightNormal, false
}

// "100 Go" is a size followed by a family, "100 12px Go" has weight 100.
func startsWithDigit(fields []string, i int) bool {
	return i < len(fields) && fields[i] != "" && fields[i][0] >= '0' && fields[i][0] <= '9'
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
