package colors

import (
	"image/color"
	"sort"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/schuko"
)

// Entry is a named color strategy of a catalog.
type Entry struct {
	Name        string
	Description string
	Factory     Factory
}

// Catalog is a set of named color strategies. Names are case-insensitive and
// may be abbreviated to any unique prefix.
type Catalog struct {
	sync.RWMutex
	names   *trie.Trie // lower-case name → *Entry
	entries []*Entry   // in order of registration
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{names: trie.New()}
}

// Register adds a named strategy to a catalog. An existing entry with the
// same name is replaced.
func (cat *Catalog) Register(name, description string, f Factory) {
	cat.Lock()
	defer cat.Unlock()
	key := strings.ToLower(name)
	entry := &Entry{Name: name, Description: description, Factory: f}
	if node, ok := cat.names.Find(key); ok {
		old := node.Meta().(*Entry)
		for i, e := range cat.entries {
			if e == old {
				cat.entries[i] = entry
			}
		}
		cat.names.Remove(key)
	} else {
		cat.entries = append(cat.entries, entry)
	}
	cat.names.Add(key, entry)
	tracer().Debugf("color strategy %s registered", name)
}

// Lookup finds a strategy by name or by an unambiguous prefix of a name.
func (cat *Catalog) Lookup(name string) (*Entry, error) {
	cat.RLock()
	defer cat.RUnlock()
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, core.Error(core.EINVALID, "no color strategy name given")
	}
	if node, ok := cat.names.Find(key); ok {
		return node.Meta().(*Entry), nil
	}
	matches := cat.names.PrefixSearch(key)
	switch len(matches) {
	case 0:
		return nil, core.Error(core.EMISSING, "unknown color strategy %q", name)
	case 1:
		node, _ := cat.names.Find(matches[0])
		return node.Meta().(*Entry), nil
	}
	sort.Strings(matches)
	return nil, core.Error(core.EINVALID, "color strategy %q is ambiguous: %s",
		name, strings.Join(matches, ", "))
}

// Strategy creates a fresh strategy instance for a name.
func (cat *Catalog) Strategy(name string) (Strategy, error) {
	entry, err := cat.Lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Factory(), nil
}

// Entries returns the catalog entries in order of registration.
func (cat *Catalog) Entries() []Entry {
	cat.RLock()
	defer cat.RUnlock()
	entries := make([]Entry, len(cat.entries))
	for i, e := range cat.entries {
		entries[i] = *e
	}
	return entries
}

// DefaultName is the name of the strategy used if none is configured.
const DefaultName = "Default"

// Default returns a fresh instance of the default strategy, a HSL hue wheel
// starting at red.
func Default() Strategy {
	return HueWheel(HSL, 0, 1, 0.6, 1, 70)
}

// StandardCatalog creates a catalog with the built-in strategies. If conf
// is not nil and has key `lettermath.palette` set to a comma-separated list of
// hex colors, a strategy "Custom" cycling through these colors is added.
func StandardCatalog(conf schuko.Configuration) (*Catalog, error) {
	cat := NewCatalog()
	cat.Register(DefaultName, "HSL hue wheel, 70° steps", Default)
	cat.Register("Black", "uniform black", func() Strategy {
		return Uniform(color.NRGBA{A: 0xff})
	})
	cat.Register("Pastel", "LCh hue wheel, light, 95° steps", func() Strategy {
		return HueWheel(LCH, 0, 70, 75, 1, 95)
	})
	cat.Register("Rainbow", "LCh hue wheel, 10° steps", func() Strategy {
		return HueWheel(LCH, 0, 70, 60, 1, 10)
	})
	cat.Register("Glass", "translucent LCh hue wheel, 95° steps", func() Strategy {
		return HueWheel(LCH, 0, 70, 60, 0.5, 95)
	})
	primaries := []color.NRGBA{
		{R: 0xff, A: 0xff},
		{G: 0xff, A: 0xff},
		{B: 0xff, A: 0xff},
	}
	cat.Register("Primaries", "palette of red, green and blue", func() Strategy {
		return Palette(primaries...)
	})
	if conf == nil {
		return cat, nil
	}
	spec := conf.GetString("lettermath.palette")
	if strings.TrimSpace(spec) == "" {
		return cat, nil
	}
	palette, err := ParsePalette(spec)
	if err != nil {
		return cat, err
	}
	cat.Register("Custom", "user palette "+spec, func() Strategy {
		return Palette(palette...)
	})
	return cat, nil
}

// ParsePalette parses a comma-separated list of hex colors.
func ParsePalette(spec string) ([]color.NRGBA, error) {
	var palette []color.NRGBA
	for _, s := range strings.Split(spec, ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		c, err := ParseColor(s)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "invalid palette %q", spec)
		}
		palette = append(palette, c)
	}
	return palette, nil
}
