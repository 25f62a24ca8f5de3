package fontgen

import (
	"math"
	"sort"

	"github.com/MfgOpen/industricons/core/dirlist"
	"github.com/MfgOpen/industricons/engine/outline"
	"github.com/MfgOpen/industricons/engine/ttf"
)

type icon struct {
	name      string
	codepoint int
	shape     *outline.Shape
}

// loadIcons parses every SVG of the input directory. Icons come out in
// codepoint order. Icons without a codepoint get the next free one after
// the highest assigned codepoint; icons which cannot be parsed are skipped.
func loadIcons(opts *Options) (icons []icon, skipped []string, err error) {
	listing, err := dirlist.List(opts.InputDir)
	if err != nil {
		return nil, nil, err
	}
	next := 0
	opts.Codepoints.Each(func(_ string, cp int) {
		next = max(next, cp+1)
	})
	byCodepoint := make(map[int]icon)
	var order []int
	for _, entry := range listing.Entries {
		shape, err := outline.ParseFile(entry.Path)
		if err != nil {
			tracer().Errorf("skipping icon %s: %v", entry.FileName, err)
			skipped = append(skipped, entry.BaseName)
			continue
		}
		if shape.ViewBox.Width <= 0 || shape.ViewBox.Height <= 0 {
			tracer().Errorf("skipping icon %s: empty view box", entry.FileName)
			skipped = append(skipped, entry.BaseName)
			continue
		}
		if shape.IsEmpty() {
			tracer().Infof("icon %s has no filled shapes", entry.FileName)
		}
		cp, ok := opts.Codepoints.Codepoint(entry.BaseName)
		if !ok {
			cp = next
			next++
			tracer().Infof("icon %s has no codepoint assigned, using %d", entry.BaseName, cp)
		}
		if _, dup := byCodepoint[cp]; dup {
			tracer().Errorf("skipping icon %s: codepoint %d already taken", entry.FileName, cp)
			skipped = append(skipped, entry.BaseName)
			continue
		}
		byCodepoint[cp] = icon{name: entry.BaseName, codepoint: cp, shape: shape}
		order = append(order, cp)
	}
	opts.Codepoints.Each(func(name string, cp int) {
		if _, ok := byCodepoint[cp]; !ok {
			tracer().Infof("no optimized icon found for %s", name)
		}
	})
	sort.Ints(order)
	for _, cp := range order {
		icons = append(icons, byCodepoint[cp])
	}
	return icons, skipped, nil
}

// glyphs converts the icons into font glyphs. With normalization every
// icon is scaled to the full font height; otherwise all icons share the
// scale of the tallest one.
func glyphs(icons []icon, opts *Options) []ttf.Glyph {
	height := float64(opts.FontHeight)
	tallest := 0.0
	for _, ic := range icons {
		tallest = math.Max(tallest, ic.shape.ViewBox.Height)
	}
	gg := make([]ttf.Glyph, 0, len(icons))
	for _, ic := range icons {
		vbh := ic.shape.ViewBox.Height
		if !opts.Normalize {
			vbh = tallest
		}
		pl := outline.Placement{
			Scale: height / vbh,
			Top:   float64(opts.FontHeight - opts.Descent),
		}
		g := ic.shape.Glyph(pl)
		gg = append(gg, ttf.Glyph{
			Name:      ic.name,
			Codepoint: rune(ic.codepoint),
			Contours:  g.Contours,
			Advance:   g.Advance,
		})
	}
	return gg
}
