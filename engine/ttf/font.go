package ttf

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/engine/outline"
)

// Glyph is a single glyph of a font. Glyphs without a codepoint are not
// reachable through the character map.
type Glyph struct {
	Name      string
	Codepoint rune
	Contours  []outline.Contour
	Advance   int
}

// Font collects everything needed to write a font file.
type Font struct {
	Family      string // family name, e.g. "industricon"
	Style       string // sub-family name; defaults to "Regular"
	Version     string // name table version string, e.g. "Version 1.2"
	Revision    float64
	Description string
	UnitsPerEm  int
	Descent     int // distance below the baseline, as a positive number
	Created     time.Time
	Glyphs      []Glyph // .notdef is prepended when writing
}

// Ascent is the height above the baseline.
func (f *Font) Ascent() int {
	return f.UnitsPerEm - f.Descent
}

// metrics holds values derived from the glyphs, shared by several tables.
type metrics struct {
	bbox            box
	advanceMax      int
	avgAdvance      int
	minLSB, minRSB  int
	xMaxExtent      int
	maxPoints       int
	maxContours     int
	firstCP, lastCP rune
}

type box struct {
	xMin, yMin, xMax, yMax int
	empty                  bool
}

func glyphBox(g *Glyph) box {
	b := box{xMin: math.MaxInt32, yMin: math.MaxInt32, xMax: math.MinInt32, yMax: math.MinInt32}
	n := 0
	for _, c := range g.Contours {
		for _, p := range c {
			b.xMin, b.xMax = min(b.xMin, p.X), max(b.xMax, p.X)
			b.yMin, b.yMax = min(b.yMin, p.Y), max(b.yMax, p.Y)
			n++
		}
	}
	if n == 0 {
		return box{empty: true}
	}
	return b
}

func (b box) union(o box) box {
	if b.empty {
		return o
	}
	if o.empty {
		return b
	}
	return box{
		xMin: min(b.xMin, o.xMin), yMin: min(b.yMin, o.yMin),
		xMax: max(b.xMax, o.xMax), yMax: max(b.yMax, o.yMax),
	}
}

// glyphs returns the complete glyph list, starting with .notdef.
func (f *Font) glyphs() []Glyph {
	all := make([]Glyph, 0, len(f.Glyphs)+1)
	all = append(all, Glyph{Name: ".notdef", Advance: f.UnitsPerEm})
	return append(all, f.Glyphs...)
}

func (f *Font) validate(glyphs []Glyph) error {
	if f.UnitsPerEm < 16 || f.UnitsPerEm > 16384 {
		return fmt.Errorf("units per em out of range: %d", f.UnitsPerEm)
	}
	if f.Descent < 0 || f.Descent >= f.UnitsPerEm {
		return fmt.Errorf("descent out of range: %d", f.Descent)
	}
	if f.Family == "" {
		return fmt.Errorf("font family name missing")
	}
	if len(glyphs) > math.MaxUint16 {
		return fmt.Errorf("too many glyphs: %d", len(glyphs))
	}
	seen := make(map[rune]string)
	for _, g := range glyphs {
		if g.Codepoint > 0xFFFF {
			return fmt.Errorf("glyph %s: codepoint %U outside the Basic Multilingual Plane", g.Name, g.Codepoint)
		}
		if g.Codepoint != 0 {
			if other, dup := seen[g.Codepoint]; dup {
				return fmt.Errorf("glyphs %s and %s share codepoint %U", other, g.Name, g.Codepoint)
			}
			seen[g.Codepoint] = g.Name
		}
		if g.Advance < 0 || g.Advance > math.MaxUint16 {
			return fmt.Errorf("glyph %s: advance out of range: %d", g.Name, g.Advance)
		}
		for _, c := range g.Contours {
			for _, p := range c {
				if p.X < math.MinInt16 || p.X > math.MaxInt16 || p.Y < math.MinInt16 || p.Y > math.MaxInt16 {
					return fmt.Errorf("glyph %s: coordinate out of range: (%d,%d)", g.Name, p.X, p.Y)
				}
			}
		}
	}
	return nil
}

func (f *Font) metrics(glyphs []Glyph) metrics {
	m := metrics{bbox: box{empty: true}, minLSB: math.MaxInt32, minRSB: math.MaxInt32}
	sum, cnt := 0, 0
	for i := range glyphs {
		g := &glyphs[i]
		b := glyphBox(g)
		m.bbox = m.bbox.union(b)
		m.advanceMax = max(m.advanceMax, g.Advance)
		if g.Advance > 0 {
			sum += g.Advance
			cnt++
		}
		if !b.empty {
			m.minLSB = min(m.minLSB, b.xMin)
			m.minRSB = min(m.minRSB, g.Advance-b.xMax)
			m.xMaxExtent = max(m.xMaxExtent, b.xMax)
		}
		pts := 0
		for _, c := range g.Contours {
			pts += len(c)
		}
		m.maxPoints = max(m.maxPoints, pts)
		m.maxContours = max(m.maxContours, len(g.Contours))
		if g.Codepoint != 0 {
			if m.firstCP == 0 || g.Codepoint < m.firstCP {
				m.firstCP = g.Codepoint
			}
			m.lastCP = max(m.lastCP, g.Codepoint)
		}
	}
	if cnt > 0 {
		m.avgAdvance = sum / cnt
	}
	if m.minLSB == math.MaxInt32 {
		m.minLSB, m.minRSB = 0, 0
	}
	if m.bbox.empty {
		m.bbox = box{}
	}
	return m
}

// Bytes serializes the font.
func (f *Font) Bytes() ([]byte, error) {
	if f.Style == "" {
		f.Style = "Regular"
	}
	glyphs := f.glyphs()
	if err := f.validate(glyphs); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create font %s", f.Family)
	}
	m := f.metrics(glyphs)
	glyf, loca := glyfAndLoca(glyphs)
	tables := []table{
		{tag: "OS/2", data: f.os2Table(glyphs, m)},
		{tag: "cmap", data: cmapTable(glyphs)},
		{tag: "glyf", data: glyf},
		{tag: "head", data: f.headTable(m)},
		{tag: "hhea", data: f.hheaTable(glyphs, m)},
		{tag: "hmtx", data: hmtxTable(glyphs)},
		{tag: "loca", data: loca},
		{tag: "maxp", data: maxpTable(glyphs, m)},
		{tag: "name", data: f.nameTable()},
		{tag: "post", data: postTable(glyphs)},
	}
	font := assemble(tables)
	tracer().Debugf("font %s: %d glyphs, %d bytes", f.Family, len(glyphs), len(font))
	return font, nil
}

// WriteFile serializes the font and writes it to path.
func (f *Font) WriteFile(path string) error {
	b, err := f.Bytes()
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, b, 0644); err != nil {
		return core.IOError(err, "cannot write font file %s", path)
	}
	return nil
}
