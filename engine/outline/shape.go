package outline

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/MfgOpen/industricons/core"
	"github.com/antchfx/xmlquery"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ViewBox is the user space rectangle of an SVG document.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// Shape is the filled geometry of an SVG document, in user space.
type Shape struct {
	ViewBox ViewBox
	paths   []subpath
}

// IsEmpty is true if no filled geometry has been found.
func (s *Shape) IsEmpty() bool {
	return len(s.paths) == 0
}

// ParseFile reads an SVG file and extracts its shape.
func ParseFile(path string) (*Shape, error) {
	svg, err := os.ReadFile(path)
	if err != nil {
		return nil, core.IOError(err, "cannot read %s", path)
	}
	s, err := Parse(svg)
	if err != nil {
		return nil, core.WrapError(err, core.Code(err), "%s: %s", path, core.UserMessage(err))
	}
	return s, nil
}

// Parse extracts the filled geometry of an SVG document.
func Parse(svg []byte) (*Shape, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(svg))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse SVG")
	}
	var root *xmlquery.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			root = c
			break
		}
	}
	if root == nil || root.Data != "svg" {
		return nil, core.Error(core.EINVALID, "not an SVG document")
	}
	vb, err := viewBox(root)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot determine view box")
	}
	w := &walker{}
	if err = w.walk(root, rasterx.Identity); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "unsupported SVG content")
	}
	tracer().Debugf("shape with %d sub-paths in view box %v", len(w.b.paths), vb)
	return &Shape{ViewBox: vb, paths: w.b.paths}, nil
}

// viewBox reads the viewBox attribute, falling back to width and height.
func viewBox(root *xmlquery.Node) (ViewBox, error) {
	if attr := root.SelectAttr("viewBox"); attr != "" {
		n, err := parseNumbers(attr)
		if err != nil {
			return ViewBox{}, err
		}
		if len(n) != 4 || n[2] <= 0 || n[3] <= 0 {
			return ViewBox{}, fmt.Errorf("invalid viewBox %q", attr)
		}
		return ViewBox{n[0], n[1], n[2], n[3]}, nil
	}
	w, err := parseLength(root.SelectAttr("width"), 0)
	if err != nil {
		return ViewBox{}, err
	}
	h, err := parseLength(root.SelectAttr("height"), 0)
	if err != nil {
		return ViewBox{}, err
	}
	if w <= 0 || h <= 0 {
		return ViewBox{}, fmt.Errorf("neither viewBox nor width/height given")
	}
	return ViewBox{0, 0, w, h}, nil
}

// --- Walking the document --------------------------------------------------

type walker struct {
	b      builder
	cursor oksvg.PathCursor
}

func (w *walker) walk(n *xmlquery.Node, m rasterx.Matrix2D) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode || hidden(c) {
			continue
		}
		cm := m
		if t := c.SelectAttr("transform"); t != "" {
			tm, err := parseTransform(t)
			if err != nil {
				return err
			}
			cm = m.Mult(tm)
		}
		if err := w.element(c, cm); err != nil {
			return fmt.Errorf("<%s>: %w", c.Data, err)
		}
	}
	return nil
}

func (w *walker) element(n *xmlquery.Node, m rasterx.Matrix2D) error {
	w.b.m = m
	switch n.Data {
	case "g", "a", "switch":
		return w.walk(n, m)
	case "svg":
		x, y, err := lengths2(n, "x", "y")
		if err != nil {
			return err
		}
		return w.walk(n, m.Translate(x, y))
	case "path":
		return w.path(n.SelectAttr("d"))
	case "polygon", "polyline": // a filled polyline is closed implicitly
		if pts := strings.TrimSpace(n.SelectAttr("points")); pts != "" {
			return w.path("M" + pts + "Z")
		}
	case "rect":
		return w.rect(n)
	case "circle":
		cx, cy, err := lengths2(n, "cx", "cy")
		if err != nil {
			return err
		}
		r, err := parseLength(n.SelectAttr("r"), 0)
		if err != nil {
			return err
		}
		if r > 0 {
			rasterx.AddCircle(cx, cy, r, &w.b)
		}
	case "ellipse":
		cx, cy, err := lengths2(n, "cx", "cy")
		if err != nil {
			return err
		}
		rx, ry, err := lengths2(n, "rx", "ry")
		if err != nil {
			return err
		}
		if rx > 0 && ry > 0 {
			rasterx.AddEllipse(cx, cy, rx, ry, 0, &w.b)
		}
	default:
		tracer().Debugf("ignoring element <%s>", n.Data)
	}
	return nil
}

func (w *walker) path(d string) error {
	if strings.TrimSpace(d) == "" {
		return nil
	}
	if err := w.cursor.CompilePath(d); err != nil {
		return fmt.Errorf("path data %q: %w", d, err)
	}
	w.cursor.Path.AddTo(&w.b)
	return nil
}

func (w *walker) rect(n *xmlquery.Node) error {
	x, y, err := lengths2(n, "x", "y")
	if err != nil {
		return err
	}
	width, height, err := lengths2(n, "width", "height")
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	rx, ry, err := lengths2(n, "rx", "ry")
	if err != nil {
		return err
	}
	if n.SelectAttr("ry") == "" {
		ry = rx
	} else if n.SelectAttr("rx") == "" {
		rx = ry
	}
	if rx > 0 && ry > 0 {
		rasterx.AddRoundRect(x, y, x+width, y+height, rx, ry, 0, rasterx.CubicGap, &w.b)
	} else {
		rasterx.AddRect(x, y, x+width, y+height, 0, &w.b)
	}
	return nil
}

func lengths2(n *xmlquery.Node, a, b string) (float64, float64, error) {
	x, err := parseLength(n.SelectAttr(a), 0)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseLength(n.SelectAttr(b), 0)
	return x, y, err
}

// hidden is true for elements which do not contribute any filled area.
func hidden(n *xmlquery.Node) bool {
	return n.SelectAttr("display") == "none" ||
		n.SelectAttr("visibility") == "hidden" ||
		n.SelectAttr("fill") == "none"
}

// --- Glyphs ----------------------------------------------------------------

// Placement describes how user space is mapped onto the em square.
type Placement struct {
	Scale     float64 // font units per user unit
	Top       float64 // y coordinate in font units of the view box's top edge
	Tolerance float64 // maximum error of curve approximation, in font units
}

// Glyph is an outline ready to be stored in a TrueType font.
type Glyph struct {
	Contours []Contour
	Advance  int // advance width in font units
}

// IsEmpty is true for a glyph without contours.
func (g *Glyph) IsEmpty() bool {
	return len(g.Contours) == 0
}

// Glyph maps the shape into font units.
func (s *Shape) Glyph(pl Placement) *Glyph {
	if pl.Tolerance <= 0 {
		pl.Tolerance = 0.5
	}
	vb := s.ViewBox
	tf := func(p fpoint) fpoint {
		return fpoint{
			x: (p.x - vb.MinX) * pl.Scale,
			y: pl.Top - (p.y-vb.MinY)*pl.Scale,
		}
	}
	g := &Glyph{Advance: int(math.Round(vb.Width * pl.Scale))}
	for _, sp := range s.paths {
		if c := sp.contour(tf, pl.Tolerance); c != nil {
			g.Contours = append(g.Contours, c)
		}
	}
	return g
}
