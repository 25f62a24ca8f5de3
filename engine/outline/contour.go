package outline

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Point is a point of a TrueType contour, in font units.
type Point struct {
	X, Y    int
	OnCurve bool
}

// Contour is a closed sequence of points. The closing segment from the
// last point back to the first one is implicit.
type Contour []Point

type fpoint struct {
	x, y float64
}

type segKind uint8

const (
	segLine segKind = iota
	segQuad
	segCubic
)

// segment is a line, quadratic or cubic segment. The end point is always
// the last of the used points.
type segment struct {
	kind segKind
	p    [3]fpoint
}

func (s segment) end() fpoint {
	return s.p[s.kind]
}

type subpath struct {
	start fpoint
	segs  []segment
}

// builder collects path commands in SVG user space. It implements
// rasterx.Adder, applying a transformation matrix to every point.
type builder struct {
	m     rasterx.Matrix2D
	paths []subpath
	open  bool
}

var _ rasterx.Adder = (*builder)(nil)

func (b *builder) pt(p fixed.Point26_6) fpoint {
	x, y := b.m.Transform(float64(p.X)/64, float64(p.Y)/64)
	return fpoint{x, y}
}

func (b *builder) Start(a fixed.Point26_6) {
	b.paths = append(b.paths, subpath{start: b.pt(a)})
	b.open = true
}

func (b *builder) Line(p fixed.Point26_6) {
	b.add(segment{kind: segLine, p: [3]fpoint{b.pt(p)}})
}

func (b *builder) QuadBezier(c, p fixed.Point26_6) {
	b.add(segment{kind: segQuad, p: [3]fpoint{b.pt(c), b.pt(p)}})
}

func (b *builder) CubeBezier(c1, c2, p fixed.Point26_6) {
	b.add(segment{kind: segCubic, p: [3]fpoint{b.pt(c1), b.pt(c2), b.pt(p)}})
}

func (b *builder) Stop(closeLoop bool) {
	b.open = false
}

func (b *builder) add(s segment) {
	if !b.open { // drawing continues after a close: start at the current point
		b.paths = append(b.paths, subpath{start: b.current()})
		b.open = true
	}
	sp := &b.paths[len(b.paths)-1]
	sp.segs = append(sp.segs, s)
}

func (b *builder) current() fpoint {
	if len(b.paths) == 0 {
		return fpoint{}
	}
	sp := b.paths[len(b.paths)-1]
	if len(sp.segs) == 0 {
		return sp.start
	}
	return sp.segs[len(sp.segs)-1].end()
}

// --- Quadratic approximation -----------------------------------------------

const maxQuadsPerCubic = 32

// cubicToQuads splits a cubic Bézier curve into n quadratic ones, with n
// chosen so that the approximation error stays below tol. Returned are
// pairs of (control point, end point).
func cubicToQuads(p0, p1, p2, p3 fpoint, tol float64) [][2]fpoint {
	dx := p3.x - 3*p2.x + 3*p1.x - p0.x
	dy := p3.y - 3*p2.y + 3*p1.y - p0.y
	n := int(math.Ceil(math.Cbrt(math.Hypot(dx, dy) * math.Sqrt(3) / 36 / tol)))
	if n < 1 {
		n = 1
	} else if n > maxQuadsPerCubic {
		n = maxQuadsPerCubic
	}
	at := func(t float64) fpoint {
		mt := 1 - t
		a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		return fpoint{
			a*p0.x + b*p1.x + c*p2.x + d*p3.x,
			a*p0.y + b*p1.y + c*p2.y + d*p3.y,
		}
	}
	deriv := func(t float64) fpoint {
		mt := 1 - t
		a, b, c := 3*mt*mt, 6*mt*t, 3*t*t
		return fpoint{
			a*(p1.x-p0.x) + b*(p2.x-p1.x) + c*(p3.x-p2.x),
			a*(p1.y-p0.y) + b*(p2.y-p1.y) + c*(p3.y-p2.y),
		}
	}
	quads := make([][2]fpoint, n)
	for i := 0; i < n; i++ {
		t0, t1 := float64(i)/float64(n), float64(i+1)/float64(n)
		h := (t1 - t0) / 3
		q0, q3 := at(t0), at(t1)
		d0, d1 := deriv(t0), deriv(t1)
		q1 := fpoint{q0.x + h*d0.x, q0.y + h*d0.y}
		q2 := fpoint{q3.x - h*d1.x, q3.y - h*d1.y}
		ctrl := fpoint{
			(3*(q1.x+q2.x) - q0.x - q3.x) / 4,
			(3*(q1.y+q2.y) - q0.y - q3.y) / 4,
		}
		if i == n-1 {
			q3 = p3
		}
		quads[i] = [2]fpoint{ctrl, q3}
	}
	return quads
}

// --- Contours --------------------------------------------------------------

func round(p fpoint, on bool) Point {
	return Point{X: int(math.Round(p.x)), Y: int(math.Round(p.y)), OnCurve: on}
}

// contour converts a sub-path into TrueType points, after mapping each
// point with tf. It returns nil for contours without area.
func (sp subpath) contour(tf func(fpoint) fpoint, tol float64) Contour {
	cur := tf(sp.start)
	pts := []Point{round(cur, true)}
	for _, seg := range sp.segs {
		switch seg.kind {
		case segLine:
			cur = tf(seg.p[0])
			pts = append(pts, round(cur, true))
		case segQuad:
			c, e := tf(seg.p[0]), tf(seg.p[1])
			pts = append(pts, round(c, false), round(e, true))
			cur = e
		case segCubic:
			c1, c2, e := tf(seg.p[0]), tf(seg.p[1]), tf(seg.p[2])
			for _, q := range cubicToQuads(cur, c1, c2, e, tol) {
				pts = append(pts, round(q[0], false), round(q[1], true))
			}
			cur = e
		}
	}
	return tidy(pts)
}

// tidy removes repeated on-curve points and the explicit closing point.
func tidy(pts []Point) Contour {
	c := make(Contour, 0, len(pts))
	for _, p := range pts {
		if n := len(c); n > 0 && p.OnCurve && c[n-1].OnCurve && c[n-1].X == p.X && c[n-1].Y == p.Y {
			continue
		}
		c = append(c, p)
	}
	if n := len(c); n > 1 && c[0].OnCurve && c[n-1].OnCurve && c[0].X == c[n-1].X && c[0].Y == c[n-1].Y {
		c = c[:n-1]
	}
	if len(c) < 3 {
		return nil
	}
	return c
}
