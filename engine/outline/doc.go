/*
Package outline converts icon SVG documents into TrueType glyph outlines.

Filled shapes are collected from <path>, <rect>, <circle>, <ellipse>,
<polygon> and <polyline> elements, with transforms of enclosing groups
applied. Path data is parsed by oksvg's path cursor; geometry is handled
with rasterx paths and matrices. Strokes, clip paths, masks and <use>
references are not evaluated.

Converting a Shape into a Glyph maps the SVG view box onto the em square:
the y axis is flipped, the top of the view box lands on the ascender, and
cubic Bézier segments are approximated by quadratic ones, as TrueType
outlines only know quadratic curves.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package outline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.outline'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.outline")
}
