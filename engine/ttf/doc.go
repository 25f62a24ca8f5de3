/*
Package ttf writes TrueType font files.

The writer covers what an icon font needs: simple (non-composite) glyphs
with quadratic outlines, a Unicode character map for the Basic
Multilingual Plane, horizontal metrics, and glyph names. Hinting is not
supported; glyphs carry no instructions.

Tables written are

	OS/2  cmap  glyf  head  hhea  hmtx  loca  maxp  name  post

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package ttf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.ttf'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.ttf")
}
