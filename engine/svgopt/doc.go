/*
Package svgopt rewrites icon SVG files so they are ready for use in a font
and a sprite.

An Optimizer runs a chain of plugins over the parsed document. The default
chain strips explicit fill colors and sets fill="currentColor" on the root
element, so icons take on the text color of their surroundings:

	<svg …><path fill="#000000" d="…"/></svg>
	  ⇒  <svg … fill="currentColor"><path d="…"></path></svg>

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package svgopt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.svgopt'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.svgopt")
}
