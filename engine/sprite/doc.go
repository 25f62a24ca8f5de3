/*
Package sprite compiles SVG icons into a single SVG sprite.

Every icon becomes a <symbol> element of the sprite, identified by the
icon's base file name, which allows pages to reference icons by

	<svg><use href="industricon.svg#arrow-up"/></svg>

Presentation attributes of an icon's root element, e.g. fill, are moved
onto its symbol; geometry attributes (width, height, x, y) are dropped in
favour of the view box.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package sprite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.sprite'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.sprite")
}
