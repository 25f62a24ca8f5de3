/*
Package fontgen generates the icon font and its companion assets.

From a directory of optimized SVG icons and a codepoint mapping, Generate
writes three files into the output directory:

	<name>.ttf    TrueType font, one glyph per icon
	<name>.css    @font-face rule plus one class per icon
	<name>.html   preview page listing every icon

CSS and HTML are rendered from Handlebars templates, either user supplied
or bundled with this module (see package resources). Templates see the
following context:

	name, prefix, version, description
	fontSrc      CSS src value of the font file
	assets       file names of the generated assets: css, ttf, html
	codepoints   icon name to codepoint (unordered)
	glyphs       ordered list of { name, prefix, codepoint, hex, cssContent }

Helper 'unicodeHex' (alias 'codepoint') renders a codepoint in lower-case
hex digits.

Generation runs asynchronously; callers receive a Promise.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package fontgen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.fontgen'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.fontgen")
}
