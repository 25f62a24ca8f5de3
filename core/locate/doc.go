/*
Package locate knows where things live in an icon project.

A project is a directory holding the raw icons, the templates for the
generated style sheet and preview page, and a metadata file:

	<root>/meta.json
	<root>/src/lib/*.svg
	<root>/src/templates/preview.hbs
	<root>/src/templates/styles.hbs
	<root>/src/mapping.json        (written)
	<root>/dist/…                  (written)

Sub-package resources holds files packaged with the binary.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package locate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.locate'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.locate")
}
