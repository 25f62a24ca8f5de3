/*
Package pipeline runs the complete icon build for a project.

A project is a directory with this structure:

	meta.json               font version and description
	src/lib/*.svg           source icons
	src/templates/*.hbs     optional preview and style sheet templates
	src/mapping.json        codepoint mapping, rewritten by every run
	dist/                   build output, recreated by every run

Run executes the steps in order: reset dist, list the icons, assign
codepoints and save the mapping, optimize the icons into dist/lib, load
the metadata, then generate the font assets in the background while the
sprite is compiled. Run returns after both have finished.

Errors resetting dist, saving the mapping or loading the metadata abort
the run. Failures of single icons, of font generation or of the sprite
are collected in the Report.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package pipeline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.pipeline'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.pipeline")
}
