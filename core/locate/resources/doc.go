/*
Package resources resolves templates for the generated font assets.

A project usually ships its own Handlebars templates for the style sheet
and the preview page. If it does not, the templates packaged with this
module are used instead.

As template loading may touch the file system, functions named

   Resolve…(…)

will return a promise, which the client will call later to receive the
loaded resource. The call to the promise-function will then block
until loading has completed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.resources'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.resources")
}
