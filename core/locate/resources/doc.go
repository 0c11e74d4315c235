/*
Package resources resolves fonts for rendering letter expressions.

As resource loading may be a time-consuming task, functions in this
package work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

Fonts are searched in the following order: fonts already present in the
global font registry, the packaged Go fonts, font files in a directory
configured with key `lettermath.fontdir`, and system fonts. If everything
fails, the fallback font is used.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'lettermath.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.fonts")
}
