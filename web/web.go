// Package web carries the HTML templates and static assets, embedded so the
// binary and the handler tests do not depend on the working directory.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS
