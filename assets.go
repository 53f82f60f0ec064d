// Package jobboard provides the embedded web assets for production builds.
package jobboard

import "embed"

// In dev mode (DEV=true) the server reads web/ from disk instead so template
// and stylesheet edits show up without a rebuild.

//go:embed all:web/static
var StaticFS embed.FS

//go:embed all:web/templates
var TemplateFS embed.FS
