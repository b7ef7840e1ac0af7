// Package jokeboard provides the embedded web assets.
package jokeboard

import "embed"

// Templates and static files are compiled into the binary. In dev mode
// (DEV=true) they are read from disk instead so edits show up without a rebuild.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
