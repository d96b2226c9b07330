// Package web provides the embedded templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

// TemplatesFS contains the HTML templates.
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS contains the CSS and JS assets.
//
//go:embed all:static
var StaticFS embed.FS

// Templates returns the templates rooted at their own directory.
func Templates() fs.FS {
	sub, err := fs.Sub(TemplatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the assets rooted at their own directory.
func Static() fs.FS {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
