// Package web holds the HTML templates of the catalog pages.
package web

import "embed"

// Templates contains templates/*.html.
//
//go:embed templates/*.html
var Templates embed.FS

// TemplateDir is the directory of the page templates inside Templates.
const TemplateDir = "templates"
