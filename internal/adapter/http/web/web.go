// Package web embeds the HTML pages served by the handlers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page template names.
const (
	IndexPage     = "index.html"
	LoginPage     = "login.html"
	DashboardPage = "dashboard.html"
)

// Templates parses the embedded pages. It panics on a malformed template,
// which can only happen at build time.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}
