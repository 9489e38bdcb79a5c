// Package view holds the server-rendered page templates.
package view

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap returns the helpers available to every page template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"icon":       ContactIcon,
		"iconLabel":  ContactIconLabel,
		"formatDate": FormatDate,
	}
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html"))
}

// FormatDate renders a post date the way the blog cards show it.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
