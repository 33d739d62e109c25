// Package render turns model output into safe HTML for the chat page.
package render

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	policy = bluemonday.UGCPolicy()
)

// Markdown renders text as sanitized HTML. Text that fails to render is
// shown escaped.
func Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// Funcs returns the template functions used by the views.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
	}
}
