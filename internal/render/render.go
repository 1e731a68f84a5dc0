// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

// Package render turns a note into a printable, standalone HTML document.
// The body is treated as Markdown and sanitized before it is embedded.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/rymate/notes/internal/model"
)

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <meta name="description" content="{{.Description}}">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 2rem 1rem;
        }
        pre, code { background: #f5f5f5; }
        @media print { body { max-width: none; padding: 0; } }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <article>
{{.Content}}
    </article>
</body>
</html>
`

var docTmpl = template.Must(template.New("note").Parse(documentTemplate))

type templateData struct {
	Title       string
	Description string
	Content     template.HTML
}

// BodyHTML renders a Markdown body to a sanitized HTML fragment.
func BodyHTML(body string) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(body))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	unsafe := markdown.Render(doc, renderer)
	return bluemonday.UGCPolicy().SanitizeBytes(unsafe)
}

// NoteHTML renders note as a complete HTML document titled with the note title.
func NoteHTML(note model.Note) []byte {
	data := templateData{
		Title:       note.Title,
		Description: strings.TrimSpace(note.Preview()),
		Content:     template.HTML(BodyHTML(note.Body)),
	}
	var buf bytes.Buffer
	if err := docTmpl.Execute(&buf, data); err != nil {
		return []byte("<!DOCTYPE html><html><head><title>Error</title></head><body><h1>Error rendering note</h1></body></html>")
	}
	return buf.Bytes()
}
