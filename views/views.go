// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/ckchivatsi/opinion-court/urls"
)

// Page names
const (
	IndexPage   = "index"
	DetailPage  = "detail"
	ResultsPage = "results"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"url": func(name string, args ...int64) (string, error) {
		return urls.Reverse(name, args...)
	},
	"since": func(t time.Time) string {
		return humanize.Time(t)
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"plural": func(n int, word string) string {
		return english.PluralWord(n, word, "")
	},
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, page := range []string{IndexPage, DetailPage, ResultsPage} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

// Render executes a page into a buffer and writes it with the given status.
// Nothing is written if execution fails.
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := buf.WriteTo(w)
	return err
}
