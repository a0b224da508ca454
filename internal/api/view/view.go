// Package view renders the embedded server-side templates.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"netsecurepro/internal/api/middleware"
	"netsecurepro/internal/domain/model"
	"netsecurepro/web"
)

// Data is the payload every template executes against.
type Data struct {
	Title   string
	User    *model.User
	Flashes []Flash
	Data    any
}

type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page template against the shared layout.
func New() (*Renderer, error) {
	pages, err := fs.Glob(web.FS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(web.FS, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[path.Base(page)] = t
	}

	return &Renderer{templates: templates}, nil
}

// Render writes a page with the given status. The current user and any
// pending flash messages are picked up from the request; extra flashes are
// shown on this response without a redirect round-trip.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, payload any, flashes ...Flash) {
	t, ok := rn.templates[page]
	if !ok {
		slog.Error("unknown template", "template", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user, _ := middleware.CurrentUser(r.Context())
	data := &Data{
		Title:   title,
		User:    user,
		Flashes: append(PopFlashes(w, r), flashes...),
		Data:    payload,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template render failed", "template", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
