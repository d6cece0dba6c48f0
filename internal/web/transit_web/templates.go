package transit_web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer holds one template set per page, each a clone of the shared
// layout, plus the popup fragments.
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout").ParseFS(templatesFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	entries, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	renderer := &Renderer{pages: make(map[string]*template.Template, len(entries))}
	for _, entry := range entries {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templatesFS, entry)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry, err)
		}
		renderer.pages[path.Base(entry)] = page
	}

	fragments, err := template.New("fragments").ParseFS(templatesFS, "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse fragments: %w", err)
	}
	renderer.fragments = fragments

	return renderer, nil
}

func (renderer *Renderer) Render(writer io.Writer, page string, data any) error {
	tmpl, ok := renderer.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}
	return tmpl.ExecuteTemplate(writer, "layout.html", data)
}

func (renderer *Renderer) RenderFragment(name string, data any) (string, error) {
	var out strings.Builder
	if err := renderer.fragments.ExecuteTemplate(&out, name, data); err != nil {
		return "", err
	}
	return out.String(), nil
}

func staticHandler() (http.Handler, error) {
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(assets))), nil
}
