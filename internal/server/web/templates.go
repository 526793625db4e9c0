package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds the parsed page templates. Each page is parsed together
// with the shared layout so its "content" block fills the layout.
type Templates struct {
	pages map[string]*template.Template
}

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*Templates, error) {
	pages := map[string]*template.Template{}

	for _, page := range []string{"signup", "login"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", page, err)
		}
		pages[page] = t
	}

	// The landing page is the bare layout with its default content block.
	t, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing layout template: %w", err)
	}
	pages["landing"] = t

	return &Templates{pages: pages}, nil
}

// Render executes the named page into w. Callers that must not emit a
// partial response render into a buffer and copy it out on success.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("error rendering page %s: %w", page, err)
	}

	return nil
}
