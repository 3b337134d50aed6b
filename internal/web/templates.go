package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = []string{
	"index",
	"group_list",
	"profile",
	"post_detail",
	"post_form",
	"follow",
	"login",
	"signup",
	"notfound",
}

// Renderer holds one parsed template tree per page, each sharing the base
// layout and its partials.
type Renderer struct {
	templates map[string]*template.Template
}

func (r *Renderer) Init(_ context.Context) error {
	r.templates = map[string]*template.Template{}

	for _, name := range pageTemplates {
		tmpl, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return nil
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template: %s", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
