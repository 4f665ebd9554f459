package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page names accepted by the renderer.
const (
	pageLogin    = "login"
	pageRegister = "register"
	pageOrders   = "orders"
	pageProducts = "products"
	pageConfirm  = "confirm"
)

const (
	layoutAuth  = "auth_layout"
	layoutShell = "shell"
)

var pageLayouts = map[string]string{
	pageLogin:    layoutAuth,
	pageRegister: layoutAuth,
	pageOrders:   layoutShell,
	pageProducts: layoutShell,
	pageConfirm:  layoutShell,
}

// Renderer is a gin HTMLRender that gives every page its own template set made
// of the shared components, the page's layout and the page itself, so pages can
// all define "content" without clashing.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageLayouts))}
	for page, layout := range pageLayouts {
		tmpl, err := template.New(page).Funcs(templateFuncs()).ParseFS(templateFS,
			"templates/components.tmpl",
			"templates/"+layout+".tmpl",
			"templates/"+page+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: r.pages[name],
		Name:     pageLayouts[name],
		Data:     data,
	}
}

// Field feeds the form_input component.
type Field struct {
	Label       string
	Name        string
	Type        string
	Placeholder string
	Value       string
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
		"field": func(label, name, typ, placeholder, value string) Field {
			return Field{Label: label, Name: name, Type: typ, Placeholder: placeholder, Value: value}
		},
	}
}

var _ render.HTMLRender = (*Renderer)(nil)
