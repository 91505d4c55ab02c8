// Package render turns page views into HTML through html/template. Every
// page is parsed together with the shared layout at startup.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ecoagua/storefront/internal/core/domain"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Renderer.Render.
const (
	PageIndex    = "index"
	PageProducts = "products"
	PageCart     = "cart"
	PageLogin    = "login"
	PageRegister = "register"
	PageContact  = "contact"
	PageAbout    = "about"
	PagePost     = "post"
)

var pages = []string{
	PageIndex, PageProducts, PageCart, PageLogin,
	PageRegister, PageContact, PageAbout, PagePost,
}

// View is the data handed to every template.
type View struct {
	Title     string
	User      *domain.SessionUser
	CartCount int
	Year      int

	Products []domain.Product
	Lines    []domain.CartLine
	Total    decimal.Decimal
	Message  *domain.Message

	// Error and Form back the login and registration forms.
	Error string
	Form  map[string]string
}

// NewView fills the fields every page shows in its header.
func NewView(title string, sess *domain.Session) View {
	v := View{Title: title, Year: time.Now().Year()}
	if sess != nil {
		v.User = sess.User
		v.CartCount = sess.Cart.ItemCount()
	}
	return v
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
