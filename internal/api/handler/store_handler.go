package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoagua/storefront/internal/api/render"
	"github.com/ecoagua/storefront/internal/core/ports"
)

// StoreHandler serves the catalog and the static informational pages.
type StoreHandler struct {
	catalog ports.CatalogService
}

func NewStoreHandler(catalog ports.CatalogService) *StoreHandler {
	return &StoreHandler{catalog: catalog}
}

// Home handles GET /.
//
// @Summary      Landing page
// @Tags         store
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *StoreHandler) Home(c echo.Context) error {
	return h.page(c, render.PageIndex, "EcoAgua")
}

// Products handles GET /products.
//
// @Summary      List the product catalog
// @Tags         store
// @Produce      html
// @Success      200
// @Failure      500
// @Router       /products [get]
func (h *StoreHandler) Products(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}

	v := render.NewView("Products", sess)
	v.Products = products
	return c.Render(http.StatusOK, render.PageProducts, v)
}

// Contact handles GET /contact.
//
// @Summary      Contact page
// @Tags         store
// @Produce      html
// @Success      200
// @Router       /contact [get]
func (h *StoreHandler) Contact(c echo.Context) error {
	return h.page(c, render.PageContact, "Contact")
}

// About handles GET /about.
//
// @Summary      About page
// @Tags         store
// @Produce      html
// @Success      200
// @Router       /about [get]
func (h *StoreHandler) About(c echo.Context) error {
	return h.page(c, render.PageAbout, "About us")
}

// Post handles GET /post.
//
// @Summary      Blog post page
// @Tags         store
// @Produce      html
// @Success      200
// @Router       /post [get]
func (h *StoreHandler) Post(c echo.Context) error {
	return h.page(c, render.PagePost, "Water saving tips")
}

func (h *StoreHandler) page(c echo.Context, name, title string) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, name, render.NewView(title, sess))
}
