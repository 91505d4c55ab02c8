package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ecoagua/storefront/internal/core/domain"
)

type stubCatalog struct {
	products []domain.Product
	err      error
}

func (s *stubCatalog) ListProducts(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func TestStoreHandler_Products(t *testing.T) {
	e := newTestEcho(t)
	h := NewStoreHandler(&stubCatalog{products: []domain.Product{
		{ID: 1, Name: "Rain barrel", Price: decimal.NewFromInt(45)},
		{ID: 2, Name: "Drip kit", Price: decimal.RequireFromString("19.90")},
	}})

	c, rec := formContext(e, http.MethodGet, "/products", nil, domain.NewSession("s1"))
	if err := h.Products(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Rain barrel", "$45.00", "Drip kit", "$19.90", "/add-to-cart/2"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body", want)
		}
	}
}

func TestStoreHandler_Products_StoreError(t *testing.T) {
	e := newTestEcho(t)
	h := NewStoreHandler(&stubCatalog{err: domain.ErrStoreUnavailable})

	c, _ := formContext(e, http.MethodGet, "/products", nil, domain.NewSession("s1"))
	if err := h.Products(c); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestStoreHandler_StaticPages(t *testing.T) {
	e := newTestEcho(t)
	h := NewStoreHandler(&stubCatalog{})

	for path, fn := range map[string]echo.HandlerFunc{
		"/":        h.Home,
		"/contact": h.Contact,
		"/about":   h.About,
		"/post":    h.Post,
	} {
		c, rec := formContext(e, http.MethodGet, path, nil, domain.NewSession("s1"))
		if err := fn(c); err != nil {
			t.Fatalf("%s: handler error: %v", path, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestStoreHandler_MissingSessionMiddleware(t *testing.T) {
	e := newTestEcho(t)
	h := NewStoreHandler(&stubCatalog{})

	c, _ := formContext(e, http.MethodGet, "/", nil, nil)
	if err := h.Home(c); err == nil {
		t.Fatal("expected an error when no session is attached")
	}
}
