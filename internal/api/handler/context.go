package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ecoagua/storefront/internal/api/middleware"
	"github.com/ecoagua/storefront/internal/core/domain"
)

// ctxSession returns the session injected by the Session middleware. A
// missing session means the route was registered without the middleware.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	return sess, nil
}

// productIDParam parses the :id path parameter.
func productIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("product id %q: %w", c.Param("id"), domain.ErrInvalidInput)
	}
	return id, nil
}

// parseQuantity converts a validated form value to an int. An empty value
// yields def. Values above domain.MaxLineQuantity are rejected before they
// reach the cart.
func parseQuantity(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	q, err := strconv.Atoi(raw)
	if err != nil || q > domain.MaxLineQuantity {
		return 0, fmt.Errorf("quantity %q: %w", raw, domain.ErrInvalidInput)
	}
	return q, nil
}
