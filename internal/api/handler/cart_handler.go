package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoagua/storefront/internal/api/render"
	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/ports"
)

// CartHandler serves the cart page and the cart mutation forms.
type CartHandler struct {
	cart     ports.CartService
	checkout ports.CheckoutService
}

func NewCartHandler(cart ports.CartService, checkout ports.CheckoutService) *CartHandler {
	return &CartHandler{cart: cart, checkout: checkout}
}

// Show handles GET /cart.
//
// @Summary      Show the session cart
// @Tags         cart
// @Produce      html
// @Success      200
// @Router       /cart [get]
func (h *CartHandler) Show(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, render.PageCart, h.cartView(sess, nil))
}

// Add handles POST /add-to-cart/:id.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       x-www-form-urlencoded
// @Param        id        path      int     true   "Product id"
// @Param        quantity  formData  int     false  "Units to add (default 1)"
// @Success      303
// @Failure      400
// @Failure      404
// @Router       /add-to-cart/{id} [post]
func (h *CartHandler) Add(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	quantity, err := parseQuantity(req.Quantity, 1)
	if err != nil {
		return err
	}

	if err := h.cart.AddItem(c.Request().Context(), sess, productID, quantity); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/products")
}

// Remove handles POST /remove-from-cart/:id.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Param        id  path  int  true  "Product id"
// @Success      303
// @Router       /remove-from-cart/{id} [post]
func (h *CartHandler) Remove(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	if err := h.cart.RemoveItem(c.Request().Context(), sess, productID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// Update handles POST /update-cart/:id.
//
// @Summary      Change the quantity of a cart line
// @Description  A quantity of 0 removes the line. Negative quantities are rejected.
// @Tags         cart
// @Accept       x-www-form-urlencoded
// @Param        id        path      int  true  "Product id"
// @Param        quantity  formData  int  true  "New quantity"
// @Success      303
// @Failure      400
// @Router       /update-cart/{id} [post]
func (h *CartHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	var req updateCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	quantity, err := parseQuantity(req.Quantity, 0)
	if err != nil {
		return err
	}

	if err := h.cart.UpdateQuantity(c.Request().Context(), sess, productID, quantity); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// Checkout handles POST /checkout and renders the cart with the gate's message.
//
// @Summary      Simulate payment for the cart
// @Description  Requires a logged-in session; otherwise the cart is shown with an error message.
// @Tags         cart
// @Produce      html
// @Success      200
// @Router       /checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	res, err := h.checkout.Attempt(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	v := render.NewView("Cart", sess)
	v.Lines = res.Lines
	v.Total = res.Total
	v.Message = &res.Message
	return c.Render(http.StatusOK, render.PageCart, v)
}

func (h *CartHandler) cartView(sess *domain.Session, msg *domain.Message) render.View {
	cart := h.cart.GetCart(sess)
	v := render.NewView("Cart", sess)
	v.Lines = cart.Lines
	v.Total = cart.Total
	v.Message = msg
	return v
}

// bindAndValidate binds the form into req and runs the struct validator.
// Both failures are reported as domain.ErrInvalidInput.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("invalid payload: %w", domain.ErrInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}
