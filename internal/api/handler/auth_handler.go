package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoagua/storefront/internal/api/middleware"
	"github.com/ecoagua/storefront/internal/api/render"
	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/ports"
)

const loginFailedMessage = "Invalid email or password."

type AuthHandler struct {
	authService ports.AuthService
	cookie      middleware.CookieConfig
	logoutMode  domain.LogoutMode
}

func NewAuthHandler(authService ports.AuthService, cookie middleware.CookieConfig, logoutMode domain.LogoutMode) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, logoutMode: logoutMode}
}

// RegisterForm renders the registration page.
//
// @Summary      Registration form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, render.PageRegister, render.NewView("Register", sess))
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Display name"
// @Param        email     formData  string  true  "Email address"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      400
// @Failure      409
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return h.renderRegister(c, sess, http.StatusBadRequest, req, "Invalid form submission.")
	}
	if err := c.Validate(&req); err != nil {
		return h.renderRegister(c, sess, http.StatusBadRequest, req, err.Error())
	}

	_, err = h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		return c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, domain.ErrDuplicateEmail):
		return h.renderRegister(c, sess, http.StatusConflict, req, "An account with that email already exists.")
	case errors.Is(err, domain.ErrPasswordTooLong):
		return h.renderRegister(c, sess, http.StatusBadRequest, req, fmt.Sprintf("Password must be at most %d bytes.", domain.MaxPasswordBytes))
	case errors.Is(err, domain.ErrInvalidInput):
		return h.renderRegister(c, sess, http.StatusBadRequest, req, "Username, email and password are required.")
	default:
		return err
	}
}

// LoginForm renders the login page.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, render.PageLogin, render.NewView("Log in", sess))
}

// Login authenticates a user and binds them to the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email     formData  string  true  "Email address"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      401
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.renderLogin(c, sess, http.StatusBadRequest, req.Email, "Invalid form submission.")
	}
	if err := c.Validate(&req); err != nil {
		return h.renderLogin(c, sess, http.StatusUnauthorized, req.Email, loginFailedMessage)
	}

	_, err = h.authService.Login(c.Request().Context(), sess, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidCredentials):
		return h.renderLogin(c, sess, http.StatusUnauthorized, req.Email, loginFailedMessage)
	default:
		return err
	}

	// Login rotates the session id.
	if err := middleware.SetSessionCookie(c, h.cookie, sess.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout ends the authenticated session.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), sess); err != nil {
		return err
	}
	if h.logoutMode == domain.LogoutDestroy {
		middleware.ClearSessionCookie(c, h.cookie)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) renderRegister(c echo.Context, sess *domain.Session, status int, req registerRequest, msg string) error {
	v := render.NewView("Register", sess)
	v.Error = msg
	v.Form = map[string]string{"username": req.Username, "email": req.Email}
	return c.Render(status, render.PageRegister, v)
}

func (h *AuthHandler) renderLogin(c echo.Context, sess *domain.Session, status int, email, msg string) error {
	v := render.NewView("Log in", sess)
	v.Error = msg
	v.Form = map[string]string{"email": email}
	return c.Render(status, render.PageLogin, v)
}
