package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecoagua/storefront/internal/core/domain"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "sid"

	sessionContextKey = "session"
	sidClaim          = "sid"
)

// SessionLoader is the subset of ports.SessionStore the middleware needs.
type SessionLoader interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
}

// CookieConfig controls how the session cookie is signed and issued.
type CookieConfig struct {
	Secret string
	MaxAge time.Duration
	Secure bool
}

// Session resolves the session cookie into a *domain.Session and stores it
// on the echo context. The cookie carries the session id inside an HS256
// token; a missing or forged cookie starts a fresh session with a new id.
func Session(store SessionLoader, cfg CookieConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
				sid, _ = parseSessionToken(cookie.Value, cfg.Secret)
			}

			if sid == "" {
				sess := domain.NewSession(uuid.NewString())
				if err := SetSessionCookie(c, cfg, sess.ID); err != nil {
					return err
				}
				c.Set(sessionContextKey, sess)
				return next(c)
			}

			sess, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				return err
			}
			if sess == nil {
				// Expired or never persisted: keep the id the client already holds.
				sess = domain.NewSession(sid)
			}
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session attached by the Session middleware, or
// nil when the middleware did not run.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

// SetSessionCookie signs id and writes it as the session cookie.
func SetSessionCookie(c echo.Context, cfg CookieConfig, id string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		sidClaim: id,
		"iat":    time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie instructs the browser to drop the session cookie.
func ClearSessionCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func parseSessionToken(raw, secret string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	sid, _ := claims[sidClaim].(string)
	if _, err := uuid.Parse(sid); err != nil {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}
