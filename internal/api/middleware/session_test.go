package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ecoagua/storefront/internal/core/domain"
)

const testSID = "7f9c2ba4-e88f-4a2b-9c1d-0b6a1f3e5d21"

type stubLoader struct {
	sessions map[string]*domain.Session
	err      error
	calls    int
}

func (s *stubLoader) Get(_ context.Context, id string) (*domain.Session, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[id], nil
}

func testCookieConfig() CookieConfig {
	return CookieConfig{Secret: "secret", MaxAge: time.Hour}
}

func signedCookie(t *testing.T, secret, sid string) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": sid})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return &http.Cookie{Name: CookieName, Value: signed}
}

func TestSession_NoCookieStartsFreshSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	loader := &stubLoader{}
	var got *domain.Session
	handler := Session(loader, testCookieConfig())(func(c echo.Context) error {
		got = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got == nil || got.ID == "" || !got.IsNew {
		t.Fatalf("expected a new session, got %+v", got)
	}
	if loader.calls != 0 {
		t.Fatalf("store should not be consulted without a cookie")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || !cookies[0].HttpOnly {
		t.Fatalf("expected an http-only session cookie, got %+v", cookies)
	}
	sid, err := parseSessionToken(cookies[0].Value, "secret")
	if err != nil || sid != got.ID {
		t.Fatalf("cookie does not carry the session id: %q %v", sid, err)
	}
}

func TestSession_ValidCookieLoadsStoredSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signedCookie(t, "secret", testSID))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stored := &domain.Session{ID: testSID, User: &domain.SessionUser{ID: "u1", Username: "alice"}}
	loader := &stubLoader{sessions: map[string]*domain.Session{testSID: stored}}

	var got *domain.Session
	handler := Session(loader, testCookieConfig())(func(c echo.Context) error {
		got = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != stored {
		t.Fatalf("expected stored session, got %+v", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("existing session should not be re-issued a cookie")
	}
}

func TestSession_UnknownIDKeepsClientID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signedCookie(t, "secret", testSID))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *domain.Session
	handler := Session(&stubLoader{}, testCookieConfig())(func(c echo.Context) error {
		got = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got == nil || got.ID != testSID || !got.IsNew {
		t.Fatalf("expected new session reusing the cookie id, got %+v", got)
	}
}

func TestSession_ForgedCookieStartsFreshSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signedCookie(t, "other-secret", testSID))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	loader := &stubLoader{}
	var got *domain.Session
	handler := Session(loader, testCookieConfig())(func(c echo.Context) error {
		got = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got == nil || got.ID == testSID {
		t.Fatalf("forged cookie must not select the session, got %+v", got)
	}
	if loader.calls != 0 {
		t.Fatalf("store should not be consulted for a forged cookie")
	}
}

func TestSession_StoreErrorPropagates(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signedCookie(t, "secret", testSID))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	loader := &stubLoader{err: domain.ErrStoreUnavailable}
	handler := Session(loader, testCookieConfig())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestClearSessionCookie(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)

	ClearSessionCookie(c, testCookieConfig())

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie, got %+v", cookies)
	}
}
