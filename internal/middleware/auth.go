package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esti34/capsule/internal/session"
)

const storeContextKey = "session_store"

// Session builds the request's session.Store over the auth cookies and puts it
// in the echo context. It must run after the echo-contrib session middleware.
func Session(secureCookies bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(storeContextKey, session.NewRequestStore(c, secureCookies))
			return next(c)
		}
	}
}

// StoreFrom returns the store placed by Session.
func StoreFrom(c echo.Context) *session.Store {
	store, ok := c.Get(storeContextKey).(*session.Store)
	if !ok {
		panic("middleware: Session middleware is not installed")
	}
	return store
}

// RequireAuth redirects visitors without a token to the login form.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !StoreFrom(c).IsAuthenticated() {
			return c.Redirect(http.StatusSeeOther, "/auth/login")
		}
		return next(c)
	}
}

// RequireGuest keeps signed-in users away from the auth forms.
func RequireGuest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if StoreFrom(c).IsAuthenticated() {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
		return next(c)
	}
}
