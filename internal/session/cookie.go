package session

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	tokenValueKey = "token"

	// DurableMaxAge is how long a remembered login survives: 30 days.
	DurableMaxAge = 86400 * 30
)

// CookieTier keeps the token in a signed cookie through the echo session
// middleware. A positive maxAge makes the cookie persistent; zero makes it a
// browser-session cookie.
type CookieTier struct {
	c      echo.Context
	name   string
	maxAge int
	secure bool
}

// CookieTiers returns the durable and ephemeral tiers for one request.
func CookieTiers(c echo.Context, secure bool) (*CookieTier, *CookieTier) {
	durable := &CookieTier{c: c, name: DurableKey, maxAge: DurableMaxAge, secure: secure}
	ephemeral := &CookieTier{c: c, name: EphemeralKey, maxAge: 0, secure: secure}
	return durable, ephemeral
}

// NewRequestStore builds the Store for the browser that sent the request.
func NewRequestStore(c echo.Context, secure bool) *Store {
	durable, ephemeral := CookieTiers(c, secure)
	return NewStore(durable, ephemeral)
}

func (t *CookieTier) get() (*sessions.Session, error) {
	sess, err := echosession.Get(t.name, t.c)
	if sess == nil {
		return nil, fmt.Errorf("load cookie %s: %w", t.name, err)
	}
	if err != nil {
		// The store hands back a fresh session when the cookie cannot be decoded
		// (e.g. after a secret rotation); continue with it.
		slog.Debug("Discarding unreadable session cookie", "cookie", t.name, "error", err)
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   t.maxAge,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	}
	return sess, nil
}

func (t *CookieTier) Load() (string, error) {
	sess, err := t.get()
	if err != nil {
		return "", err
	}
	token, _ := sess.Values[tokenValueKey].(string)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (t *CookieTier) Save(token string) error {
	sess, err := t.get()
	if err != nil {
		return err
	}
	sess.Values[tokenValueKey] = token
	return sess.Save(t.c.Request(), t.c.Response())
}

func (t *CookieTier) Clear() error {
	sess, err := t.get()
	if err != nil {
		return err
	}
	delete(sess.Values, tokenValueKey)
	// A negative MaxAge tells the browser to drop the cookie immediately.
	sess.Options.MaxAge = -1
	return sess.Save(t.c.Request(), t.c.Response())
}
