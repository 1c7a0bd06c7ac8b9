package view

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/esti34/capsule/internal/authflow"
)

const (
	formSessionName = "auth-form"
	formStateKey    = "state"
)

// LoadFormState returns the auth form state saved for this browser, or a fresh
// login state.
func LoadFormState(c echo.Context) authflow.State {
	st := authflow.State{Mode: authflow.ModeLogin}
	sess, _ := session.Get(formSessionName, c)
	if sess == nil {
		return st
	}
	raw, ok := sess.Values[formStateKey].(string)
	if !ok {
		return st
	}
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		c.Logger().Warnf("discarding unreadable form state: %v", err)
		return authflow.State{Mode: authflow.ModeLogin}
	}
	return st
}

// SaveFormState stores st for the next request. Passwords never leave the
// server.
func SaveFormState(c echo.Context, st authflow.State) error {
	st.Fields = st.Fields.WithoutSecrets()
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode form state: %w", err)
	}
	sess, err := formSession(c)
	if err != nil {
		return err
	}
	sess.Values[formStateKey] = string(data)
	return sess.Save(c.Request(), c.Response())
}

// ClearFormState forgets the saved form state.
func ClearFormState(c echo.Context) error {
	sess, err := formSession(c)
	if err != nil {
		return err
	}
	delete(sess.Values, formStateKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

func formSession(c echo.Context) (*sessions.Session, error) {
	sess, err := session.Get(formSessionName, c)
	if sess == nil {
		return nil, fmt.Errorf("load form state: %w", err)
	}
	// Browser-session cookie scoped to /auth. The rest (Secure, SameSite)
	// comes from the store.
	opts := sessions.Options{HttpOnly: true}
	if sess.Options != nil {
		opts = *sess.Options
	}
	opts.Path = "/auth"
	opts.MaxAge = 0
	opts.HttpOnly = true
	sess.Options = &opts
	return sess, nil
}
