package middleware

import (
	"fmt"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/esti34/capsule/internal/i18n"
)

const (
	languageSessionName = "capsule_lang"
	languageValueKey    = "code"
	languageContextKey  = "language"
	printerContextKey   = "printer"
)

// LanguageMaxAge keeps the choice for a year. The cookie store's codecs must
// accept cookies at least this old.
const LanguageMaxAge = 86400 * 365

// Language negotiates the UI language for the request: the stored choice, then
// Accept-Language, then the bundle's fallback. It must run after the
// echo-contrib session middleware.
func Language(bundle *i18n.Bundle) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var preferred string
			if sess, err := echosession.Get(languageSessionName, c); err == nil {
				preferred, _ = sess.Values[languageValueKey].(string)
			}
			lang := bundle.Negotiate(preferred, c.Request().Header.Get("Accept-Language"))

			c.Set(languageContextKey, lang)
			c.Set(printerContextKey, bundle.Printer(lang.Code))
			c.Response().Header().Set("Content-Language", lang.Code)
			return next(c)
		}
	}
}

// LanguageFrom returns the language chosen by the Language middleware.
func LanguageFrom(c echo.Context) i18n.Language {
	if lang, ok := c.Get(languageContextKey).(i18n.Language); ok {
		return lang
	}
	return i18n.Languages[0]
}

// PrinterFrom returns the printer for the request language. Without the
// Language middleware it prints the untranslated keys.
func PrinterFrom(c echo.Context) *message.Printer {
	if p, ok := c.Get(printerContextKey).(*message.Printer); ok {
		return p
	}
	return message.NewPrinter(language.English)
}

// StoreLanguage remembers the visitor's choice in a persistent cookie.
func StoreLanguage(c echo.Context, code string, secureCookies bool) error {
	if _, ok := i18n.Lookup(code); !ok {
		return fmt.Errorf("unsupported language %q", code)
	}
	sess, err := echosession.Get(languageSessionName, c)
	if sess == nil {
		return fmt.Errorf("load language cookie: %w", err)
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   LanguageMaxAge,
		HttpOnly: true,
		Secure:   secureCookies,
	}
	sess.Values[languageValueKey] = code
	return sess.Save(c.Request(), c.Response())
}
