package server

import (
	"crypto/sha512"
	"net/http"

	"github.com/gorilla/sessions"

	appmiddleware "github.com/esti34/capsule/internal/middleware"
)

// defaultCookieMaxAge applies to sessions that do not set their own options.
const defaultCookieMaxAge = 86400 * 7

// cookieKeys derives the signing key and the AES-256 encryption key from the
// session secret.
func cookieKeys(secret string) (hashKey, blockKey []byte) {
	sum := sha512.Sum512([]byte(secret))
	return sum[:32], sum[32:]
}

// newCookieStore returns the store behind every named session. Cookies are
// signed and encrypted, so the form state never shows the visitor's details
// in the clear.
func newCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(cookieKeys(secret))
	// The codecs reject cookies older than their MaxAge no matter what the
	// browser was told, so they must allow the longest-lived cookie.
	store.MaxAge(appmiddleware.LanguageMaxAge)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   defaultCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
