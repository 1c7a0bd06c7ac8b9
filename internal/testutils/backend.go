package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/esti34/capsule/internal/apiclient"
)

// AuthBackend is an in-process stand-in for the authentication API. Login
// accepts only User's credentials and issues an HS256 JWT whose subject is the
// email.
type AuthBackend struct {
	*httptest.Server
	User     TestUser
	TokenTTL time.Duration

	calls atomic.Int32

	mu         sync.Mutex
	registered []map[string]any
	resets     []string
}

// NewAuthBackend starts a backend for DefaultUser; it is closed with the test.
func NewAuthBackend(t *testing.T) *AuthBackend {
	t.Helper()
	b := &AuthBackend{User: DefaultUser, TokenTTL: time.Hour}

	mux := http.NewServeMux()
	mux.HandleFunc(apiclient.LoginPath, b.login)
	mux.HandleFunc(apiclient.RegisterPath, b.register)
	mux.HandleFunc(apiclient.ResetRequestPath, b.resetRequest)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

// Calls is the number of API requests received.
func (b *AuthBackend) Calls() int { return int(b.calls.Load()) }

// Registered returns the decoded registration bodies.
func (b *AuthBackend) Registered() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.registered...)
}

// Resets returns the emails passed to the reset endpoint.
func (b *AuthBackend) Resets() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.resets...)
}

func (b *AuthBackend) login(w http.ResponseWriter, r *http.Request) {
	b.calls.Add(1)
	w.Header().Set("Content-Type", "application/json")
	if r.FormValue("username") != b.User.Email || r.FormValue("password") != b.User.Password {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
		return
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   b.User.Email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(b.TokenTTL)),
	}).SignedString([]byte("test-signing-key"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user": map[string]any{
			"id":         b.User.ID,
			"email":      b.User.Email,
			"first_name": b.User.FirstName,
			"last_name":  b.User.LastName,
		},
	})
}

func (b *AuthBackend) register(w http.ResponseWriter, r *http.Request) {
	b.calls.Add(1)
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"msg":"body is not valid JSON"}]}`)
		return
	}
	if body["email"] == b.User.Email {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Email already registered"}`)
		return
	}
	b.mu.Lock()
	b.registered = append(b.registered, body)
	b.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
}

func (b *AuthBackend) resetRequest(w http.ResponseWriter, r *http.Request) {
	b.calls.Add(1)
	var body struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	b.resets = append(b.resets, body.Email)
	b.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}
