package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esti34/capsule/internal/app"
	"github.com/esti34/capsule/internal/session"
	"github.com/esti34/capsule/internal/testutils"
)

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	// --- Setup ---
	e := echo.New()

	// 1. Capture log output
	// We temporarily redirect slog's output to a buffer to inspect it.
	var logBuffer bytes.Buffer
	handler := slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{
		AddSource: true,
	})
	logger := slog.New(handler)
	originalLogger := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(originalLogger)

	// 2. Set up the error handler we want to test
	setupErrorHandling(e)

	// 3. Define routes that produce an unhandled error and a deliberate one
	e.GET("/test-unhandled-error", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})
	e.GET("/test-http-error", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad input")
	})

	// --- Act ---
	req := httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// --- Assert ---
	require.Equal(t, http.StatusInternalServerError, rec.Code, "Expected a 500 Internal Server Error response")

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)", "Log message should indicate an unhandled error")
	assert.Contains(t, logOutput, "error=\"a deliberate unhandled error occurred\"", "Log should contain the original error message")
	assert.Contains(t, logOutput, "stack_trace=", "Log must contain the stack_trace field")
	assert.Contains(t, logOutput, "runtime/debug/stack.go", "Stack trace should originate from the debug package")
	assert.Contains(t, logOutput, "internal/server/server_test.go", "Stack trace should point back to this test file")

	logBuffer.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test-http-error", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, logBuffer.String(), "HTTP errors are not logged as unhandled")
}

func newTestServer(t *testing.T, env map[string]string) *Server {
	t.Helper()
	cfg := testutils.ConfigForTests(t, env)

	i := app.New(app.Dependencies{Config: cfg, Fs: afero.NewMemMapFs(), LogOutput: &bytes.Buffer{}})
	s, err := New(i)
	require.NoError(t, err)
	s.RegisterRoutes()
	return s
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name     string
		path     string
		status   int
		location string
	}{
		{name: "root sends guests to login", path: "/", status: http.StatusSeeOther, location: "/auth/login"},
		{name: "dashboard requires a token", path: "/dashboard", status: http.StatusSeeOther, location: "/auth/login"},
		{name: "login form", path: "/auth/login", status: http.StatusOK},
		{name: "register form", path: "/auth/register", status: http.StatusOK},
		{name: "forgot password form", path: "/auth/forgot-password", status: http.StatusOK},
		{name: "stylesheet", path: "/static/css/app.css", status: http.StatusOK},
		{name: "health", path: "/health", status: http.StatusOK},
		{name: "unknown", path: "/nope", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get(echo.HeaderLocation))
			}
			assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
		})
	}
}

func TestRoutes_AuthPostsAreRateLimited(t *testing.T) {
	s := newTestServer(t, map[string]string{"LOGIN_RATE_PER_MINUTE": "2"})

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", strings.NewReader(url.Values{"email": {"bad"}}.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		s.E.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusSeeOther, post())
	assert.Equal(t, http.StatusSeeOther, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}

func TestStart_StopsWithContext(t *testing.T) {
	s := newTestServer(t, map[string]string{"SERVER_ADDR": "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestLoginAgainstBackend(t *testing.T) {
	api := testutils.NewAuthBackend(t)
	s := newTestServer(t, map[string]string{"API_BASE_URL": api.URL})

	form := url.Values{
		"email":    {testutils.DefaultUser.Email},
		"password": {testutils.DefaultUser.Password},
		"remember": {"true"},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, api.Calls())

	var durable *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DurableKey {
			durable = c
		}
	}
	require.NotNil(t, durable, "remembered login sets the durable cookie")

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	rec = httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), testutils.DefaultUser.Email)
}
