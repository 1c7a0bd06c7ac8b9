package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.GetAPIBaseURL())
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "he", cfg.GetDefaultLanguage())
	assert.Equal(t, 10, cfg.GetLoginRatePerMinute())
	assert.False(t, cfg.GetSecureCookies())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://auth.example.com/")
	t.Setenv("DEFAULT_LANGUAGE", "en")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "3")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.com", cfg.GetAPIBaseURL(), "trailing slash should be trimmed")
	assert.Equal(t, "en", cfg.GetDefaultLanguage())
	assert.True(t, cfg.GetSecureCookies())
	assert.Equal(t, 3, cfg.GetLoginRatePerMinute())
}

func TestParse_Rejects(t *testing.T) {
	t.Run("short session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "short")
		_, err := Parse()
		assert.ErrorContains(t, err, "SESSION_SECRET")
	})

	t.Run("non-positive rate", func(t *testing.T) {
		t.Setenv("LOGIN_RATE_PER_MINUTE", "0")
		_, err := Parse()
		assert.ErrorContains(t, err, "LOGIN_RATE_PER_MINUTE")
	})

	t.Run("malformed bool", func(t *testing.T) {
		t.Setenv("SECURE_COOKIES", "sometimes")
		_, err := Parse()
		assert.Error(t, err)
	})
}
