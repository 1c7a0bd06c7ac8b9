// Package testutils holds helpers shared by the package tests: configuration
// and a fake authentication API.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"

	"github.com/esti34/capsule/internal/config"
)

// ConfigForTests builds a Config from the defaults, the optional .env.test at
// the project root and then overrides, in that order of precedence (lowest
// first). Variables are set with t.Setenv, so they are restored afterwards.
func ConfigForTests(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()

	if root, ok := projectRoot(); ok {
		envFile := filepath.Join(root, ".env.test")
		if _, err := os.Stat(envFile); err == nil {
			env, err := godotenv.Read(envFile)
			if err != nil {
				t.Fatalf("failed to load .env.test file: %v", err)
			}
			for key, value := range env {
				t.Setenv(key, value)
			}
		}
	}

	for key, value := range overrides {
		t.Setenv(key, value)
	}

	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return cfg
}

// projectRoot walks up from the working directory to the go.mod.
func projectRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}
