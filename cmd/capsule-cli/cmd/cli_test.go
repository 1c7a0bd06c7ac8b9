package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esti34/capsule/internal/app"
	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/session"
	"github.com/esti34/capsule/internal/testutils"
)

const tokenDir = "/tokens"

// newTestBuild returns a container factory sharing one in-memory filesystem,
// so tokens persist between invocations like they do on disk.
func newTestBuild(t *testing.T, apiURL string) (BuildFunc, afero.Fs) {
	t.Helper()
	cfg := testutils.ConfigForTests(t, map[string]string{
		"API_BASE_URL":     apiURL,
		"TOKEN_DIR":        tokenDir,
		"DEFAULT_LANGUAGE": "en",
	})

	fsys := afero.NewMemMapFs()
	return func() (*do.RootScope, error) {
		return app.New(app.Dependencies{Config: cfg, Fs: fsys, LogOutput: io.Discard}), nil
	}, fsys
}

func run(build BuildFunc, stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(build)
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(func() (*do.RootScope, error) {
		t.Fatal("version must not build the container")
		return nil, nil
	}, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "capsule-cli v0.1.0\n", out)
}

func TestLogin(t *testing.T) {
	t.Run("remembered login writes the durable token", func(t *testing.T) {
		api := testutils.NewAuthBackend(t)
		build, fsys := newTestBuild(t, api.URL)

		out, stderr, err := run(build, "secret1\n", "login", "--email", "dana@example.com", "--remember")
		require.NoError(t, err, stderr)
		assert.Equal(t, "Logged in successfully!\n", out)
		assert.Contains(t, stderr, "dana@example.com (id 7)")

		token, err := afero.ReadFile(fsys, filepath.Join(tokenDir, session.DurableKey))
		require.NoError(t, err)
		claims, err := session.Inspect(string(token))
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", claims.Subject)

		out, _, err = run(build, "", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "Signed in as dana@example.com")
		assert.Contains(t, out, "Session expires at")
	})

	t.Run("email is prompted for", func(t *testing.T) {
		api := testutils.NewAuthBackend(t)
		build, fsys := newTestBuild(t, api.URL)

		_, stderr, err := run(build, "dana@example.com\nsecret1\n", "login")
		require.NoError(t, err, stderr)
		assert.Contains(t, stderr, "Email address: ")
		assert.Contains(t, stderr, "Password: ")

		exists, err := afero.Exists(fsys, filepath.Join(tokenDir, session.DurableKey))
		require.NoError(t, err)
		assert.False(t, exists, "without --remember only the ephemeral tier is written")
	})

	t.Run("server detail is shown", func(t *testing.T) {
		api := testutils.NewAuthBackend(t)
		build, _ := newTestBuild(t, api.URL)

		_, stderr, err := run(build, "wrong-password\n", "login", "--email", "dana@example.com")
		assert.ErrorIs(t, err, authflow.ErrRequestFailed)
		assert.Contains(t, stderr, "Incorrect email or password")

		_, _, err = run(build, "", "status")
		assert.ErrorIs(t, err, errSignedOut)
	})

	t.Run("invalid input never reaches the API", func(t *testing.T) {
		api := testutils.NewAuthBackend(t)
		build, _ := newTestBuild(t, api.URL)

		_, stderr, err := run(build, "123\n", "login", "--email", "not-an-email")
		assert.ErrorIs(t, err, authflow.ErrInvalidForm)
		assert.Contains(t, stderr, "  email: The email address is not valid\n")
		assert.NotContains(t, stderr, "  password:", "login does not check password length")
		assert.Zero(t, api.Calls())

		_, stderr, err = run(build, "\n", "login", "--email", "dana@example.com")
		assert.ErrorIs(t, err, authflow.ErrInvalidForm)
		assert.Contains(t, stderr, "  password: Please enter a password\n")
		assert.Zero(t, api.Calls())
	})

	t.Run("messages follow --lang", func(t *testing.T) {
		api := testutils.NewAuthBackend(t)
		build, _ := newTestBuild(t, api.URL)

		out, _, err := run(build, "secret1\n", "--lang", "he", "login", "--email", "dana@example.com")
		require.NoError(t, err)
		assert.Equal(t, "התחברת בהצלחה!\n", out)

		_, _, err = run(build, "", "--lang", "fr", "status")
		assert.ErrorContains(t, err, `unsupported language "fr"`)
	})
}

func TestRegister(t *testing.T) {
	t.Run("flags and prompted passwords", func(t *testing.T) {
		api := testutils.NewAuthBackend(t)
		build, _ := newTestBuild(t, api.URL)

		out, stderr, err := run(build, "abcdef\nabcdef\n", "register",
			"--email", "noa@example.com", "--first-name", "Noa", "--last-name", "Cohen", "--national-id", "987654321")
		require.NoError(t, err, stderr)
		assert.Equal(t, "Registered successfully! Please log in now.\n", out)

		registered := api.Registered()
		require.Len(t, registered, 1)
		assert.Equal(t, "987654321", registered[0]["national_id"])
		assert.NotContains(t, registered[0], "role_id")

		_, _, err = run(build, "", "status")
		assert.ErrorIs(t, err, errSignedOut, "registering does not sign in")
	})

	t.Run("server rejects a taken email", func(t *testing.T) {
		api := testutils.NewAuthBackend(t)
		build, _ := newTestBuild(t, api.URL)

		_, stderr, err := run(build, "abcdef\nabcdef\n", "register",
			"--email", "dana@example.com", "--first-name", "Dana", "--last-name", "Levi", "--national-id", "123456789")
		assert.ErrorIs(t, err, authflow.ErrRequestFailed)
		assert.Contains(t, stderr, "Email already registered")
	})

	t.Run("everything prompted, mismatched passwords", func(t *testing.T) {
		api := testutils.NewAuthBackend(t)
		build, _ := newTestBuild(t, api.URL)

		_, stderr, err := run(build, "Dana\nLevi\ndana@example.com\n123456789\nabcdef\nabcdee\n", "register")
		assert.ErrorIs(t, err, authflow.ErrInvalidForm)
		assert.Contains(t, stderr, "  confirmPassword: Passwords do not match\n")
		assert.Zero(t, api.Calls())
	})
}

func TestForgotPassword(t *testing.T) {
	api := testutils.NewAuthBackend(t)
	build, _ := newTestBuild(t, api.URL)

	out, _, err := run(build, "", "forgot-password", "--email", "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, authflow.MsgResetRequested+"\n", out)
	assert.Equal(t, []string{"dana@example.com"}, api.Resets())
}

func TestLogout(t *testing.T) {
	api := testutils.NewAuthBackend(t)
	build, fsys := newTestBuild(t, api.URL)

	_, _, err := run(build, "secret1\n", "login", "--email", "dana@example.com", "--remember")
	require.NoError(t, err)

	out, _, err := run(build, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "You have been logged out.\n", out)

	exists, err := afero.Exists(fsys, filepath.Join(tokenDir, session.DurableKey))
	require.NoError(t, err)
	assert.False(t, exists)

	out, _, err = run(build, "", "status")
	assert.ErrorIs(t, err, errSignedOut)
	assert.Equal(t, "Not signed in\n", out)
}
