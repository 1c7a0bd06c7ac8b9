// Package app assembles the services shared by the web server and the CLI.
package app

import (
	"io"
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"

	"github.com/esti34/capsule/internal/apiclient"
	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/config"
	"github.com/esti34/capsule/internal/i18n"
	"github.com/esti34/capsule/internal/logging"
	"github.com/esti34/capsule/internal/session"
	"github.com/esti34/capsule/internal/validation"
)

// Dependencies are the inputs that differ between binaries and tests.
type Dependencies struct {
	Config config.Provider
	// Fs backs the CLI's token files.
	Fs afero.Fs
	// LogOutput receives the structured log. The server logs to stdout, the
	// CLI to stderr.
	LogOutput io.Writer
}

// New registers every service lazily; nothing is built until it is invoked.
func New(deps Dependencies) *do.RootScope {
	i := do.New()

	do.ProvideValue[config.Provider](i, deps.Config)
	do.ProvideValue[afero.Fs](i, deps.Fs)

	do.Provide(i, func(i do.Injector) (*slog.Logger, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return logging.NewWithWriter(deps.LogOutput, cfg.GetLogFormat(), cfg.GetLogLevel()), nil
	})

	do.Provide(i, func(i do.Injector) (*i18n.Bundle, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return i18n.NewBundle(cfg.GetDefaultLanguage(), cfg.GetLocalesDir())
	})

	do.Provide(i, func(i do.Injector) (*apiclient.Client, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return apiclient.New(cfg.GetAPIBaseURL()), nil
	})

	do.Provide(i, func(i do.Injector) (authflow.AuthAPI, error) {
		client, err := do.Invoke[*apiclient.Client](i)
		if err != nil {
			return nil, err
		}
		return client, nil
	})

	do.Provide(i, func(do.Injector) (*validation.Validator, error) {
		return validation.New(), nil
	})

	// The token store on disk. The web server keeps its tiers in cookies and
	// never resolves this.
	do.Provide(i, func(i do.Injector) (*session.Store, error) {
		cfg := do.MustInvoke[config.Provider](i)
		durable, ephemeral, err := session.FileTiers(do.MustInvoke[afero.Fs](i), cfg.GetTokenDir())
		if err != nil {
			return nil, err
		}
		return session.NewStore(durable, ephemeral), nil
	})

	return i
}
