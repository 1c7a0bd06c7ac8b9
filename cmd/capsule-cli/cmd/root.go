package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/esti34/capsule/internal/app"
	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/config"
	"github.com/esti34/capsule/internal/i18n"
	"github.com/esti34/capsule/internal/session"
	"github.com/esti34/capsule/internal/validation"
)

// BuildFunc creates the service container. Tests swap in one backed by an
// in-memory filesystem.
type BuildFunc func() (*do.RootScope, error)

func defaultBuild() (*do.RootScope, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	return app.New(app.Dependencies{Config: cfg, Fs: afero.NewOsFs(), LogOutput: os.Stderr}), nil
}

// cli carries the state shared by the subcommands of one invocation.
type cli struct {
	build     BuildFunc
	container *do.RootScope
	lang      string
	stdin     *bufio.Reader
}

// NewRootCmd assembles the command tree.
func NewRootCmd(build BuildFunc) *cobra.Command {
	a := &cli{build: build}

	root := &cobra.Command{
		Use:   "capsule-cli",
		Short: "Capsule authentication from the terminal",
		Long: `capsule-cli signs in to, registers with and requests password resets from
the Capsule authentication API. It shares the web shell's validation rules
and messages.

A remembered token is kept in the user config directory (or TOKEN_DIR);
otherwise it lives in the temp directory and does not survive a reboot.

Use "capsule-cli [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.container != nil {
				return nil
			}
			container, err := a.build()
			if err != nil {
				return err
			}
			a.container = container
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.container != nil {
				a.container.Shutdown()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "message language: he, en or ar (default from DEFAULT_LANGUAGE)")

	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(a),
		newRegisterCmd(a),
		newForgotPasswordCmd(a),
		newLogoutCmd(a),
		newStatusCmd(a),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd(defaultBuild).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// printer returns the printer for --lang, or the configured default.
func (a *cli) printer() (*message.Printer, error) {
	bundle, err := do.Invoke[*i18n.Bundle](a.container)
	if err != nil {
		return nil, err
	}
	if a.lang == "" {
		return bundle.Printer(bundle.Fallback().Code), nil
	}
	if _, ok := i18n.Lookup(a.lang); !ok {
		return nil, fmt.Errorf("unsupported language %q", a.lang)
	}
	return bundle.Printer(a.lang), nil
}

func (a *cli) store() (*session.Store, error) {
	return do.Invoke[*session.Store](a.container)
}

// controller builds an auth flow controller over the file token store.
func (a *cli) controller(opts ...authflow.Option) (*authflow.Controller, *message.Printer, error) {
	p, err := a.printer()
	if err != nil {
		return nil, nil, err
	}
	api, err := do.Invoke[authflow.AuthAPI](a.container)
	if err != nil {
		return nil, nil, err
	}
	v, err := do.Invoke[*validation.Validator](a.container)
	if err != nil {
		return nil, nil, err
	}
	store, err := a.store()
	if err != nil {
		return nil, nil, err
	}
	logger, err := do.Invoke[*slog.Logger](a.container)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]authflow.Option{authflow.WithTranslator(p), authflow.WithLogger(logger)}, opts...)
	return authflow.NewController(api, store, v, opts...), p, nil
}
