// Package authflow drives the login, registration and password-reset forms:
// it validates input, calls the API, stores the token and turns every failure
// into a single message for the user.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/esti34/capsule/internal/apiclient"
	"github.com/esti34/capsule/internal/i18n"
	"github.com/esti34/capsule/internal/session"
	"github.com/esti34/capsule/internal/validation"
)

// Message keys shown by the controller. They double as the English text.
const (
	MsgLoginSuccess    = "Logged in successfully!"
	MsgRegisterSuccess = "Registered successfully! Please log in now."
	MsgResetRequested  = "If the email address exists, password reset instructions have been sent to it."
	MsgLoginFailed     = "An error occurred while logging in. Please try again."
	MsgRegisterFailed  = "An error occurred while registering. Please try again."
	MsgResetFailed     = "An error occurred while sending the password reset request."

	// MsgRequestInFlight is for front ends reporting ErrSubmissionInFlight.
	MsgRequestInFlight = "A request is already in progress."
)

var (
	// ErrInvalidForm means validation failed and nothing was sent.
	ErrInvalidForm = errors.New("form is not valid")
	// ErrSubmissionInFlight means another submission has not finished yet.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrRequestFailed wraps every failure after validation passed.
	ErrRequestFailed = errors.New("request failed")
)

// AuthAPI is the part of the remote API the controller needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*apiclient.AuthResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) error
	RequestPasswordReset(ctx context.Context, email string) error
}

// Controller owns the state of the auth forms. All methods are safe for
// concurrent use; the network call runs without holding the lock.
type Controller struct {
	api       AuthAPI
	store     *session.Store
	validator *validation.Validator
	t         i18n.Translator
	logger    *slog.Logger
	onLogin   func(*apiclient.AuthResponse)

	mu    sync.Mutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithTranslator sets the language messages are produced in. The default
// prints the English keys.
func WithTranslator(t i18n.Translator) Option {
	return func(c *Controller) { c.t = t }
}

// WithLoginSuccess registers the callback run after a token has been stored.
func WithLoginSuccess(fn func(*apiclient.AuthResponse)) Option {
	return func(c *Controller) { c.onLogin = fn }
}

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithState starts the controller from a saved snapshot. Loading is never
// restored.
func WithState(s State) Option {
	return func(c *Controller) {
		s.Loading = false
		s.ValidationErrors = s.ValidationErrors.Clone()
		c.state = s
	}
}

// NewController creates a controller in login mode.
func NewController(api AuthAPI, store *session.Store, v *validation.Validator, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		store:     store,
		validator: v,
		t:         message.NewPrinter(language.English),
		logger:    slog.Default(),
		state:     State{Mode: ModeLogin, ValidationErrors: validation.Errors{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.ValidationErrors = s.ValidationErrors.Clone()
	return s
}

// SetFields replaces the field values. Messages are left alone.
func (c *Controller) SetFields(f Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Fields = f
}

// SwitchMode shows another form. Error, success and validation messages are
// cleared; field values carry over.
func (c *Controller) SwitchMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Mode = m
	c.state.Error = ""
	c.state.Success = ""
	c.state.ValidationErrors = validation.Errors{}
}

// SubmitLogin validates the login form, signs in and stores the token in the
// tier chosen by Fields.Remember.
func (c *Controller) SubmitLogin(ctx context.Context) error {
	fields, err := c.begin(func(f Fields) (validation.Errors, bool) {
		return c.validator.Login(c.t, validation.LoginForm{Email: f.Email, Password: f.Password})
	})
	if err != nil {
		return err
	}
	defer c.finish()

	resp, err := c.api.Login(ctx, fields.Email, fields.Password)
	if err == nil && resp.AccessToken == "" {
		err = errors.New("login response carried no access token")
	}
	if err != nil {
		return c.fail("login", err, MsgLoginFailed)
	}
	if err := c.store.Login(resp.AccessToken, fields.Remember); err != nil {
		return c.fail("login", err, MsgLoginFailed)
	}

	c.mu.Lock()
	c.state.Success = c.t.Sprintf(MsgLoginSuccess)
	c.mu.Unlock()
	c.logger.Info("User logged in", "email", fields.Email, "remember", fields.Remember)

	if c.onLogin != nil {
		c.onLogin(resp)
	}
	return nil
}

// SubmitRegister validates the registration form and creates the account.
// On success the controller moves to login mode and keeps the success message.
func (c *Controller) SubmitRegister(ctx context.Context) error {
	fields, err := c.begin(func(f Fields) (validation.Errors, bool) {
		return c.validator.Register(c.t, validation.RegisterForm{
			FirstName:       f.FirstName,
			LastName:        f.LastName,
			Email:           f.Email,
			NationalID:      f.NationalID,
			Password:        f.Password,
			ConfirmPassword: f.ConfirmPassword,
		})
	})
	if err != nil {
		return err
	}
	defer c.finish()

	err = c.api.Register(ctx, apiclient.RegisterRequest{
		Email:      fields.Email,
		Password:   fields.Password,
		FirstName:  fields.FirstName,
		LastName:   fields.LastName,
		NationalID: fields.NationalID,
	})
	if err != nil {
		return c.fail("register", err, MsgRegisterFailed)
	}

	c.mu.Lock()
	c.state.Mode = ModeLogin
	c.state.ValidationErrors = validation.Errors{}
	c.state.Success = c.t.Sprintf(MsgRegisterSuccess)
	c.mu.Unlock()
	c.logger.Info("User registered", "email", fields.Email)
	return nil
}

// SubmitForgotPassword validates the email and requests reset instructions.
// The success message is the same whether or not the account exists.
func (c *Controller) SubmitForgotPassword(ctx context.Context) error {
	fields, err := c.begin(func(f Fields) (validation.Errors, bool) {
		return c.validator.ForgotPassword(c.t, validation.ForgotPasswordForm{Email: f.Email})
	})
	if err != nil {
		return err
	}
	defer c.finish()

	if err := c.api.RequestPasswordReset(ctx, fields.Email); err != nil {
		return c.fail("password reset request", err, MsgResetFailed)
	}

	c.mu.Lock()
	c.state.Success = c.t.Sprintf(MsgResetRequested)
	c.mu.Unlock()
	return nil
}

// begin runs validation and marks the controller as loading. It returns the
// fields to submit, or an error when nothing should be sent.
func (c *Controller) begin(validate func(Fields) (validation.Errors, bool)) (Fields, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Loading {
		return Fields{}, ErrSubmissionInFlight
	}

	errs, ok := validate(c.state.Fields)
	c.state.ValidationErrors = errs
	if !ok {
		return Fields{}, ErrInvalidForm
	}

	c.state.Loading = true
	c.state.Error = ""
	c.state.Success = ""
	return c.state.Fields, nil
}

func (c *Controller) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
}

func (c *Controller) fail(op string, err error, fallback string) error {
	msg := NormalizeError(err, c.t.Sprintf(fallback))
	c.mu.Lock()
	c.state.Error = msg
	c.mu.Unlock()

	c.logger.Warn("Auth request failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w: %w", op, ErrRequestFailed, err)
}
