package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esti34/capsule/internal/apiclient"
	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/middleware"
	"github.com/esti34/capsule/internal/validation"
	"github.com/esti34/capsule/internal/view"
	"github.com/esti34/capsule/internal/view/dto/auth"
	"github.com/esti34/capsule/web/src/templates/pages"
)

// MsgLoggedOut is flashed after logout.
const MsgLoggedOut = "You have been logged out."

// AuthHandler serves the login, registration and password-reset forms. The
// form state lives in a cookie between requests; each request runs a fresh
// auth flow controller over it.
type AuthHandler struct {
	api       authflow.AuthAPI
	validator *validation.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(api authflow.AuthAPI, v *validation.Validator) *AuthHandler {
	return &AuthHandler{api: api, validator: v}
}

// modePath is the GET route showing the form for m.
func modePath(m authflow.Mode) string {
	return "/auth/" + m.String()
}

func (h *AuthHandler) controller(c echo.Context, st authflow.State) *authflow.Controller {
	return authflow.NewController(h.api, middleware.StoreFrom(c), h.validator,
		authflow.WithState(st),
		authflow.WithTranslator(middleware.PrinterFrom(c)),
		authflow.WithLogger(middleware.FromContext(c.Request().Context())),
		authflow.WithLoginSuccess(func(resp *apiclient.AuthResponse) {
			middleware.FromContext(c.Request().Context()).Debug("Token stored", "user_id", resp.User.ID)
		}),
	)
}

// Show renders the form for mode (GET /auth/login, /auth/register,
// /auth/forgot-password). Messages are kept when the saved state is already
// in that mode, so a registration success survives the redirect to login.
func (h *AuthHandler) Show(mode authflow.Mode) echo.HandlerFunc {
	return func(c echo.Context) error {
		st := view.LoadFormState(c)
		if st.Mode != mode {
			ctrl := h.controller(c, st)
			ctrl.SwitchMode(mode)
			st = ctrl.State()
			if err := view.SaveFormState(c, st); err != nil {
				return err
			}
		}
		data := auth.FormData{State: st, T: middleware.PrinterFrom(c)}
		return renderPage(c, http.StatusOK, pages.AuthTitle(st.Mode), false, pages.Auth(data))
	}
}

// LoginPost handles POST /auth/login.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	return h.submit(c, authflow.ModeLogin, (*authflow.Controller).SubmitLogin)
}

// RegisterPost handles POST /auth/register.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	return h.submit(c, authflow.ModeRegister, (*authflow.Controller).SubmitRegister)
}

// ForgotPasswordPost handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPasswordPost(c echo.Context) error {
	return h.submit(c, authflow.ModeForgotPassword, (*authflow.Controller).SubmitForgotPassword)
}

type submitFunc func(*authflow.Controller, context.Context) error

// submit runs one form submission and redirects (post/redirect/get) to the
// form the controller ended up in, or to the dashboard after a login.
func (h *AuthHandler) submit(c echo.Context, mode authflow.Mode, run submitFunc) error {
	var req AuthFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	ctrl := h.controller(c, view.LoadFormState(c))
	if ctrl.State().Mode != mode {
		ctrl.SwitchMode(mode)
	}
	ctrl.SetFields(req.Fields())

	logger := middleware.FromContext(c.Request().Context())
	err := run(ctrl, c.Request().Context())
	st := ctrl.State()

	switch {
	case err == nil && mode == authflow.ModeLogin:
		if err := view.ClearFormState(c); err != nil {
			logger.Warn("Failed to clear form state", "error", err)
		}
		view.SetFlashSuccess(c, st.Success)
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	case err == nil, errors.Is(err, authflow.ErrInvalidForm):
	case errors.Is(err, authflow.ErrRequestFailed):
		logger.Warn("Auth request failed", "mode", mode, "error", err)
	default:
		return err
	}

	if err := view.SaveFormState(c, st); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, modePath(st.Mode))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := middleware.StoreFrom(c).Logout(); err != nil {
		return err
	}
	if err := view.ClearFormState(c); err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Failed to clear form state", "error", err)
	}
	view.SetFlashSuccess(c, middleware.PrinterFrom(c).Sprintf(MsgLoggedOut))
	return c.Redirect(http.StatusSeeOther, modePath(authflow.ModeLogin))
}
