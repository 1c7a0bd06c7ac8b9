package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esti34/capsule/internal/middleware"
)

// HomeHandler handles requests for the root path.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends signed-in users to the dashboard and everyone else to login.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	if middleware.StoreFrom(c).IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Redirect(http.StatusSeeOther, "/auth/login")
}

// Health reports that the server is up, in the negotiated language.
func (h *HomeHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Language: middleware.LanguageFrom(c).Code})
}
