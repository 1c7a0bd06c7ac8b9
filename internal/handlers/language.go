package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/esti34/capsule/internal/middleware"
)

// LanguageHandler stores the language picked in the switcher.
type LanguageHandler struct {
	secureCookies bool
}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler(secureCookies bool) *LanguageHandler {
	return &LanguageHandler{secureCookies: secureCookies}
}

// LanguagePost handles POST /language and sends the user back to the page
// they were on. htmx requests get an HX-Redirect so the whole page reloads
// with the new direction.
func (h *LanguageHandler) LanguagePost(c echo.Context) error {
	var req LanguageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "unsupported_language", Message: err.Error()})
	}
	if err := middleware.StoreLanguage(c, req.Lang, h.secureCookies); err != nil {
		return err
	}

	next := localPath(req.Next)
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", next)
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, next)
}

// localPath keeps redirects on this site.
func localPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
