package handlers

import (
	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/esti34/capsule/internal/middleware"
	"github.com/esti34/capsule/internal/view"
	"github.com/esti34/capsule/web/src/templates/layouts"
)

// renderPage wraps content in the base layout for the request language and
// consumes the pending flash messages.
func renderPage(c echo.Context, status int, title string, wide bool, content cmp.Node) error {
	meta := layouts.Meta{
		Title: title,
		Lang:  middleware.LanguageFrom(c),
		T:     middleware.PrinterFrom(c),
		Path:  c.Request().URL.RequestURI(),
		Wide:  wide,
	}
	page := layouts.Base(meta, view.GetFlashData(c), view.AdaptGomponentToTempl(content))
	return c.Render(status, "", page)
}
