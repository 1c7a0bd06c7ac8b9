package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esti34/capsule/internal/middleware"
	"github.com/esti34/capsule/internal/session"
	"github.com/esti34/capsule/internal/view"
	"github.com/esti34/capsule/internal/view/dto/dashboard"
	"github.com/esti34/capsule/web/src/templates/pages"
)

// DashboardHandler handles requests for the user dashboard.
type DashboardHandler struct {
	now func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{now: time.Now}
}

// DashboardGet shows the dashboard (GET /dashboard?page=profile|citizenInfo).
// RequireAuth has already checked that a token is stored. A token the API
// marked as expired signs the user out.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	store := middleware.StoreFrom(c)
	logger := middleware.FromContext(c.Request().Context())
	t := middleware.PrinterFrom(c)

	token, _ := store.Token()
	var claims *session.Claims
	if cl, err := session.Inspect(token); err != nil {
		logger.Debug("Token is not a readable JWT", "error", err)
	} else {
		claims = &cl
	}

	if claims != nil && claims.Expired(h.now()) {
		logger.Info("Stored token has expired, signing out", "subject", claims.Subject)
		if err := store.Logout(); err != nil {
			return err
		}
		view.SetFlashError(c, t.Sprintf(MsgLoggedOut))
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	data := dashboard.Data{
		Page:   dashboard.ParsePage(c.QueryParam("page")),
		Claims: claims,
		T:      t,
	}
	return renderPage(c, http.StatusOK, "Dashboard", true, pages.Dashboard(data))
}
