package server

import (
	"github.com/labstack/echo/v4"

	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/middleware"
	"github.com/esti34/capsule/web"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(s.Cfg.GetLoginRatePerMinute())

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E.GET("/", s.homeHandler.HomeGet)
	s.E.GET("/health", s.homeHandler.Health)
	s.E.POST("/language", s.languageHandler.LanguagePost)

	auth := s.E.Group("/auth")
	auth.GET("/login", s.authHandler.Show(authflow.ModeLogin), middleware.RequireGuest)
	auth.GET("/register", s.authHandler.Show(authflow.ModeRegister), middleware.RequireGuest)
	auth.GET("/forgot-password", s.authHandler.Show(authflow.ModeForgotPassword), middleware.RequireGuest)
	auth.POST("/login", s.authHandler.LoginPost, rateLimiter)
	auth.POST("/register", s.authHandler.RegisterPost, rateLimiter)
	auth.POST("/forgot-password", s.authHandler.ForgotPasswordPost, rateLimiter)
	auth.POST("/logout", s.authHandler.Logout)

	s.E.GET("/dashboard", s.dashboardHandler.DashboardGet, middleware.RequireAuth)
}
