package routes

import (
	"net/http"

	"github.com/templui/deskboard/internal/app"
	"github.com/templui/deskboard/internal/handler"
	"github.com/templui/deskboard/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	account := handler.NewAccountHandler(app.AuthService, app.UserService)
	files := handler.NewFileHandler(app.FileService)
	settings := handler.NewSettingsHandler(app.SettingsService)
	weather := handler.NewWeatherHandler(app.WeatherService)
	system := handler.NewSystemHandler(app.Cfg, app.DB, app.Storage.Name())

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", system.Health)
	mux.HandleFunc("GET /api/debug/config", middleware.RequireAuthIf(app.Cfg.IsProduction(), system.Config))

	// Auth (rate limited)
	rateLimit := middleware.RateLimit(app.AuthLimiter)
	mux.HandleFunc("POST /api/auth/register", rateLimit(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimit(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Files
	mux.HandleFunc("POST /api/upload", middleware.RequireAuth(files.Upload))
	mux.HandleFunc("GET /api/user/files", middleware.RequireAuth(files.List))
	mux.HandleFunc("DELETE /api/user/files", middleware.RequireAuth(files.Delete))
	mux.HandleFunc("GET /api/user/files/{id}/content", middleware.RequireAuth(files.Content))
	mux.HandleFunc("GET /uploads/{userId}/{name}", middleware.RequireAuth(files.Object))

	// Settings
	mux.HandleFunc("GET /api/user/settings", middleware.RequireAuth(settings.Get))
	mux.HandleFunc("PATCH /api/user/settings", middleware.RequireAuth(settings.Update))

	// Account
	mux.HandleFunc("GET /api/user/profile", middleware.RequireAuth(account.Profile))
	mux.HandleFunc("PATCH /api/user/profile", middleware.RequireAuth(account.UpdateProfile))
	mux.HandleFunc("DELETE /api/user", middleware.RequireAuth(account.DeleteAccount))
	mux.HandleFunc("GET /api/user/dashboard", middleware.RequireAuth(account.Dashboard))
	mux.HandleFunc("GET /api/user/analytics", middleware.RequireAuth(account.Analytics))

	// Weather
	mux.HandleFunc("GET /api/weather", middleware.RequireAuth(weather.Current))

	return middleware.Chain(mux,
		middleware.Config(app.Cfg),
		middleware.AuthMiddleware(app.AuthService),
		middleware.RequestLogging,
	)
}
