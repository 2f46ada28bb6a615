package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("/health", a.routes.health.HealthCheck)

	// Swagger UI endpoint
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName("accounts")))

	// Prometheus metrics endpoint
	a.mux.Handle("/metrics", promhttp.Handler())

	// Public auth endpoints
	a.mux.HandleFunc("POST /auth/register", a.routes.auth.Register)
	a.mux.HandleFunc("POST /auth/login", a.routes.auth.Login)
	a.mux.HandleFunc("POST /auth/refresh", a.routes.auth.Refresh)

	// Protected endpoints
	a.mux.Handle("POST /auth/logout", a.m.RequireAuthenticated(a.routes.auth.Logout))
	a.mux.Handle("GET /auth/profile", a.m.RequireAuthenticated(a.routes.profile.Get))
	a.mux.Handle("PATCH /auth/profile", a.m.RequireAuthenticated(a.routes.profile.Update))
	a.mux.Handle("POST /auth/change-password", a.m.RequireAuthenticated(a.routes.profile.ChangePassword))
}
