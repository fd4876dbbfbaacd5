package api

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/hireloop/jobboard/internal/api/handler"
	"github.com/hireloop/jobboard/internal/api/middleware"
	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
	"github.com/hireloop/jobboard/internal/infrastructure/http/handlers"
)

// Services holds the use cases exposed over HTTP.
type Services struct {
	Auth         ports.AuthService
	Profiles     ports.ProfileService
	Jobs         ports.JobService
	Applications ports.ApplicationService
}

// RegisterRoutes mounts the job board API under /api plus the health probes
// and swagger UI on e.
func RegisterRoutes(e *echo.Echo, svc Services, jwtSecret string, checks map[string]handlers.Checker) {
	authHandler := handler.NewAuthHandler(svc.Auth)
	profileHandler := handler.NewProfileHandler(svc.Profiles)
	jobHandler := handler.NewJobHandler(svc.Jobs)
	applicationHandler := handler.NewApplicationHandler(svc.Applications)

	auth := middleware.Auth(jwtSecret)
	employerOnly := middleware.RBAC(domain.RoleEmployer)

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, auth)

	// --- Profiles ---
	api.GET("/candidates/me", profileHandler.GetCandidate, auth)
	api.PUT("/candidates/me", profileHandler.UpdateCandidate, auth)
	api.GET("/employers/me", profileHandler.GetEmployer, auth)
	api.PUT("/employers/me", profileHandler.UpdateEmployer, auth)

	// --- Jobs ---
	// Static segments are registered before :id so they win the match.
	api.GET("/jobs", jobHandler.List)
	api.GET("/jobs/featured", jobHandler.Featured)
	api.GET("/jobs/search", jobHandler.Search)
	api.GET("/jobs/employer/my-jobs", jobHandler.Mine, auth)
	api.GET("/jobs/:id", jobHandler.Get)
	api.POST("/jobs", jobHandler.Create, auth)
	api.PUT("/jobs/:id", jobHandler.Update, auth, employerOnly)
	api.DELETE("/jobs/:id", jobHandler.Delete, auth, employerOnly)
	api.GET("/jobs/:id/applications", applicationHandler.ForJob, auth, employerOnly)

	// --- Applications ---
	api.POST("/applications", applicationHandler.Submit, auth)
	api.GET("/applications/my-applications", applicationHandler.Mine, auth)
	api.PUT("/applications/:id/status", applicationHandler.UpdateStatus, auth, employerOnly)

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(checks).Readiness)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
