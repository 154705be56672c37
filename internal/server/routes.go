package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"toolhub/internal/approval"
	"toolhub/internal/db"
	"toolhub/internal/email"
	"toolhub/internal/handlers"
	"toolhub/internal/jobs"
	"toolhub/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, workflow *approval.Workflow, notifier *email.Notifier, checker *jobs.HealthChecker) error {
	authMiddleware := middleware.NewAuthMiddleware(database, s.Cfg)

	toolHandler := handlers.NewToolHandler(database, s.Cfg, workflow)
	tagHandler := handlers.NewTagHandler(database, s.Cfg)
	requestHandler := handlers.NewRequestHandler(database, s.Cfg, workflow, notifier)
	userHandler := handlers.NewUserHandler(database, s.Cfg)
	browseHandler := handlers.NewBrowseHandler(database, s.Cfg)
	probeHandler := handlers.NewProbeHandler(database)
	healthHandler := handlers.NewHealthHandler(database, checker)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - OIDC is optional; without it the site is read-only.
	if s.Cfg.OIDCIssuer != "" {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
	}

	// HTML directory pages
	s.App.Get("/", authMiddleware.OptionalAuth, browseHandler.Index)
	s.App.Get("/browse", authMiddleware.OptionalAuth, browseHandler.Index)

	// Public catalog API
	s.App.Get("/api/tools", toolHandler.List)
	s.App.Get("/api/tools/:id", toolHandler.Get)
	s.App.Get("/api/tags", tagHandler.List)
	s.App.Get("/api/tags/:id", tagHandler.Get)

	// Request submission: anonymous submissions are allowed, but attaching
	// the submitter enables the pending limit and decision notifications.
	s.App.Post("/api/requests", authMiddleware.OptionalAuth, requestHandler.Submit)
	s.App.Get("/api/requests/mine", authMiddleware.RequireAuth, requestHandler.Mine)
	s.App.Get("/api/users/me", authMiddleware.RequireAuth, userHandler.Me)

	// Admin catalog management
	s.App.Post("/api/tools", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, toolHandler.Create)
	s.App.Put("/api/tools/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, toolHandler.Update)
	s.App.Delete("/api/tools/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, toolHandler.Delete)
	s.App.Post("/api/tools/:id/health", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, healthHandler.CheckTool)

	s.App.Post("/api/tags", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, tagHandler.Create)
	s.App.Put("/api/tags/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, tagHandler.Update)
	s.App.Delete("/api/tags/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, tagHandler.Delete)

	// Admin review queue
	s.App.Get("/api/requests", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, requestHandler.List)
	s.App.Get("/api/requests/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, requestHandler.Get)
	s.App.Put("/api/requests/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, requestHandler.Decide)
	s.App.Delete("/api/requests/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, requestHandler.Delete)

	// Admin user management
	s.App.Get("/api/users", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, userHandler.List)
	s.App.Put("/api/users/:id/role", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, userHandler.UpdateRole)
	s.App.Delete("/api/users/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, userHandler.Delete)

	return nil
}
