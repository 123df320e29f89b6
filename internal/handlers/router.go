package handlers

import (
	"net/http"

	"campuscare-admin/internal/auth"
	"campuscare-admin/internal/metrics"
	customMiddleware "campuscare-admin/internal/middleware"
	"campuscare-admin/internal/reconcile"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Checker *auth.IdentityChecker
	Tokens  *auth.Tokens
	// Surface backs the REST API.
	Surface *reconcile.Controller
	// NewSurface builds an unstarted controller per websocket connection.
	NewSurface func() *reconcile.Controller
	Metrics    *metrics.Metrics
	Log        *logrus.Logger
}

func NewRouter(d Deps) http.Handler {
	authHandler := NewAuthHandler(d.Checker, d.Tokens, d.Log)
	complaintHandler := NewComplaintHandler(d.Surface, d.Log)
	surfaceHandler := NewSurfaceHandler(d.NewSurface, d.Log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "campuscare-admin",
			"live":    d.Surface.State().IsLive,
		})
	})
	r.Handle("/metrics", d.Metrics.Handler())

	// Public routes (no auth required)
	r.Post("/auth/login", authHandler.Login)
	r.Get("/api/meta", Meta)

	// Protected routes (JWT required)
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.JWTAuth(d.Tokens))

		r.Get("/auth/me", authHandler.Me)
		r.Get("/api/dashboard", complaintHandler.Dashboard)
		r.Get("/api/complaints", complaintHandler.List)
		r.Post("/api/complaints/sample", complaintHandler.InsertSample)
		r.Get("/api/complaints/{id}", complaintHandler.Get)
		r.Patch("/api/complaints/{id}/status", complaintHandler.UpdateStatus)
		r.Get("/ws", surfaceHandler.ServeWebSocket)
	})

	return r
}
