// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/emblemstudio/studio-api/internal/config"
	"github.com/emblemstudio/studio-api/internal/middleware"
	"github.com/emblemstudio/studio-api/internal/service"
)

// Per-IP rate limit windows.
const (
	apiLimit      = 300
	apiWindow     = 15 * time.Minute
	authLimit     = 10
	authWindow    = 15 * time.Minute
	inquiryLimit  = 20
	inquiryWindow = 30 * time.Minute
	uploadLimit   = 60
	uploadWindow  = 15 * time.Minute
)

// NewRouter assembles the full HTTP API. The media service is shared with
// the scheduler, so the caller constructs it.
func NewRouter(cfg *config.Config, db *sql.DB, sessions *scs.SessionManager, mediaSvc *service.MediaService) http.Handler {
	contentSvc := service.NewContentService(db)
	protector := middleware.NewLoginProtector()

	authH := NewAuthHandler(db, sessions, protector, cfg.SessionSecret)
	contentH := NewContentHandler(contentSvc, mediaSvc)
	inquiryH := NewInquiryHandler(contentSvc)
	mediaH := NewMediaHandler(mediaSvc, cfg.UploadMaxBytes())
	healthH := NewHealthHandler(db)

	apiRL := middleware.NewRateLimiter(apiLimit, apiWindow)
	authRL := middleware.NewRateLimiter(authLimit, authWindow)
	inquiryRL := middleware.NewRateLimiter(inquiryLimit, inquiryWindow)
	uploadRL := middleware.NewRateLimiter(uploadLimit, uploadWindow)

	csrfCfg := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	if len(cfg.TrustedOrigins) > 0 {
		csrfCfg.TrustedOrigins = cfg.TrustedOrigins
	}

	requireAuth := middleware.RequireAuth(sessions)
	requireCSRF := middleware.RequireCSRFToken(sessions)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(sessions.LoadAndSave)
	r.Use(middleware.CrossSiteProtection(csrfCfg))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiRL.Middleware())

		r.Get("/health", healthH.Health)

		r.Route("/public", func(r chi.Router) {
			r.Get("/content", contentH.Public)
			r.With(inquiryRL.Middleware()).Post("/inquiries", inquiryH.Create)
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(authRL.Middleware()).Post("/login", authH.Login)
			r.With(requireAuth, requireCSRF).Post("/logout", authH.Logout)
			r.With(requireAuth).Get("/csrf", authH.CSRF)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/me", authH.Me)
			r.Get("/content", contentH.Admin)
			r.Get("/inquiries", inquiryH.List)
			r.Get("/media", mediaH.List)

			r.Group(func(r chi.Router) {
				r.Use(requireCSRF)
				r.Put("/settings", contentH.SaveSettings)
				r.Put("/services", contentH.SaveServices)
				r.Put("/projects", contentH.SaveProjects)
				r.With(uploadRL.Middleware()).Post("/media", mediaH.Upload)
				r.Delete("/media/{id}", mediaH.Delete)
			})
		})
	})

	r.Get("/uploads/{filename}", mediaH.ServeFile)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, CodeNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}
