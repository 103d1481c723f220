// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires the HTTP router, the middleware chain and every domain
handler into a runnable [http.Server].

Only this package and cmd/api construct net/http servers.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/blenda/internal/core/brand"
	"github.com/taibuivan/blenda/internal/core/locale"
	"github.com/taibuivan/blenda/internal/core/team"
	"github.com/taibuivan/blenda/internal/core/template"
	"github.com/taibuivan/blenda/internal/platform/config"
	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/middleware"
	"github.com/taibuivan/blenda/internal/users/account"
	"github.com/taibuivan/blenda/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups every HTTP handler set the server mounts.
type Handlers struct {
	// Liveness always answers 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness answers 200 only when every dependency is healthy.
	Readiness http.HandlerFunc

	Auth     *auth.Handler
	Account  *account.Handler
	Locale   *locale.Handler
	Team     *team.Handler
	Template *template.Handler
	Brand    *brand.Handler
}

// # Server Initialization

// NewServer builds the router with the full middleware chain and registers
// every route group.
//
// # Routes
//
//	GET  /                                   -> 302 to the caller's first team
//	     /api/v1/auth                        -> sign-in (public)
//	     /api/v1/locales                     -> locale directory (public)
//	     /api/v1/account                     -> own profile and sessions
//	     /api/v1/teams                       -> own teams
//	     /api/v1/teams/{teamSlug}/templates  -> dashboard
//	     /api/v1/brands                      -> catalog administration
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier, constants.AccessTokenCookieName))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	gate := middleware.RequireUser(cfg.LoginPath)

	r.With(gate).Get("/", h.Team.Home)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/locales", h.Locale.Routes())
		api.Mount("/brands", h.Brand.Routes())

		api.Group(func(member chi.Router) {
			member.Use(gate)
			member.Mount("/account", h.Account.Routes())
			member.Route("/teams", func(teams chi.Router) {
				teams.Mount("/", h.Team.Routes())
				teams.Mount("/{"+template.ParamTeamSlug+"}", h.Template.Routes())
			})
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe blocks until the server is closed or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
