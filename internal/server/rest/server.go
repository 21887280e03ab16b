// Package rest implements the HTTP adapter: routing, the session transport
// (cookie or bearer), and the middleware protecting authenticated routes.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"authstack/internal/logging"
	"authstack/internal/server/config"
	"authstack/internal/server/services"
)

type Server struct {
	cfg    *config.Config
	auth   *services.AuthService
	logger logging.Logger
	engine *gin.Engine
}

// NewServer builds the gin engine with recovery, request logging, and CORS,
// and registers the API routes.
func NewServer(cfg *config.Config, authSvc *services.AuthService, logger logging.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		auth:   authSvc,
		logger: logger.With("module", "rest"),
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitOrigins(cfg.CORSAllowedOrigins)
	// Cookie-mode sign-in only works cross-origin when credentials are
	// allowed; bearer mode needs the Authorization response header exposed.
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Authorization"}
	s.engine.Use(cors.New(corsConfig))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api/v1")
	{
		api.POST("/sign_up", s.handleSignUp)
		api.POST("/sign_in", s.handleSignIn)
		// Sign-out is deliberately not behind RequireAuth: revoking an
		// already revoked token must stay a no-op, not a 401.
		api.DELETE("/sign_out", s.handleSignOut)
		api.GET("/me", s.RequireAuth(), s.handleMe)
	}
}

// Handler exposes the engine as an http.Handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.EndpointAddr, Handler: s.engine}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "starting HTTP server",
		"address", s.cfg.EndpointAddr,
		"transport", s.cfg.SessionTransport,
		"store", s.cfg.SessionStore,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
