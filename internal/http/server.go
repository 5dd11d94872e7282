// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	articleHTTP "github.com/allisson/articles/internal/article/http"
	authDomain "github.com/allisson/articles/internal/auth/domain"
	authHTTP "github.com/allisson/articles/internal/auth/http"
	authUseCase "github.com/allisson/articles/internal/auth/usecase"
	"github.com/allisson/articles/internal/config"
	"github.com/allisson/articles/internal/metrics"
	userHTTP "github.com/allisson/articles/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new Server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with the middleware chain and every route.
// metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	authHandler *authHTTP.AuthHandler,
	userHandler *userHTTP.UserHandler,
	articleHandler *articleHTTP.ArticleHandler,
	authenticator authUseCase.AuthUseCase,
	businessMetrics metrics.BusinessMetrics,
	metricsProvider *metrics.Provider,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(newRequestIDMiddleware())
	router.Use(CustomLoggerMiddleware(s.logger))
	corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger)
	if corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticated := authHTTP.AuthenticationMiddleware(authenticator, s.logger)
	optionalAuth := authHTTP.OptionalAuthenticationMiddleware(authenticator, s.logger)
	requireCapability := func(capability authDomain.Capability) gin.HandlerFunc {
		return authHTTP.AuthorizationMiddleware(businessMetrics, s.logger, capability)
	}

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authHandler.LoginHandler)
	}

	users := v1.Group("/users")
	{
		users.POST("/login", authHandler.LoginHandler)
		users.POST("", optionalAuth, userHandler.CreateHandler)

		admin := users.Group("", authenticated, requireCapability(authDomain.AdminCapability))
		admin.GET("", userHandler.ListHandler)
		admin.GET("/:id", userHandler.GetHandler)
		admin.PUT("/:id", userHandler.UpdateHandler)
		admin.DELETE("/:id", userHandler.DeleteHandler)
	}

	articles := v1.Group("/articles", authenticated)
	{
		articles.POST("", requireCapability(authDomain.CreateArticlesCapability), articleHandler.CreateHandler)
		articles.GET("", requireCapability(authDomain.ReadArticlesCapability), articleHandler.ListHandler)
		articles.GET("/:id", requireCapability(authDomain.ReadArticlesCapability), articleHandler.GetHandler)
		articles.PUT(
			"/:id",
			requireCapability(authDomain.UpdateArticlesCapability),
			articleHandler.UpdateHandler,
		)
		articles.DELETE(
			"/:id",
			requireCapability(authDomain.DeleteArticlesCapability),
			articleHandler.DeleteHandler,
		)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured, call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness without touching dependencies.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func newRequestID() string {
	return uuid.Must(uuid.NewV7()).String()
}
