// Package api exposes the HTTP surface: auth, flyer scanning, event CRUD,
// calendar export, nearby discovery, health, and metrics.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crimson-sun/flyerscan/internal/auth"
	"github.com/crimson-sun/flyerscan/internal/config"
	"github.com/crimson-sun/flyerscan/internal/engine"
	"github.com/crimson-sun/flyerscan/internal/logging"
	"github.com/crimson-sun/flyerscan/internal/nearby"
	"github.com/crimson-sun/flyerscan/internal/ocr"
	"github.com/crimson-sun/flyerscan/internal/store"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 60 * time.Second
	idleTimeout  = 120 * time.Second
)

// Deps are the services the HTTP layer composes. All fields are required
// except Metrics, which defaults to a fresh registry.
type Deps struct {
	Config  config.Config
	Log     logging.Logger
	Store   *store.Store
	Engine  *engine.Engine
	OCR     *ocr.Client
	JWT     *auth.JWTManager
	Nearby  *nearby.Service
	Metrics *Metrics
}

// Server is the HTTP server.
type Server struct {
	deps   Deps
	router *gin.Engine
	server *http.Server
}

// NewServer wires the routes and middleware.
func NewServer(deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = logging.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	if !deps.Config.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(loggingMiddleware(deps.Log))
	router.Use(metricsMiddleware(deps.Metrics))

	s := &Server{
		deps:   deps,
		router: router,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", deps.Config.Server.Host, deps.Config.Server.Port),
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(s.deps.Metrics.Registry(), promhttp.HandlerOpts{})))

	authGroup := s.router.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)

	protected := s.router.Group("/")
	protected.Use(authMiddleware(s.deps.JWT))
	protected.POST("/scan", s.handleScan)
	protected.GET("/events", s.handleListEvents)
	protected.GET("/events/:id", s.handleGetEvent)
	protected.PUT("/events/:id", s.handleUpdateEvent)
	protected.DELETE("/events/:id", s.handleDeleteEvent)
	protected.GET("/events/:id/calendar", s.handleEventCalendar)
	protected.GET("/nearby", s.handleNearby)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving. Blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.deps.Log.Info("http server listening", logging.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": config.Version,
	})
}
