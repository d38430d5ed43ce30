package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/ros/backend/internal/api/http"
	"github.com/GriffinCanCode/ros/backend/internal/api/middleware"
	"github.com/GriffinCanCode/ros/backend/internal/api/ws"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	system  *System
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)
	logger.Info("Initializing ROS server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Backend),
	)

	metrics := monitoring.NewMetrics()
	sys, err := NewSystem(ctx, cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracing.Middleware(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSFromConfig(cfg.Server)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitFromConfig(cfg.RateLimit)))
	}

	deps := apihttp.Deps{
		FS:        sys.FS,
		Shell:     sys.Shell,
		Apps:      sys.Apps,
		Terminals: sys.Terminals,
		Services:  sys.Services,
		Backups:   sys.Settings,
		Metrics:   metrics,
		Logger:    logger.Component("api"),
	}
	if sys.Agent != nil {
		deps.Agent = sys.Agent
	}
	apihttp.NewHandlers(deps).Register(router)

	stream := ws.NewHandler(sys.Bus, sys.Shell).
		WithMetrics(metrics).
		WithLogger(logger.Logger)
	router.GET("/stream", stream.HandleConnection)

	logger.Info("Server initialized successfully")
	return &Server{
		router: router,
		http: &http.Server{
			Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
		system:  sys,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Router exposes the engine for in-process requests.
func (s *Server) Router() *gin.Engine { return s.router }

// System returns the desktop the server serves.
func (s *Server) System() *System { return s.system }

// Run starts background sampling and serves until Shutdown.
func (s *Server) Run() error {
	s.system.Start()
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", s.http.Addr, err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.http.Shutdown(ctx)
}

// Close releases the system and flushes the logger.
func (s *Server) Close() error {
	err := s.system.Close()
	if err != nil {
		s.logger.Error("Failed to close system", zap.Error(err))
	}
	_ = s.logger.Sync()
	return err
}
