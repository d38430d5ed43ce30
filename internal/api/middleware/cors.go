package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/tracing"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows any origin. The desktop client is served from a
// different port than the API during development.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Content-Length",
			"Accept",
			"Origin",
			"Cache-Control",
			tracing.HeaderRequestID,
		},
		ExposeHeaders: []string{tracing.HeaderRequestID, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
}

// CORSFromConfig restricts DefaultCORSConfig to the CORS_ORIGINS list.
// Credentials are only allowed once origins are explicit.
func CORSFromConfig(cfg config.ServerConfig) CORSConfig {
	out := DefaultCORSConfig()
	if len(cfg.CORSOrigins) > 0 && !slices.Contains(cfg.CORSOrigins, "*") {
		out.AllowOrigins = cfg.CORSOrigins
		out.AllowCredentials = true
	}
	return out
}

// CORS creates a CORS middleware with the provided configuration.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
