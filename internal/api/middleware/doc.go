// Package middleware provides the HTTP middleware shared by the desktop API.
//
//   - CORS: cross-origin access for the desktop client, exposing X-Request-ID
//   - RateLimit: per-IP token buckets, idle clients are swept
//   - GlobalRateLimit: one bucket for every caller
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.RateLimitFromConfig(cfg.RateLimit)))
package middleware
