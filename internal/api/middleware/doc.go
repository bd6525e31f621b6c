// Package middleware provides the HTTP middleware stack for the desktop API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing via gin-contrib/cors
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - GlobalRateLimit: One bucket shared by all clients
//   - RequestID: X-Request-ID propagation for log correlation
//   - Logger: Structured request logging via zap
//   - Recovery: Panic recovery with a JSON 500 response
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger), middleware.RequestID(), middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
