// Package middleware provides the HTTP middleware for the todo lists server.
//
// Middleware stack includes:
//   - Session: cookie-keyed server-side session, locked for the request
//   - RateLimit: per-IP token bucket rate limiting with idle eviction
//   - CORS: cross-origin access for the read-only /api group
//
// Example Usage:
//
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.Session(store, middleware.SessionCookie{Name: "todolists_session"}))
//	api := router.Group("/api", middleware.CORS(middleware.CORSConfigFor(origins)))
package middleware
