// Package config provides 12-factor configuration management for the todo
// lists server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP listen address, shutdown grace period, gzip threshold,
//     connection cap
//   - Session: cookie name/flags, idle expiry and sweep interval
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - CORS: allowed origins for the export API
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT, GZIP_MIN_SIZE, MAX_CONNECTIONS
//   - SESSION_COOKIE, SESSION_COOKIE_SECURE, SESSION_IDLE_TTL, SESSION_SWEEP_INTERVAL
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ALLOW_ORIGINS
package config
