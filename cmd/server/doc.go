// Package main is the entry point for the todo lists server.
//
// The server keeps every visitor's lists in a server-side session keyed by
// a cookie; nothing is persisted across restarts.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Defaults: 0.0.0.0:4567, JSON logs at info
//	./todolists
//
//	# Development mode (colored logs, debug level)
//	./todolists --dev --log-level debug --port 8080
package main
