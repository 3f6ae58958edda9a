// Package server assembles the todo lists HTTP server: the gin engine with
// its middleware chain, the session store and its sweeper, metrics, tracing
// and gzip compression.
//
// Middleware order: Recovery, tracing, metrics, rate limiting, then the
// session middleware on page and export routes only.
package server
