/*
Package monitoring provides Prometheus metrics for the todo lists server.

# Overview

Collectors are registered on a registry owned by the server instead of the
global default registry, so several servers (and tests) can coexist in one
process.

# Metrics

  - HTTP requests by method, route template and status; latency; response size
  - Lists created, renamed and deleted
  - Todos added, deleted, toggled (by new state) and complete-all runs
  - Validation failures by form field and reason
  - Live and created sessions
  - Exports by format

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.RecordListCreated()
*/
package monitoring
