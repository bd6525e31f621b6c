/*
Package monitoring provides Prometheus metrics for the desktop service.

# Overview

Counters and gauges cover HTTP requests, window-manager operations, note
reconciliation, VFS mutations, registry size, durable writes and
WebSocket traffic. Collectors are registered on an injected registerer so
tests can use an isolated prometheus.NewRegistry().

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	router.Use(monitoring.Middleware(metrics))
	metrics.RecordWindowOp("open", 3)
	metrics.RecordPersist("windows", err)

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
