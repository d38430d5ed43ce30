/*
Package monitoring provides Prometheus metrics for the desktop backend.

# Overview

Collectors are registered on an injected registry rather than the global
default, so several instances (one per test, for example) can coexist.
Every recording method is safe to call on a nil *Metrics.

# Usage

	metrics := monitoring.NewMetrics()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", monitoring.Handler(metrics))

	metrics.RecordFSOperation("writeFile", ok)

	timer := monitoring.NewTimer(metrics)
	reply, err := client.Send(ctx, turn)
	timer.Stop(err)
*/
package monitoring
