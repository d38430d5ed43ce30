// Command server runs the ROS desktop backend.
//
// It serves the REST API, the /stream websocket and Prometheus metrics
// over a virtual file system persisted by the configured storage backend.
//
// Configuration comes from the environment (PORT, STORAGE_BACKEND,
// AGENT_ENDPOINT, ...); flags override it.
//
// Usage:
//
//	./server --port 8000 --storage file --storage-path /var/lib/ros
//
//	# Development mode (colored logs, debug level)
//	./server --dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
