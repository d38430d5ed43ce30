// Package server assembles the desktop from configuration.
//
// NewSystem wires storage, the file system, the shell, terminals, the
// agent bridge and every application provider. NewServer puts the REST
// API, the /stream websocket and /metrics in front of a System behind
// recovery, request tracing, metrics, CORS and rate limiting.
package server
