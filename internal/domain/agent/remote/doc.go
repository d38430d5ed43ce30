// Package remote implements agent.Client over HTTP against a
// generateContent-style function-calling endpoint.
//
// Requests go through resty with a retrying transport, JSON is encoded
// with sonic, and a circuit breaker fails requests fast after repeated
// server errors. The request id from the context travels in X-Request-ID.
package remote
