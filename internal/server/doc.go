// Package server exposes the arithmetic backends over an HTTP API with
// Prometheus metrics, security headers and graceful shutdown.
package server
