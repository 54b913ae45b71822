// Package server runs the API server's HTTP transport.
//
// It owns the listener lifecycle: startup, waiting for a stop signal and a
// graceful shutdown bounded by the configured timeout.
package server
