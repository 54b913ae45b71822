// Package http implements the HTTP transport layer of the API server.
//
// It wires the auth API under the configured base path, the batched RPC
// endpoint, the version and metrics endpoints, and the middleware shared by
// all of them: request tracing, access logging and carrying the in-flight
// request in its context so downstream email delivery can read the caller's
// platform.
package http
