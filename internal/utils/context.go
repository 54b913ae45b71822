// Package utils provides general-purpose helper utilities shared by the
// server and the client: context keys, JSON response writing, the resty
// client wrapper, identifier generation and client-secret JWT signing.
package utils

import (
	"context"
	"net/http"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequestCtxKey is the key under which the in-flight *http.Request is stored.
// Code running below the HTTP layer (e.g. email delivery) reads request
// headers through it without depending on the transport.
var RequestCtxKey = contextKey("request")

// WithRequest returns a copy of ctx carrying r.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, RequestCtxKey, r)
}

// GetRequestFromContext retrieves the request stored by [WithRequest].
//
// Returns ok == false when no request is stored or the stored value is nil.
func GetRequestFromContext(ctx context.Context) (*http.Request, bool) {
	r, ok := ctx.Value(RequestCtxKey).(*http.Request)
	if !ok || r == nil {
		return nil, false
	}
	return r, true
}
