// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the handlers themselves before a request reaches
// the service layer.
var (
	// ErrInvalidRequestBody is returned when a JSON body is missing or cannot
	// be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrMissingQueryParameter is returned when a required query parameter
	// is absent or empty.
	ErrMissingQueryParameter = errors.New("missing query parameter")
)
