// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when no transport
	// address is configured. The server treats it as fatal at startup.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errInvalidAPIBasePath is returned when the auth API base path is not
	// an absolute path.
	errInvalidAPIBasePath = errors.New("auth api base path must start with '/'")
)
