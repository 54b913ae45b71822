// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound email delivery implementations handed
// to the auth runtime as its default [authconfig.EmailDelivery].
//
// [NewEmailDelivery] picks the HTTP relay implementation when a relay URL is
// configured and falls back to a delivery that only logs the message, which
// is what local development uses.
//
// Error values defined in errors.go are mapped from relay HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrUnauthorized] for
// 401, [ErrRateLimited] for 429).
package adapter
