// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authconfig builds the declarative settings handed to the auth
// runtime at startup.
//
// [Build] turns an environment record ([Env]) into [Settings]: the backend
// connection, application metadata and an ordered recipe list
// (third-party + email/password login, sessions, the admin dashboard and
// user roles). The email/password recipe carries the identity provider
// credentials and an email delivery override that rewrites password reset
// links for the platform the request came from.
//
// Settings are plain values. Nothing here talks to the network or validates
// credentials; malformed values are reported by the auth runtime when it is initialised.
package authconfig
