// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth is the server-side auth runtime initialised from
// [authconfig.Settings].
//
// [Init] validates the settings once at startup and resolves the email
// delivery chain (default delivery decorated by the recipe override). The
// resulting [Auth] answers the questions the HTTP layer asks: which login
// methods exist for a client type, where to send a user for a provider's
// consent screen, and how to mail a password reset link.
//
// Token issuance, session handling and user storage belong to the auth core
// reachable at the configured connection URI and are not implemented here.
package auth
