// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// t4 API server and the RPC client. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application metadata: display name, public web URL,
	// version and log level.
	App App `envPrefix:"APP_"`

	// Auth holds the auth core connection and the identity provider
	// credentials. Variable names follow the deployment's existing .env
	// layout, hence no common prefix.
	Auth Auth

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Email holds settings for the outbound email relay.
	Email Email `envPrefix:"EMAIL_"`

	// Client holds settings for the RPC client.
	Client Client

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level metadata.
type App struct {
	// Name is the human readable application name used in emails and the
	// auth dashboard.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// URL is the public website origin (e.g. "https://app.example.com").
	// Password reset links are rewritten relative to it.
	// Env: APP_URL
	URL string `env:"URL"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via /api/version and the "version" procedure.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds the auth core connection settings and per-provider credentials.
type Auth struct {
	// ConnectionURI is the base URI of the auth core.
	// Env: SUPERTOKENS_CONNECTION_URI
	ConnectionURI string `env:"SUPERTOKENS_CONNECTION_URI"`

	// APIKey authenticates this backend against the auth core.
	// Env: SUPERTOKENS_API_KEY
	APIKey string `env:"SUPERTOKENS_API_KEY"`

	// APIURL is the public origin of this API server.
	// Env: API_URL
	APIURL string `env:"API_URL"`

	Discord Discord `envPrefix:"DISCORD_"`
	Google  Google  `envPrefix:"GOOGLE_"`
	Apple   Apple   `envPrefix:"APPLE_"`
}

// Discord holds Discord OAuth credentials. Discord uses PKCE, so no secret.
type Discord struct {
	// Env: DISCORD_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
}

// Google holds Google OAuth credentials.
type Google struct {
	// Env: GOOGLE_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
	// Env: GOOGLE_CLIENT_SECRET
	ClientSecret string `env:"CLIENT_SECRET"`
}

// Apple holds Sign in with Apple credentials. The web/Android client and the
// iOS client have different identifiers but share the signing key.
type Apple struct {
	// Env: APPLE_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
	// Env: APPLE_CLIENT_ID_IOS
	ClientIDIOS string `env:"CLIENT_ID_IOS"`
	// Env: APPLE_KEY_ID
	KeyID string `env:"KEY_ID"`
	// PrivateKey is the PEM encoded .p8 key. Literal "\n" sequences are
	// accepted so the key fits in a single env line.
	// Env: APPLE_PRIVATE_KEY
	PrivateKey string `env:"PRIVATE_KEY"`
	// Env: APPLE_TEAM_ID
	TeamID string `env:"TEAM_ID"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Email holds the outbound email relay settings. When RelayURL is empty the
// server logs emails instead of sending them.
type Email struct {
	// Env: EMAIL_RELAY_URL
	RelayURL string `env:"RELAY_URL"`
	// Env: EMAIL_API_KEY
	APIKey string `env:"API_KEY"`
	// Env: EMAIL_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Client holds RPC client settings.
type Client struct {
	// APIURL is the API origin the client talks to; "/trpc" is appended.
	// Env: EXPO_PUBLIC_API_URL
	APIURL string `env:"EXPO_PUBLIC_API_URL"`

	// DevHost replaces "localhost" in APIURL so that devices and emulators
	// can reach a server running on the developer machine.
	// Env: CLIENT_DEV_HOST
	DevHost string `env:"CLIENT_DEV_HOST"`

	// Platform is sent as the X-Platform header.
	// Env: CLIENT_PLATFORM
	Platform string `env:"CLIENT_PLATFORM"`

	// BatchWait is how long the batch link waits for more calls before
	// flushing a batch.
	// Env: CLIENT_BATCH_WAIT
	BatchWait time.Duration `env:"CLIENT_BATCH_WAIT"`

	// BatchMaxCalls caps the number of calls per HTTP request.
	// Env: CLIENT_BATCH_MAX
	BatchMaxCalls int `env:"CLIENT_BATCH_MAX"`

	// RequestTimeout bounds a single batch HTTP request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"CLIENT_REQUEST_TIMEOUT"`

	// CacheTTL is how long query results stay in the query cache.
	// Env: CLIENT_CACHE_TTL
	CacheTTL time.Duration `env:"CLIENT_CACHE_TTL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables (a .env file in the working directory is loaded
//     first when present)
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args ...string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
