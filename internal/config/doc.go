// Package config provides configuration loading, merging, and validation
// facilities for the t4 API server and RPC client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables (optionally seeded from a .env file)
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetServerConfig] for the API server and
// [GetClientConfig] for the RPC client; both are views over
// [GetStructuredConfig].
package config
