package config

import (
	"fmt"
	"time"
)

// Defaults applied to the client view when the corresponding values are not
// configured.
const (
	DefaultClientBatchWait      = 10 * time.Millisecond
	DefaultClientBatchMaxCalls  = 50
	DefaultClientRequestTimeout = 15 * time.Second
	DefaultClientCacheTTL       = 30 * time.Second
)

// ClientConfig is the RPC client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// APIURL is the API origin; the RPC endpoint is APIURL + "/trpc".
	APIURL string
	// DevHost replaces localhost in APIURL when set.
	DevHost string
	// Platform is sent as the X-Platform header when non-empty.
	Platform string
	// BatchWait is the coalescing window of the batch link.
	BatchWait time.Duration
	// BatchMaxCalls caps calls per batch request.
	BatchMaxCalls int
	// RequestTimeout bounds a single batch request.
	RequestTimeout time.Duration
	// CacheTTL is the query cache entry lifetime.
	CacheTTL time.Duration
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig(args ...string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args...)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps cfg to a [ClientConfig] and applies defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		APIURL:         cfg.Client.APIURL,
		DevHost:        cfg.Client.DevHost,
		Platform:       cfg.Client.Platform,
		BatchWait:      cfg.Client.BatchWait,
		BatchMaxCalls:  cfg.Client.BatchMaxCalls,
		RequestTimeout: cfg.Client.RequestTimeout,
		CacheTTL:       cfg.Client.CacheTTL,
	}

	if clientCfg.BatchWait == 0 {
		clientCfg.BatchWait = DefaultClientBatchWait
	}
	if clientCfg.BatchMaxCalls == 0 {
		clientCfg.BatchMaxCalls = DefaultClientBatchMaxCalls
	}
	if clientCfg.RequestTimeout == 0 {
		clientCfg.RequestTimeout = DefaultClientRequestTimeout
	}
	if clientCfg.CacheTTL == 0 {
		clientCfg.CacheTTL = DefaultClientCacheTTL
	}

	return clientCfg
}

// Validate reports whether the client view is usable. Callers that override
// fields after [GetClientConfig] (e.g. from command flags) re-check with it.
func (cfg *ClientConfig) Validate() error {
	return cfg.validate()
}
