package config

import (
	"fmt"
	"time"
)

// Defaults applied to the server view.
const (
	DefaultServerAddress         = "localhost:8080"
	DefaultServerRequestTimeout  = 30 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second
	DefaultEmailTimeout          = 10 * time.Second
)

// ServerConfig is the API server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App    App
	Auth   Auth
	Server Server
	Email  Email
}

// GetServerConfig loads the structured config from env, args and JSON, maps
// the server relevant groups, fills defaults and validates the result.
func GetServerConfig(args ...string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args...)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := NewServerConfig(cfg)

	return serverCfg, serverCfg.validate()
}

// NewServerConfig maps cfg to a [ServerConfig] and applies defaults.
func NewServerConfig(cfg *StructuredConfig) *ServerConfig {
	serverCfg := &ServerConfig{
		App:    cfg.App,
		Auth:   cfg.Auth,
		Server: cfg.Server,
		Email:  cfg.Email,
	}

	if serverCfg.Server.HTTPAddress == "" {
		serverCfg.Server.HTTPAddress = DefaultServerAddress
	}
	if serverCfg.Server.RequestTimeout == 0 {
		serverCfg.Server.RequestTimeout = DefaultServerRequestTimeout
	}
	if serverCfg.Server.ShutdownTimeout == 0 {
		serverCfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if serverCfg.Email.Timeout == 0 {
		serverCfg.Email.Timeout = DefaultEmailTimeout
	}

	return serverCfg
}
