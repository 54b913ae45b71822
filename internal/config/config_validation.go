// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "net/url"

// validate checks invariants shared by every process that loads the
// [StructuredConfig]. Auth settings are validated by the auth runtime at
// its own initialisation, so only cross-cutting values are checked here.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.URL != "" && !isAbsoluteURL(cfg.App.URL) {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Client.BatchMaxCalls < 0 || cfg.Client.BatchWait < 0 {
		return ErrInvalidClientConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Email.RelayURL != "" && !isAbsoluteURL(cfg.Email.RelayURL) {
		return ErrInvalidEmailConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if !isAbsoluteURL(cfg.APIURL) {
		return ErrInvalidClientConfigs
	}

	if cfg.BatchWait <= 0 || cfg.BatchMaxCalls <= 0 || cfg.RequestTimeout <= 0 {
		return ErrInvalidClientConfigs
	}

	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}
