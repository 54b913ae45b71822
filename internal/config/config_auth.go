// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "github.com/MKhiriev/t4-api/internal/authconfig"

// AuthEnv returns the environment record consumed by [authconfig.Build].
func (cfg *ServerConfig) AuthEnv() authconfig.Env {
	return authconfig.Env{
		ConnectionURI:      cfg.Auth.ConnectionURI,
		APIKey:             cfg.Auth.APIKey,
		AppName:            cfg.App.Name,
		APIURL:             cfg.Auth.APIURL,
		AppURL:             cfg.App.URL,
		DiscordClientID:    cfg.Auth.Discord.ClientID,
		GoogleClientID:     cfg.Auth.Google.ClientID,
		GoogleClientSecret: cfg.Auth.Google.ClientSecret,
		AppleClientID:      cfg.Auth.Apple.ClientID,
		AppleClientIDIOS:   cfg.Auth.Apple.ClientIDIOS,
		AppleKeyID:         cfg.Auth.Apple.KeyID,
		ApplePrivateKey:    cfg.Auth.Apple.PrivateKey,
		AppleTeamID:        cfg.Auth.Apple.TeamID,
	}
}
