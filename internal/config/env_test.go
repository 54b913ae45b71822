// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_NAME":      "t4",
		"APP_URL":       "https://app.example.com",
		"APP_VERSION":   "1.2.3",
		"APP_LOG_LEVEL": "warn",

		"SUPERTOKENS_CONNECTION_URI": "https://core.example.com",
		"SUPERTOKENS_API_KEY":        "core-key",
		"API_URL":                    "https://api.example.com",
		"DISCORD_CLIENT_ID":          "discord-id",
		"GOOGLE_CLIENT_ID":           "google-id",
		"GOOGLE_CLIENT_SECRET":       "google-secret",
		"APPLE_CLIENT_ID":            "apple-id",
		"APPLE_CLIENT_ID_IOS":        "apple-ios-id",
		"APPLE_KEY_ID":               "apple-key",
		"APPLE_PRIVATE_KEY":          "pem",
		"APPLE_TEAM_ID":              "team",

		"SERVER_ADDRESS":          "localhost:8080",
		"SERVER_REQUEST_TIMEOUT":  "30s",
		"SERVER_SHUTDOWN_TIMEOUT": "5s",

		"EMAIL_RELAY_URL": "https://mail.example.com",
		"EMAIL_API_KEY":   "mail-key",
		"EMAIL_TIMEOUT":   "3s",

		"EXPO_PUBLIC_API_URL":    "http://localhost:8787",
		"CLIENT_DEV_HOST":        "192.168.1.10",
		"CLIENT_PLATFORM":        "ios",
		"CLIENT_BATCH_WAIT":      "20ms",
		"CLIENT_BATCH_MAX":       "8",
		"CLIENT_REQUEST_TIMEOUT": "2s",
		"CLIENT_CACHE_TTL":       "1m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, App{Name: "t4", URL: "https://app.example.com", Version: "1.2.3", LogLevel: "warn"}, cfg.App)

	assert.Equal(t, "https://core.example.com", cfg.Auth.ConnectionURI)
	assert.Equal(t, "core-key", cfg.Auth.APIKey)
	assert.Equal(t, "https://api.example.com", cfg.Auth.APIURL)
	assert.Equal(t, "discord-id", cfg.Auth.Discord.ClientID)
	assert.Equal(t, Google{ClientID: "google-id", ClientSecret: "google-secret"}, cfg.Auth.Google)
	assert.Equal(t, Apple{
		ClientID:    "apple-id",
		ClientIDIOS: "apple-ios-id",
		KeyID:       "apple-key",
		PrivateKey:  "pem",
		TeamID:      "team",
	}, cfg.Auth.Apple)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, Email{RelayURL: "https://mail.example.com", APIKey: "mail-key", Timeout: 3 * time.Second}, cfg.Email)

	assert.Equal(t, Client{
		APIURL:         "http://localhost:8787",
		DevHost:        "192.168.1.10",
		Platform:       "ios",
		BatchWait:      20 * time.Millisecond,
		BatchMaxCalls:  8,
		RequestTimeout: 2 * time.Second,
		CacheTTL:       time.Minute,
	}, cfg.Client)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"APP_URL":        "https://app.example.com",
		"SERVER_ADDRESS": "localhost:8080",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "https://app.example.com", cfg.App.URL)
	assert.Empty(t, cfg.App.Name)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Zero(t, cfg.Server.RequestTimeout)

	assert.Equal(t, Auth{}, cfg.Auth)
	assert.Equal(t, Email{}, cfg.Email)
	assert.Equal(t, Client{}, cfg.Client)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": "soon"})

	err := parseEnv(&StructuredConfig{})

	assert.Error(t, err)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	err := loadDotEnv(filepath.Join(t.TempDir(), ".env"))

	assert.NoError(t, err)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_NAME": "from-env"})

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=from-file\nAPP_VERSION=9.9.9\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_VERSION") })

	require.NoError(t, loadDotEnv(path))

	assert.Equal(t, "from-env", os.Getenv("APP_NAME"))
	assert.Equal(t, "9.9.9", os.Getenv("APP_VERSION"))
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_NAME",
		"APP_URL",
		"APP_VERSION",
		"APP_LOG_LEVEL",

		"SUPERTOKENS_CONNECTION_URI",
		"SUPERTOKENS_API_KEY",
		"API_URL",
		"DISCORD_CLIENT_ID",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"APPLE_CLIENT_ID",
		"APPLE_CLIENT_ID_IOS",
		"APPLE_KEY_ID",
		"APPLE_PRIVATE_KEY",
		"APPLE_TEAM_ID",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",
		"SERVER_SHUTDOWN_TIMEOUT",

		"EMAIL_RELAY_URL",
		"EMAIL_API_KEY",
		"EMAIL_TIMEOUT",

		"EXPO_PUBLIC_API_URL",
		"CLIENT_DEV_HOST",
		"CLIENT_PLATFORM",
		"CLIENT_BATCH_WAIT",
		"CLIENT_BATCH_MAX",
		"CLIENT_REQUEST_TIMEOUT",
		"CLIENT_CACHE_TTL",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
