package models

import "time"

// VersionInfo is returned by the "version" procedure and GET /api/version.
type VersionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// GreetingRequest is the input of the "greeting" procedure.
type GreetingRequest struct {
	Name string `json:"name"`
}

// Greeting is the output of the "greeting" procedure.
type Greeting struct {
	Message    string    `json:"message"`
	ServerTime time.Time `json:"serverTime"`
}

// PasswordResetRequest asks for a password reset email.
type PasswordResetRequest struct {
	Email string `json:"email"`
}
