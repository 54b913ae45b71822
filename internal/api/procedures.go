// Package api declares the procedures the server exposes on its RPC
// endpoint. Both the server router and the client use these handles, so a
// path or type change shows up on both sides at compile time.
package api

import (
	"github.com/MKhiriev/t4-api/internal/rpc"
	"github.com/MKhiriev/t4-api/models"
)

var (
	// Version reports the server name and version.
	Version = rpc.NewQuery[rpc.Void, models.VersionInfo]("version")

	// Greeting greets the caller by name and reports the server time.
	Greeting = rpc.NewQuery[models.GreetingRequest, models.Greeting]("greeting")

	// RequestPasswordReset mails a password reset link to the given address.
	// The link target depends on the caller's X-Platform header.
	RequestPasswordReset = rpc.NewMutation[models.PasswordResetRequest, rpc.Void]("auth.requestPasswordReset")
)
