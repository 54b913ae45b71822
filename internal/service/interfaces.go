package service

import (
	"context"

	"github.com/MKhiriev/t4-api/internal/auth"
	"github.com/MKhiriev/t4-api/models"
)

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionInfo
}

type AuthService interface {
	LoginMethods(ctx context.Context, clientType string) (auth.LoginMethods, error)
	AuthorisationURL(ctx context.Context, thirdPartyID, clientType, redirectURI string) (auth.AuthorisationURL, error)
	RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error
}

type GreetingService interface {
	Greet(ctx context.Context, req models.GreetingRequest) (models.Greeting, error)
}
