package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/MKhiriev/t4-api/internal/auth"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/models"
)

// AuthRuntime is the part of [auth.Auth] the service depends on.
type AuthRuntime interface {
	LoginMethods(clientType string) (auth.LoginMethods, error)
	AuthorisationURL(ctx context.Context, thirdPartyID, clientType, redirectURI string) (auth.AuthorisationURL, error)
	SendPasswordResetEmail(ctx context.Context, user models.User) error
}

type authService struct {
	runtime AuthRuntime
	logger  *logger.Logger
}

func NewAuthService(runtime AuthRuntime, logger *logger.Logger) AuthService {
	return &authService{runtime: runtime, logger: logger}
}

func (s *authService) LoginMethods(ctx context.Context, clientType string) (auth.LoginMethods, error) {
	methods, err := s.runtime.LoginMethods(strings.TrimSpace(clientType))
	if err != nil {
		return auth.LoginMethods{}, mapAuthError(err)
	}
	return methods, nil
}

func (s *authService) AuthorisationURL(ctx context.Context, thirdPartyID, clientType, redirectURI string) (auth.AuthorisationURL, error) {
	if strings.TrimSpace(thirdPartyID) == "" {
		return auth.AuthorisationURL{}, fmt.Errorf("%w: thirdPartyId is required", ErrInvalidDataProvided)
	}

	u, err := s.runtime.AuthorisationURL(ctx, thirdPartyID, strings.TrimSpace(clientType), redirectURI)
	if err != nil {
		return auth.AuthorisationURL{}, mapAuthError(err)
	}
	return u, nil
}

// RequestPasswordReset sends the reset email. The response does not reveal
// whether an account exists for the address.
func (s *authService) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error {
	email := strings.TrimSpace(req.Email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email", ErrInvalidDataProvided)
	}

	if err = s.runtime.SendPasswordResetEmail(ctx, models.User{Email: email}); err != nil {
		return mapAuthError(err)
	}
	return nil
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrUnknownClientType),
		errors.Is(err, auth.ErrUnknownProvider):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return err
}
