package auth

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"

	"github.com/MKhiriev/t4-api/internal/authconfig"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/models"
)

// DefaultTenantID is the tenant every user belongs to without multi-tenancy.
const DefaultTenantID = "public"

// PasswordResetLink returns the runtime's default reset link for token:
// {websiteDomain}{websiteBasePath}/reset-password?token=…&rid=thirdpartyemailpassword.
func (a *Auth) PasswordResetLink(token string) string {
	info := a.settings.AppInfo
	return info.WebsiteDomain + info.WebsiteBasePath + "/reset-password?token=" + url.QueryEscape(token) +
		"&rid=" + authconfig.RecipeThirdPartyEmailPassword
}

// SendPasswordResetEmail issues a reset token for user and mails the default
// reset link through the resolved email delivery. ctx should carry the
// in-flight request so the delivery override can see the caller's platform.
func (a *Auth) SendPasswordResetEmail(ctx context.Context, user models.User) error {
	if _, err := a.thirdPartyEmailPassword(); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, user.Email)
	}

	input := models.EmailInput{
		Type:              models.EmailTypePasswordReset,
		User:              user,
		PasswordResetLink: a.PasswordResetLink(a.ids.Generate()),
		TenantID:          DefaultTenantID,
	}

	if err := a.emailDelivery.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("error sending password reset email: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("user_id", user.ID).
		Str("email_delivery", a.emailDelivery.Name()).
		Msg("password reset email sent")

	return nil
}
