package authconfig

import (
	"context"
	"strings"

	"github.com/MKhiriev/t4-api/internal/utils"
	"github.com/MKhiriev/t4-api/models"
)

// Password reset link targets.
const (
	// resetPasswordPath is the default reset page under the website domain.
	resetPasswordPath = DefaultWebsiteBasePath + "/reset-password"

	// WebUpdatePasswordPath is the web page that accepts the reset token.
	WebUpdatePasswordPath = "/password-reset/update-password"

	// MobileUpdatePasswordLink is the app deep link that accepts the token.
	MobileUpdatePasswordLink = "t4://password-reset/update-password"
)

//go:generate mockgen -source=email.go -destination=../mock/email_delivery_mock.go -package=mock

// EmailDelivery sends transactional emails composed by the auth recipes.
type EmailDelivery interface {
	// SendEmail delivers one message. The in-flight HTTP request, if any, is
	// available through [utils.GetRequestFromContext].
	SendEmail(ctx context.Context, input models.EmailInput) error

	// Name identifies the implementation in logs.
	Name() string
}

// EmailDeliveryOverride receives the runtime's default delivery and returns
// the one actually used.
type EmailDeliveryOverride func(original EmailDelivery) EmailDelivery

// EmailDeliveryConfig configures email delivery of a recipe. A nil Override
// keeps the default delivery.
type EmailDeliveryConfig struct {
	Override EmailDeliveryOverride
}

// Apply returns original decorated by the configured override.
func (c EmailDeliveryConfig) Apply(original EmailDelivery) EmailDelivery {
	if c.Override == nil {
		return original
	}
	return c.Override(original)
}

// PasswordResetLinkOverride returns an override that points password reset
// links at the page matching the caller's platform: appURL's web update page
// for web callers, the app deep link for everything else. Other emails pass
// through untouched.
func PasswordResetLinkOverride(appURL string) EmailDeliveryOverride {
	return func(original EmailDelivery) EmailDelivery {
		return &passwordResetLinkRewriter{
			EmailDelivery: original,
			appURL:        appURL,
		}
	}
}

// passwordResetLinkRewriter replaces SendEmail and inherits everything else
// from the embedded delivery.
type passwordResetLinkRewriter struct {
	EmailDelivery
	appURL string
}

func (d *passwordResetLinkRewriter) SendEmail(ctx context.Context, input models.EmailInput) error {
	if input.Type != models.EmailTypePasswordReset {
		return d.EmailDelivery.SendEmail(ctx, input)
	}

	target := MobileUpdatePasswordLink
	if PlatformFromContext(ctx).IsWeb() {
		target = d.appURL + WebUpdatePasswordPath
	}

	input.PasswordResetLink = strings.Replace(input.PasswordResetLink, d.appURL+resetPasswordPath, target, 1)

	return d.EmailDelivery.SendEmail(ctx, input)
}

// PlatformFromContext reads the X-Platform header of the request carried by
// ctx. Without a request or header the platform is web.
func PlatformFromContext(ctx context.Context) models.Platform {
	r, ok := utils.GetRequestFromContext(ctx)
	if !ok {
		return models.PlatformWeb
	}
	return models.ParsePlatform(r.Header.Get(models.PlatformHeader))
}
