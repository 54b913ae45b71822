package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/t4-api/internal/authconfig"
	"github.com/MKhiriev/t4-api/internal/config"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/utils"
	"github.com/MKhiriev/t4-api/models"
)

const (
	relaySendPath   = "/send"
	relayAPIKeyName = "api-key"
)

// emailMessage is the body the relay accepts on POST /send.
type emailMessage struct {
	From     string           `json:"from"`
	To       string           `json:"to"`
	Type     models.EmailType `json:"type"`
	Subject  string           `json:"subject"`
	Link     string           `json:"link"`
	TenantID string           `json:"tenantId,omitempty"`
}

// NewEmailDelivery returns the relay delivery for cfg.RelayURL, or a logging
// delivery when no relay is configured.
func NewEmailDelivery(cfg config.Email, appName string, logger *logger.Logger) (authconfig.EmailDelivery, error) {
	if strings.TrimSpace(cfg.RelayURL) == "" {
		logger.Warn().Msg("email relay is not configured, emails will only be logged")
		return NewLogEmailDelivery(logger), nil
	}
	return NewHTTPEmailDelivery(cfg, appName, logger)
}

type httpEmailDelivery struct {
	client  *utils.HTTPClient
	appName string
	logger  *logger.Logger
}

// NewHTTPEmailDelivery constructs a delivery that posts every email to the
// relay at cfg.RelayURL. The API key, when set, travels in the api-key header.
//
// Returns an error if cfg.RelayURL is empty or cannot be parsed as a valid URL.
func NewHTTPEmailDelivery(cfg config.Email, appName string, logger *logger.Logger) (authconfig.EmailDelivery, error) {
	baseURL, err := normalizeBaseURL(cfg.RelayURL)
	if err != nil {
		return nil, fmt.Errorf("invalid email relay address: %w", err)
	}

	opts := []utils.HTTPClientOption{utils.WithBaseURL(baseURL), utils.WithTimeout(cfg.Timeout)}
	if cfg.APIKey != "" {
		opts = append(opts, utils.WithHeader(relayAPIKeyName, cfg.APIKey))
	}

	return &httpEmailDelivery{
		client:  utils.NewHTTPClient(opts...),
		appName: appName,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SendEmail implements [authconfig.EmailDelivery]. It POSTs the message to
// the relay's /send endpoint and maps non-2xx answers to sentinel errors.
func (d *httpEmailDelivery) SendEmail(ctx context.Context, input models.EmailInput) error {
	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(newEmailMessage(d.appName, input)).
		Post(relaySendPath)
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("type", string(input.Type)).
		Int("status", resp.StatusCode()).
		Msg("email handed to relay")

	return nil
}

// Name implements [authconfig.EmailDelivery].
func (d *httpEmailDelivery) Name() string {
	return "http-relay"
}

type logEmailDelivery struct {
	logger *logger.Logger
}

// NewLogEmailDelivery constructs a delivery that writes every email to the
// log instead of sending it.
func NewLogEmailDelivery(logger *logger.Logger) authconfig.EmailDelivery {
	return &logEmailDelivery{logger: logger}
}

// SendEmail implements [authconfig.EmailDelivery].
func (d *logEmailDelivery) SendEmail(_ context.Context, input models.EmailInput) error {
	d.logger.Info().
		Str("type", string(input.Type)).
		Str("to", input.User.Email).
		Str("link", emailLink(input)).
		Msg("email not sent, relay disabled")
	return nil
}

// Name implements [authconfig.EmailDelivery].
func (d *logEmailDelivery) Name() string {
	return "log"
}

func newEmailMessage(appName string, input models.EmailInput) emailMessage {
	return emailMessage{
		From:     appName,
		To:       input.User.Email,
		Type:     input.Type,
		Subject:  emailSubject(appName, input.Type),
		Link:     emailLink(input),
		TenantID: input.TenantID,
	}
}

func emailSubject(appName string, t models.EmailType) string {
	switch t {
	case models.EmailTypePasswordReset:
		return appName + ": reset your password"
	case models.EmailTypeEmailVerification:
		return appName + ": verify your email"
	default:
		return appName
	}
}

func emailLink(input models.EmailInput) string {
	if input.Type == models.EmailTypeEmailVerification {
		return input.EmailVerifyLink
	}
	return input.PasswordResetLink
}
