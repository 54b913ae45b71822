package utils

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AppleAudience is the audience Apple expects in a client-secret JWT.
const AppleAudience = "https://appleid.apple.com"

// MaxAppleClientSecretTTL is the longest lifetime Apple accepts for a client secret.
const MaxAppleClientSecretTTL = 15777000 * time.Second

var (
	ErrInvalidClientSecretParams = errors.New("invalid params for generating client secret")
	ErrInvalidPrivateKey         = errors.New("invalid private key")
)

// AppleClientSecretParams holds the signing material Apple issues for
// "Sign in with Apple".
type AppleClientSecretParams struct {
	TeamID     string
	KeyID      string
	ClientID   string
	PrivateKey string
	TTL        time.Duration
}

// GenerateAppleClientSecret signs an ES256 client-secret JWT.
//
// The token carries the following claims:
//   - Issuer    (iss): the Apple team id
//   - Subject   (sub): the service or bundle id the secret is issued for
//   - Audience  (aud): [AppleAudience]
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus TTL
//
// The key id is written to the "kid" header. TTL must be positive and must not
// exceed [MaxAppleClientSecretTTL].
//
// Example usage:
//
//	secret, err := utils.GenerateAppleClientSecret(params, time.Now())
func GenerateAppleClientSecret(p AppleClientSecretParams, now time.Time) (string, error) {
	if p.TeamID == "" || p.KeyID == "" || p.ClientID == "" || p.TTL <= 0 || p.TTL > MaxAppleClientSecretTTL {
		return "", ErrInvalidClientSecretParams
	}

	key, err := ParseECPrivateKey(p.PrivateKey)
	if err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    p.TeamID,
		Subject:   p.ClientID,
		Audience:  jwt.ClaimStrings{AppleAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.TTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = p.KeyID

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing client secret: %w", err)
	}

	return signed, nil
}

// ParseECPrivateKey decodes a PEM encoded EC private key.
//
// Keys taken from environment variables often have their line breaks escaped
// as a literal "\n"; those are restored before decoding.
func ParseECPrivateKey(raw string) (*ecdsa.PrivateKey, error) {
	normalized := strings.TrimSpace(strings.ReplaceAll(raw, `\n`, "\n"))
	if normalized == "" {
		return nil, ErrInvalidPrivateKey
	}

	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(normalized))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}

	return key, nil
}
