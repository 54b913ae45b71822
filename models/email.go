// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EmailType enumerates the transactional emails the auth recipes send.
type EmailType string

const (
	// EmailTypePasswordReset is sent when a user asks to reset the password
	// of an email/password account.
	EmailTypePasswordReset EmailType = "PASSWORD_RESET"

	// EmailTypeEmailVerification is sent to confirm ownership of an address.
	EmailTypeEmailVerification EmailType = "EMAIL_VERIFICATION"
)

// EmailInput is the payload handed to an email delivery implementation.
//
// Only the link field matching Type is populated: PasswordResetLink for
// [EmailTypePasswordReset], EmailVerifyLink for [EmailTypeEmailVerification].
type EmailInput struct {
	Type              EmailType `json:"type"`
	User              User      `json:"user"`
	PasswordResetLink string    `json:"passwordResetLink,omitempty"`
	EmailVerifyLink   string    `json:"emailVerifyLink,omitempty"`
	TenantID          string    `json:"tenantId,omitempty"`
}
