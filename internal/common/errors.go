// Package common defines shared sentinel errors used across Shelfkeeper
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors. ErrorUnauthorized covers both an unknown username and a
	// wrong password so the caller cannot tell which one failed.
	// ErrCodeMismatch is deliberately distinct: it is only returned after the
	// password already verified.
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrCodeMismatch     = errors.New("verification code invalid")
	ErrNotAuthenticated = errors.New("authentication required")

	// ErrDeliveryFailed signals that the verification email could not be
	// handed to the mail transport.
	ErrDeliveryFailed = errors.New("delivery failed")
)
