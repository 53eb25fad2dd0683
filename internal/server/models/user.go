package models

import "time"

// User is a registered account. CredentialRecord is the opaque salt+key blob
// produced by the credential package; the plaintext password is never stored.
// VerificationCode is nil once the account has completed email verification.
type User struct {
	ID               string
	FirstName        string
	LastName         string
	PhoneNumber      string
	Email            string
	Username         string
	CredentialRecord string
	VerificationCode *string
	CreatedAt        time.Time
}
