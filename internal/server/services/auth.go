// Package services contains server-side business logic. This file implements
// AuthService, which handles registration with email verification, login,
// password changes, and profile edits.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/credential"
	"github.com/shelfkeeper/shelfkeeper/internal/dbx"
	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/config"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/repomanager"
	"github.com/shelfkeeper/shelfkeeper/internal/session"
	"github.com/shelfkeeper/shelfkeeper/internal/validation"
	"github.com/shelfkeeper/shelfkeeper/internal/verification"
)

// RegisterInput carries the raw registration form fields.
type RegisterInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Username    string
	Password    string
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
}

// AuthService orchestrates credential hashing, verification-code issuance,
// the user store, and session state. The session is passed into every call
// explicitly, so the service is testable without a web server.
type AuthService struct {
	db             *sql.DB
	repos          repomanager.RepositoryManager
	issuer         *verification.Issuer
	logger         logging.Logger
	allowCodeReuse bool
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, issuer *verification.Issuer, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:             db,
		repos:          m,
		issuer:         issuer,
		logger:         logger,
		allowCodeReuse: cfg.AllowCodeReuse,
	}
}

// Register validates the input, creates the user with a hashed credential
// record and a fresh verification code, and emails the code.
//
// The duplicate check, the insert, and the email delivery run inside one
// transaction: a concurrent registration that slips past the check is caught
// by the store's uniqueness constraint, and a failed delivery rolls the row
// back so the caller never sees a success it cannot complete.
func (s *AuthService) Register(ctx context.Context, sess *session.Session, in RegisterInput) (*models.User, error) {
	var errs validation.Errors
	if !validation.Name(in.FirstName) {
		errs.Add("firstName", "must contain letters only")
	}
	if !validation.Name(in.LastName) {
		errs.Add("lastName", "must contain letters only")
	}
	if !validation.PhoneNumber(in.PhoneNumber) {
		errs.Add("phoneNumber", "must be exactly 9 digits")
	}
	if !validation.Email(in.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if !validation.Password(in.Password) {
		errs.Add("password", "must be at least 8 characters with a lowercase letter, an uppercase letter, and a digit")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	code := s.issuer.Issue()
	user := &models.User{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		PhoneNumber:      in.PhoneNumber,
		Email:            in.Email,
		Username:         in.Username,
		CredentialRecord: credential.Hash(in.Password),
		VerificationCode: &code,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		existing, err := repo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInternal
		}
		if existing != nil {
			return common.ErrorAlreadyExists
		}

		created, err := repo.Create(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrorAlreadyExists
			}
			return common.ErrorInternal
		}
		user = created

		return s.issuer.Deliver(ctx, user.Email, code)
	})
	if err != nil {
		if errors.Is(err, common.ErrDeliveryFailed) {
			s.logger.Error(ctx, "verification email delivery failed", "username", in.Username)
		}
		return nil, err
	}

	sess.CachePendingCode(code)
	s.logger.Info(ctx, "user registered", "username", user.Username)
	return user, nil
}

// Login verifies the username/password pair and, when a verification code is
// still pending for the account, the supplied code. Unknown usernames and
// wrong passwords are indistinguishable to the caller; a wrong code is
// reported distinctly since the credentials already matched.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, username, password, suppliedCode string) (*models.User, error) {
	if !validation.Password(password) {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repos.Users(s.db)
	user, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := credential.Verify(password, user.CredentialRecord)
	if err != nil {
		s.logger.Error(ctx, "stored credential record is malformed", "username", username)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	if user.VerificationCode != nil {
		if suppliedCode != *user.VerificationCode {
			return nil, common.ErrCodeMismatch
		}
		if !s.allowCodeReuse {
			if err := repo.ClearVerificationCode(ctx, username); err != nil {
				return nil, common.ErrorInternal
			}
		}
	}

	sess.StartAuthenticated(username)
	s.logger.Info(ctx, "user logged in", "username", username)
	return user, nil
}

// Logout resets the session to the anonymous state.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) {
	sess.Clear()
}

// Profile returns the authenticated user's record.
func (s *AuthService) Profile(ctx context.Context, sess *session.Session) (*models.User, error) {
	username, err := s.requireAuth(sess)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users(s.db).FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			sess.Clear()
			return nil, common.ErrNotAuthenticated
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// ChangePassword re-verifies the old password and stores a fresh credential
// record (new salt included) for the new one.
func (s *AuthService) ChangePassword(ctx context.Context, sess *session.Session, oldPassword, newPassword string) error {
	username, err := s.requireAuth(sess)
	if err != nil {
		return err
	}

	var errs validation.Errors
	if !validation.Password(oldPassword) {
		errs.Add("oldPassword", "must be at least 8 characters with a lowercase letter, an uppercase letter, and a digit")
	}
	if !validation.Password(newPassword) {
		errs.Add("newPassword", "must be at least 8 characters with a lowercase letter, an uppercase letter, and a digit")
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	repo := s.repos.Users(s.db)
	user, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			sess.Clear()
			return common.ErrNotAuthenticated
		}
		return common.ErrorInternal
	}

	ok, err := credential.Verify(oldPassword, user.CredentialRecord)
	if err != nil {
		s.logger.Error(ctx, "stored credential record is malformed", "username", username)
		return common.ErrorInternal
	}
	if !ok {
		return common.ErrorUnauthorized
	}

	if err := repo.UpdateCredential(ctx, username, credential.Hash(newPassword)); err != nil {
		return common.ErrorInternal
	}
	s.logger.Info(ctx, "password changed", "username", username)
	return nil
}

// EditProfile validates and persists the editable profile fields. The
// session identifies the row; re-authentication is not required.
func (s *AuthService) EditProfile(ctx context.Context, sess *session.Session, in ProfileInput) error {
	username, err := s.requireAuth(sess)
	if err != nil {
		return err
	}

	var errs validation.Errors
	if !validation.Name(in.FirstName) {
		errs.Add("firstName", "must contain letters only")
	}
	if !validation.Name(in.LastName) {
		errs.Add("lastName", "must contain letters only")
	}
	if !validation.PhoneNumber(in.PhoneNumber) {
		errs.Add("phoneNumber", "must be exactly 9 digits")
	}
	if !validation.Email(in.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	err = s.repos.Users(s.db).UpdateProfile(ctx, username, in.FirstName, in.LastName, in.PhoneNumber, in.Email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			sess.Clear()
			return common.ErrNotAuthenticated
		case errors.Is(err, common.ErrorAlreadyExists):
			return common.ErrorAlreadyExists
		default:
			return common.ErrorInternal
		}
	}
	return nil
}

// requireAuth returns the session's principal or clears the session and
// reports the defensive reset mandated for unauthenticated access to
// protected operations.
func (s *AuthService) requireAuth(sess *session.Session) (string, error) {
	if !sess.IsAuthenticated() {
		sess.Clear()
		return "", common.ErrNotAuthenticated
	}
	return sess.CurrentUsername(), nil
}
