package users

import (
	"context"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

// Repository is the persistence interface consumed by the auth service.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	UpdateCredential(ctx context.Context, username, record string) error
	UpdateProfile(ctx context.Context, username, firstName, lastName, phone, email string) error
	ClearVerificationCode(ctx context.Context, username string) error
}
