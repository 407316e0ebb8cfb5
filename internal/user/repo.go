package user

import (
	"context"

	"reskin/backend/internal/models"
)

// Profile holds the fields a user may edit on their own account; nil fields
// are left alone.
type Profile struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

// Repository persists user accounts.
type Repository interface {
	// Create fails with a ConflictError when the username or email is taken.
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id uint) (*models.User, error)
	// FindByLogin looks a user up by username or email.
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, p Profile) (*models.User, error)
	SetRole(ctx context.Context, id uint, role string) error
}
