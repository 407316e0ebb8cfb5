package user

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/database"
	"reskin/backend/internal/models"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository returns a Repository backed by the users table.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Omit("CardSets").Create(u).Error
	if database.IsUniqueViolation(err) {
		return apperr.Conflict("username or email already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gormRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if database.IsNotFound(err) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *gormRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&u).Error
	if database.IsNotFound(err) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

func (r *gormRepository) SetRole(ctx context.Context, id uint, role string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return fmt.Errorf("failed to set role of user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (r *gormRepository) UpdateProfile(ctx context.Context, id uint, p Profile) (*models.User, error) {
	fields := map[string]any{}
	if p.DisplayName != nil {
		fields["display_name"] = *p.DisplayName
	}
	if p.Bio != nil {
		fields["bio"] = *p.Bio
	}
	if p.AvatarURL != nil {
		fields["avatar_url"] = *p.AvatarURL
	}
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update user %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperr.NotFound("User")
		}
	}
	return r.Get(ctx, id)
}
