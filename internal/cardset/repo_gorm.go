package cardset

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/database"
	"reskin/backend/internal/models"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository returns a Repository backed by the card_sets table.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func withInclude(db *gorm.DB, include Include) *gorm.DB {
	if include.Game {
		db = db.Preload("Game")
	}
	if include.User {
		db = db.Preload("User")
	}
	if include.Decks {
		db = db.Preload("Decks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Order("id DESC")
		})
	}
	return db
}

func (r *gormRepository) List(ctx context.Context, q ListQuery) ([]models.CardSet, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CardSet{})
	if q.OwnerID != nil {
		query = query.Where("user_id = ?", *q.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count card sets: %w", err)
	}

	var sets []models.CardSet
	query = withInclude(query, q.Include).Order("created_at DESC").Order("id DESC")
	if q.Limit > 0 {
		query = query.Offset(q.Offset).Limit(q.Limit)
	}
	if err := query.Find(&sets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list card sets: %w", err)
	}
	return sets, total, nil
}

func (r *gormRepository) Get(ctx context.Context, id uint, include Include) (*models.CardSet, error) {
	var set models.CardSet
	err := withInclude(r.db.WithContext(ctx), include).First(&set, id).Error
	if database.IsNotFound(err) {
		return nil, apperr.NotFound("Card set")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card set %d: %w", id, err)
	}
	return &set, nil
}

func (r *gormRepository) Create(ctx context.Context, set *models.CardSet) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var games int64
		if err := tx.Model(&models.Game{}).Where("id = ?", set.GameID).Count(&games).Error; err != nil {
			return err
		}
		if games == 0 {
			return apperr.NotFound("Game")
		}
		return tx.Omit("Game", "User", "Decks").Create(set).Error
	})
	var notFound *apperr.NotFoundError
	switch {
	case err == nil, errors.As(err, &notFound):
		return err
	case database.IsUniqueViolation(err):
		return apperr.Conflict("a card set titled %q already exists", set.Title)
	case database.IsForeignKeyViolation(err):
		return apperr.NotFound("Game")
	}
	return fmt.Errorf("failed to create card set: %w", err)
}

func (r *gormRepository) Update(ctx context.Context, id uint, changes Changes) (*models.CardSet, error) {
	fields := map[string]any{}
	if changes.Title != nil {
		fields["title"] = *changes.Title
	}
	if changes.Description != nil {
		fields["description"] = *changes.Description
	}
	if changes.ImageURL != nil {
		fields["image_url"] = *changes.ImageURL
	}

	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&models.CardSet{}).Where("id = ?", id).Updates(fields)
		if database.IsUniqueViolation(result.Error) {
			return nil, apperr.Conflict("a card set titled %q already exists", *changes.Title)
		}
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update card set %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperr.NotFound("Card set")
		}
	}
	return r.Get(ctx, id, Include{})
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_set_id = ?", id).Delete(&models.Deck{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CardSet{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete card set %d: %w", id, err)
	}
	if affected == 0 {
		return apperr.NotFound("Card set")
	}
	return nil
}
