package deck

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/database"
	"reskin/backend/internal/models"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository returns a Repository backed by the decks table.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Get(ctx context.Context, id uint) (*models.Deck, error) {
	var d models.Deck
	err := r.db.WithContext(ctx).First(&d, id).Error
	if database.IsNotFound(err) {
		return nil, apperr.NotFound("Deck")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck %d: %w", id, err)
	}
	return &d, nil
}

func (r *gormRepository) Create(ctx context.Context, d *models.Deck) error {
	err := r.db.WithContext(ctx).Omit("CardSet", "GameCardDefinition").Create(d).Error
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return apperr.Conflict("a deck named %q already exists in this card set", d.Name)
	case database.IsForeignKeyViolation(err):
		return apperr.Validation("card set or game card definition does not exist")
	}
	return fmt.Errorf("failed to create deck: %w", err)
}

func (r *gormRepository) Update(ctx context.Context, id uint, changes Changes) (*models.Deck, error) {
	if changes.empty() {
		return r.Get(ctx, id)
	}

	fields := map[string]any{}
	if changes.Name != nil {
		fields["name"] = *changes.Name
	}
	switch {
	case changes.ClearDescription:
		fields["description"] = nil
	case changes.Description != nil:
		fields["description"] = *changes.Description
	}
	if changes.CardDefinitionIDs != nil {
		fields["card_definition_ids"] = pq.Int64Array(changes.CardDefinitionIDs)
	}

	result := r.db.WithContext(ctx).Model(&models.Deck{}).Where("id = ?", id).Updates(fields)
	if database.IsUniqueViolation(result.Error) {
		return nil, apperr.Conflict("a deck named %q already exists in this card set", *changes.Name)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update deck %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("Deck")
	}
	return r.Get(ctx, id)
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Deck{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete deck %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Deck")
	}
	return nil
}
