package game

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/database"
	"reskin/backend/internal/models"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository returns a Repository backed by the games tables.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func preloadDescriptors(db *gorm.DB) *gorm.DB {
	return db.Preload("CardDefinitions", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	})
}

func (r *gormRepository) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := preloadDescriptors(r.db.WithContext(ctx)).Order("name ASC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (r *gormRepository) Get(ctx context.Context, id uint) (*models.Game, error) {
	var g models.Game
	err := preloadDescriptors(r.db.WithContext(ctx)).First(&g, id).Error
	if database.IsNotFound(err) {
		return nil, apperr.NotFound("Game")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return &g, nil
}

func (r *gormRepository) Descriptor(ctx context.Context, id uint) (*models.GameCardDefinition, error) {
	var d models.GameCardDefinition
	err := r.db.WithContext(ctx).Unscoped().First(&d, id).Error
	if database.IsNotFound(err) {
		return nil, apperr.NotFound("Game card definition")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game card definition %d: %w", id, err)
	}
	return &d, nil
}

func (r *gormRepository) Upsert(ctx context.Context, g models.Game, descriptors []models.GameCardDefinition) (*models.Game, error) {
	var gameID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Game
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", g.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = models.Game{Name: g.Name, Summary: g.Summary, Rules: g.Rules}
			if err := tx.Omit(clause.Associations).Create(&existing).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&existing).Updates(map[string]any{"summary": g.Summary, "rules": g.Rules}).Error; err != nil {
				return err
			}
		}
		gameID = existing.ID

		names := make([]string, 0, len(descriptors))
		for _, d := range descriptors {
			names = append(names, d.Name)

			var row models.GameCardDefinition
			err := tx.Unscoped().Where("game_id = ? AND name = ?", gameID, d.Name).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				row = models.GameCardDefinition{GameID: gameID, Name: d.Name, Description: d.Description, TableName: d.TableName}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			err = tx.Unscoped().Model(&row).Updates(map[string]any{
				"description": d.Description,
				"table_name":  d.TableName,
				"deleted_at":  nil,
			}).Error
			if err != nil {
				return err
			}
		}

		retire := tx.Where("game_id = ?", gameID)
		if len(names) > 0 {
			retire = retire.Where("name NOT IN ?", names)
		}
		return retire.Delete(&models.GameCardDefinition{}).Error
	})
	if database.IsUniqueViolation(err) {
		return nil, apperr.Conflict("game %q was created concurrently", g.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert game %q: %w", g.Name, err)
	}
	return r.Get(ctx, gameID)
}
