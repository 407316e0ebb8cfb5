package carddef

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/cost"
	"reskin/backend/internal/models"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository returns a Repository backed by the card definition tables.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// model maps a kind to its table. This switch is the only place a kind
// reaches the database.
func model(kind Kind) (any, error) {
	switch kind {
	case TokenCards:
		return &models.TokenEngineCardDefinition{}, nil
	case DiscoveryCards:
		return &models.TokenEngineDiscoveryCardDefinition{}, nil
	}
	return nil, &apperr.UnsupportedTableError{TableName: kind.String()}
}

func (r *gormRepository) List(ctx context.Context, kind Kind) ([]Definition, error) {
	switch kind {
	case TokenCards:
		var rows []models.TokenEngineCardDefinition
		if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", kind, err)
		}
		defs := make([]Definition, len(rows))
		for i, row := range rows {
			defs[i] = tokenCardFromRow(row)
		}
		return defs, nil
	case DiscoveryCards:
		var rows []models.TokenEngineDiscoveryCardDefinition
		if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", kind, err)
		}
		defs := make([]Definition, len(rows))
		for i, row := range rows {
			defs[i] = discoveryCardFromRow(row)
		}
		return defs, nil
	}
	return nil, &apperr.UnsupportedTableError{TableName: kind.String()}
}

func (r *gormRepository) ExistingIDs(ctx context.Context, kind Kind, ids []int64) ([]int64, error) {
	m, err := model(kind)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var found []int64
	err = r.db.WithContext(ctx).Model(m).Where("id IN ?", ids).Order("id ASC").Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s ids: %w", kind, err)
	}
	return found, nil
}

func (r *gormRepository) SaveTokenCards(ctx context.Context, cards []TokenCard) error {
	if len(cards) == 0 {
		return nil
	}
	rows := make([]models.TokenEngineCardDefinition, len(cards))
	for i, c := range cards {
		rows[i] = models.TokenEngineCardDefinition{
			ID:     c.ID,
			Token:  string(c.Token),
			Points: c.Points,
			Tier:   c.Tier,
			Cost:   datatypes.JSON(cost.Encode(c.Cost)),
		}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "points", "tier", "cost", "updated_at"}),
	}).Create(&rows).Error
}

func (r *gormRepository) SaveDiscoveryCards(ctx context.Context, cards []DiscoveryCard) error {
	if len(cards) == 0 {
		return nil
	}
	rows := make([]models.TokenEngineDiscoveryCardDefinition, len(cards))
	for i, c := range cards {
		rows[i] = models.TokenEngineDiscoveryCardDefinition{
			ID:     c.ID,
			Points: c.Points,
			Cost:   datatypes.JSON(cost.Encode(c.Cost)),
		}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"points", "cost", "updated_at"}),
	}).Create(&rows).Error
}

// The cost column is decoded here and nowhere else.
func tokenCardFromRow(row models.TokenEngineCardDefinition) TokenCard {
	return TokenCard{
		ID:        row.ID,
		Token:     cost.Color(row.Token),
		Points:    row.Points,
		Tier:      row.Tier,
		Cost:      cost.Decode([]byte(row.Cost)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func discoveryCardFromRow(row models.TokenEngineDiscoveryCardDefinition) DiscoveryCard {
	return DiscoveryCard{
		ID:        row.ID,
		Points:    row.Points,
		Cost:      cost.Decode([]byte(row.Cost)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
