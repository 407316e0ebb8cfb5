package deck

import (
	"context"

	"reskin/backend/internal/models"
)

// Changes is a partial deck update. A nil CardDefinitionIDs leaves the
// selection alone; a non-nil one replaces it entirely. ClearDescription sets
// the description to NULL.
type Changes struct {
	Name              *string
	Description       *string
	ClearDescription  bool
	CardDefinitionIDs []int64
}

func (c Changes) empty() bool {
	return c.Name == nil && c.Description == nil && !c.ClearDescription && c.CardDefinitionIDs == nil
}

// Repository persists decks.
type Repository interface {
	Get(ctx context.Context, id uint) (*models.Deck, error)
	// Create fails with a ConflictError when the card set already has a deck
	// with that name.
	Create(ctx context.Context, d *models.Deck) error
	// Update applies every change in a single statement.
	Update(ctx context.Context, id uint, changes Changes) (*models.Deck, error)
	Delete(ctx context.Context, id uint) error
}
