package cardset

import (
	"context"

	"reskin/backend/internal/models"
)

// Include selects which relations are loaded alongside a card set.
type Include struct {
	Game  bool
	User  bool
	Decks bool
}

// ListQuery narrows a listing. A nil OwnerID lists every card set.
type ListQuery struct {
	OwnerID *uint
	Include Include
	Offset  int
	Limit   int
}

// Changes holds the editable card set fields; nil fields are left alone.
type Changes struct {
	Title       *string
	Description *string
	ImageURL    *string
}

// Repository persists card sets.
type Repository interface {
	// List returns card sets newest first, plus the total count before paging.
	List(ctx context.Context, q ListQuery) ([]models.CardSet, int64, error)
	Get(ctx context.Context, id uint, include Include) (*models.CardSet, error)
	// Create fails with a NotFoundError for an unknown game and a
	// ConflictError when the owner already has a set with that title.
	Create(ctx context.Context, set *models.CardSet) error
	Update(ctx context.Context, id uint, changes Changes) (*models.CardSet, error)
	// Delete removes the set and every deck in it.
	Delete(ctx context.Context, id uint) error
}
