package game

import (
	"context"

	"reskin/backend/internal/models"
)

// Repository persists games and their card definition descriptors.
type Repository interface {
	// List returns every game ordered by name, each with its active descriptors.
	List(ctx context.Context) ([]models.Game, error)
	// Get returns a game with its active descriptors.
	Get(ctx context.Context, id uint) (*models.Game, error)
	// Descriptor returns a descriptor by id, including retired ones; a retired
	// descriptor has DeletedAt set.
	Descriptor(ctx context.Context, id uint) (*models.GameCardDefinition, error)
	// Upsert creates or updates the game named g.Name and makes descriptors
	// its exact set of active descriptors, atomically.
	Upsert(ctx context.Context, g models.Game, descriptors []models.GameCardDefinition) (*models.Game, error)
}
