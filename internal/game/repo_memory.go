package game

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"gorm.io/gorm"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/models"
)

// MemoryRepo is an in-memory Repository.
type MemoryRepo struct {
	mu          sync.RWMutex
	nextID      uint
	nextDescID  uint
	games       map[uint]models.Game
	descriptors map[uint]models.GameCardDefinition
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		games:       make(map[uint]models.Game),
		descriptors: make(map[uint]models.GameCardDefinition),
	}
}

func (r *MemoryRepo) withDescriptors(g models.Game) models.Game {
	g.CardDefinitions = nil
	for _, d := range r.descriptors {
		if d.GameID == g.ID && !d.DeletedAt.Valid {
			g.CardDefinitions = append(g.CardDefinitions, d)
		}
	}
	slices.SortFunc(g.CardDefinitions, func(a, b models.GameCardDefinition) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return g
}

func (r *MemoryRepo) List(_ context.Context) ([]models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]models.Game, 0, len(r.games))
	for _, g := range r.games {
		games = append(games, r.withDescriptors(g))
	}
	slices.SortFunc(games, func(a, b models.Game) int { return cmp.Compare(a.Name, b.Name) })
	return games, nil
}

func (r *MemoryRepo) Get(_ context.Context, id uint) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	if !ok {
		return nil, apperr.NotFound("Game")
	}
	g = r.withDescriptors(g)
	return &g, nil
}

func (r *MemoryRepo) Descriptor(_ context.Context, id uint) (*models.GameCardDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[id]
	if !ok {
		return nil, apperr.NotFound("Game card definition")
	}
	return &d, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, g models.Game, descriptors []models.GameCardDefinition) (*models.Game, error) {
	r.mu.Lock()
	now := time.Now()

	var existing *models.Game
	for id, candidate := range r.games {
		if candidate.Name == g.Name {
			c := r.games[id]
			existing = &c
			break
		}
	}
	if existing == nil {
		r.nextID++
		existing = &models.Game{Name: g.Name}
		existing.ID = r.nextID
		existing.CreatedAt = now
	}
	existing.Summary = g.Summary
	existing.Rules = g.Rules
	existing.UpdatedAt = now
	r.games[existing.ID] = *existing

	keep := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		keep[d.Name] = true
		var row *models.GameCardDefinition
		for id, candidate := range r.descriptors {
			if candidate.GameID == existing.ID && candidate.Name == d.Name {
				c := r.descriptors[id]
				row = &c
				break
			}
		}
		if row == nil {
			r.nextDescID++
			row = &models.GameCardDefinition{GameID: existing.ID, Name: d.Name}
			row.ID = r.nextDescID
			row.CreatedAt = now
		}
		row.Description = d.Description
		row.TableName = d.TableName
		row.DeletedAt = gorm.DeletedAt{}
		row.UpdatedAt = now
		r.descriptors[row.ID] = *row
	}
	for id, d := range r.descriptors {
		if d.GameID == existing.ID && !keep[d.Name] && !d.DeletedAt.Valid {
			d.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
			r.descriptors[id] = d
		}
	}
	id := existing.ID
	r.mu.Unlock()

	return r.Get(ctx, id)
}
