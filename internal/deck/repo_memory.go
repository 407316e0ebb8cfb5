package deck

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/models"
)

// MemoryRepo is an in-memory Repository. It also serves as the deck source of
// an in-memory card set repository.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID uint
	decks  map[uint]models.Deck
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{decks: make(map[uint]models.Deck)}
}

func clone(d models.Deck) models.Deck {
	d.CardDefinitionIDs = slices.Clone(d.CardDefinitionIDs)
	if d.Description != nil {
		desc := *d.Description
		d.Description = &desc
	}
	return d
}

func (r *MemoryRepo) Get(_ context.Context, id uint) (*models.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.decks[id]
	if !ok {
		return nil, apperr.NotFound("Deck")
	}
	d = clone(d)
	return &d, nil
}

func (r *MemoryRepo) nameTaken(cardSetID uint, name string, except uint) bool {
	for _, d := range r.decks {
		if d.ID != except && d.CardSetID == cardSetID && d.Name == name {
			return true
		}
	}
	return false
}

func (r *MemoryRepo) Create(_ context.Context, d *models.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(d.CardSetID, d.Name, 0) {
		return apperr.Conflict("a deck named %q already exists in this card set", d.Name)
	}
	r.nextID++
	now := time.Now()
	d.ID = r.nextID
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.CardDefinitionIDs == nil {
		d.CardDefinitionIDs = []int64{}
	}
	r.decks[d.ID] = clone(*d)
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, id uint, changes Changes) (*models.Deck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.decks[id]
	if !ok {
		return nil, apperr.NotFound("Deck")
	}
	if changes.empty() {
		d = clone(d)
		return &d, nil
	}
	if changes.Name != nil {
		if r.nameTaken(d.CardSetID, *changes.Name, id) {
			return nil, apperr.Conflict("a deck named %q already exists in this card set", *changes.Name)
		}
		d.Name = *changes.Name
	}
	switch {
	case changes.ClearDescription:
		d.Description = nil
	case changes.Description != nil:
		desc := *changes.Description
		d.Description = &desc
	}
	if changes.CardDefinitionIDs != nil {
		d.CardDefinitionIDs = slices.Clone(changes.CardDefinitionIDs)
	}
	d.UpdatedAt = time.Now()
	r.decks[id] = d

	d = clone(d)
	return &d, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.decks[id]; !ok {
		return apperr.NotFound("Deck")
	}
	delete(r.decks, id)
	return nil
}

// DecksOf returns the decks of a card set, newest first.
func (r *MemoryRepo) DecksOf(cardSetID uint) []models.Deck {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decks := []models.Deck{}
	for _, d := range r.decks {
		if d.CardSetID == cardSetID {
			decks = append(decks, clone(d))
		}
	}
	slices.SortFunc(decks, func(a, b models.Deck) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	return decks
}

// DeleteCardSet removes every deck of a card set.
func (r *MemoryRepo) DeleteCardSet(cardSetID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, d := range r.decks {
		if d.CardSetID == cardSetID {
			delete(r.decks, id)
		}
	}
}
