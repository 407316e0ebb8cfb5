package cardset

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/models"
)

// DeckSource lets the in-memory repository load and cascade-delete decks
// kept by another in-memory repository.
type DeckSource interface {
	DecksOf(cardSetID uint) []models.Deck
	DeleteCardSet(cardSetID uint)
}

// MemoryRepo is an in-memory Repository. Games and users referenced by card
// sets are registered with PutGame and PutUser.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID uint
	sets   map[uint]models.CardSet
	games  map[uint]models.Game
	users  map[uint]models.User
	decks  DeckSource
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sets:  make(map[uint]models.CardSet),
		games: make(map[uint]models.Game),
		users: make(map[uint]models.User),
	}
}

func (r *MemoryRepo) PutGame(g models.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[g.ID] = g
}

func (r *MemoryRepo) PutUser(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

// UseDecks connects the deck store used for includes and cascades.
func (r *MemoryRepo) UseDecks(decks DeckSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decks = decks
}

func (r *MemoryRepo) load(set models.CardSet, include Include) models.CardSet {
	if include.Game {
		set.Game = r.games[set.GameID]
	}
	if include.User {
		set.User = r.users[set.UserID]
	}
	if include.Decks {
		set.Decks = []models.Deck{}
		if r.decks != nil {
			set.Decks = r.decks.DecksOf(set.ID)
		}
	}
	return set
}

func newestFirst(a, b models.CardSet) int {
	return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
}

func (r *MemoryRepo) List(_ context.Context, q ListQuery) ([]models.CardSet, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sets []models.CardSet
	for _, s := range r.sets {
		if q.OwnerID == nil || s.UserID == *q.OwnerID {
			sets = append(sets, s)
		}
	}
	slices.SortFunc(sets, newestFirst)

	total := int64(len(sets))
	if q.Limit > 0 {
		start := min(q.Offset, len(sets))
		end := min(start+q.Limit, len(sets))
		sets = sets[start:end]
	}
	for i := range sets {
		sets[i] = r.load(sets[i], q.Include)
	}
	return sets, total, nil
}

func (r *MemoryRepo) Get(_ context.Context, id uint, include Include) (*models.CardSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.sets[id]
	if !ok {
		return nil, apperr.NotFound("Card set")
	}
	set = r.load(set, include)
	return &set, nil
}

func (r *MemoryRepo) Create(_ context.Context, set *models.CardSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[set.GameID]; !ok {
		return apperr.NotFound("Game")
	}
	for _, s := range r.sets {
		if s.UserID == set.UserID && s.Title == set.Title {
			return apperr.Conflict("a card set titled %q already exists", set.Title)
		}
	}

	r.nextID++
	now := time.Now()
	set.ID = r.nextID
	set.CreatedAt = now
	set.UpdatedAt = now
	stored := *set
	stored.Game, stored.User, stored.Decks = models.Game{}, models.User{}, nil
	r.sets[set.ID] = stored
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, id uint, changes Changes) (*models.CardSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sets[id]
	if !ok {
		return nil, apperr.NotFound("Card set")
	}
	if changes.Title != nil {
		for _, s := range r.sets {
			if s.ID != id && s.UserID == set.UserID && s.Title == *changes.Title {
				return nil, apperr.Conflict("a card set titled %q already exists", *changes.Title)
			}
		}
		set.Title = *changes.Title
	}
	if changes.Description != nil {
		set.Description = *changes.Description
	}
	if changes.ImageURL != nil {
		set.ImageURL = *changes.ImageURL
	}
	set.UpdatedAt = time.Now()
	r.sets[id] = set
	return &set, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sets[id]; !ok {
		return apperr.NotFound("Card set")
	}
	delete(r.sets, id)
	if r.decks != nil {
		r.decks.DeleteCardSet(id)
	}
	return nil
}
