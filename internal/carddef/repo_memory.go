package carddef

import (
	"context"
	"slices"
	"sync"
	"time"

	"reskin/backend/internal/apperr"
)

// MemoryRepo is an in-memory Repository.
type MemoryRepo struct {
	mu        sync.RWMutex
	token     map[int64]TokenCard
	discovery map[int64]DiscoveryCard
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		token:     make(map[int64]TokenCard),
		discovery: make(map[int64]DiscoveryCard),
	}
}

func (r *MemoryRepo) List(_ context.Context, kind Kind) ([]Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var defs []Definition
	switch kind {
	case TokenCards:
		for _, c := range r.token {
			defs = append(defs, c)
		}
	case DiscoveryCards:
		for _, c := range r.discovery {
			defs = append(defs, c)
		}
	default:
		return nil, &apperr.UnsupportedTableError{TableName: kind.String()}
	}
	Sort(defs, OrderID)
	return defs, nil
}

func (r *MemoryRepo) ExistingIDs(_ context.Context, kind Kind, ids []int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var has func(int64) bool
	switch kind {
	case TokenCards:
		has = func(id int64) bool { _, ok := r.token[id]; return ok }
	case DiscoveryCards:
		has = func(id int64) bool { _, ok := r.discovery[id]; return ok }
	default:
		return nil, &apperr.UnsupportedTableError{TableName: kind.String()}
	}

	var found []int64
	for _, id := range ids {
		if has(id) && !slices.Contains(found, id) {
			found = append(found, id)
		}
	}
	slices.Sort(found)
	return found, nil
}

func (r *MemoryRepo) SaveTokenCards(_ context.Context, cards []TokenCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, c := range cards {
		if prev, ok := r.token[c.ID]; ok {
			c.CreatedAt = prev.CreatedAt
		} else {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		r.token[c.ID] = c
	}
	return nil
}

func (r *MemoryRepo) SaveDiscoveryCards(_ context.Context, cards []DiscoveryCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, c := range cards {
		if prev, ok := r.discovery[c.ID]; ok {
			c.CreatedAt = prev.CreatedAt
		} else {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		r.discovery[c.ID] = c
	}
	return nil
}
