// Package carddef provides access to the per-game card definition tables.
package carddef

import (
	"context"
	"fmt"
	"slices"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/cost"
)

// Store lists, filters and validates card definitions.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// ListDefinitions resolves tableName and lists its rows.
func (s *Store) ListDefinitions(ctx context.Context, tableName string, order Order, filter Filter) ([]Definition, error) {
	kind, err := ParseKind(tableName)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, kind, order, filter)
}

// List returns kind's rows that pass filter, sorted by order.
func (s *Store) List(ctx context.Context, kind Kind, order Order, filter Filter) ([]Definition, error) {
	if err := filter.Validate(kind); err != nil {
		return nil, err
	}

	all, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	defs := make([]Definition, 0, len(all))
	for _, d := range all {
		if filter.Match(d) {
			defs = append(defs, d)
		}
	}
	Sort(defs, order)
	return defs, nil
}

// ListByIDs returns kind's rows whose id is in ids, sorted by order.
func (s *Store) ListByIDs(ctx context.Context, kind Kind, ids []int64, order Order) ([]Definition, error) {
	all, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	defs := make([]Definition, 0, len(ids))
	for _, d := range all {
		if slices.Contains(ids, d.DefinitionID()) {
			defs = append(defs, d)
		}
	}
	Sort(defs, order)
	return defs, nil
}

// MissingIDs returns the ids, in ascending order, that do not exist in kind's
// table.
func (s *Store) MissingIDs(ctx context.Context, kind Kind, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.repo.ExistingIDs(ctx, kind, ids)
	if err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range Normalize(ids) {
		if !slices.Contains(found, id) {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// SeedTokenCards validates and stores token card rows.
func (s *Store) SeedTokenCards(ctx context.Context, cards []TokenCard) error {
	for _, c := range cards {
		if !c.Token.Valid() {
			return apperr.Validation("card %d has unknown token color %q", c.ID, c.Token)
		}
		if c.Tier < 1 || c.Tier > 3 {
			return apperr.Validation("card %d has tier %d, want 1-3", c.ID, c.Tier)
		}
		if err := validateRow(c.ID, c.Points, c.Cost); err != nil {
			return err
		}
	}
	if err := s.repo.SaveTokenCards(ctx, cards); err != nil {
		return fmt.Errorf("failed to save token cards: %w", err)
	}
	return nil
}

// SeedDiscoveryCards validates and stores discovery card rows.
func (s *Store) SeedDiscoveryCards(ctx context.Context, cards []DiscoveryCard) error {
	for _, c := range cards {
		if err := validateRow(c.ID, c.Points, c.Cost); err != nil {
			return err
		}
	}
	if err := s.repo.SaveDiscoveryCards(ctx, cards); err != nil {
		return fmt.Errorf("failed to save discovery cards: %w", err)
	}
	return nil
}

func validateRow(id int64, points int, c cost.Vector) error {
	if id <= 0 {
		return apperr.Validation("card id must be positive, got %d", id)
	}
	if points < 0 {
		return apperr.Validation("card %d has negative points", id)
	}
	if err := c.Validate(); err != nil {
		return apperr.Validation("card %d: %v", id, err)
	}
	return nil
}

// Normalize deduplicates ids and sorts them ascending. Selections are sets, so
// this is their canonical form. The result is never nil.
func Normalize(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	slices.Sort(out)
	return slices.Compact(out)
}
