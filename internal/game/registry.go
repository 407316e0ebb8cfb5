// Package game is the catalog of games and the card definition tables each
// one uses.
package game

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/carddef"
	"reskin/backend/internal/models"
)

// DescriptorInput describes one card definition table of a game.
type DescriptorInput struct {
	Name        string
	Description string
	TableName   string
}

// Input is the full desired state of a game for CreateOrUpdateGame.
type Input struct {
	Name        string
	Summary     string
	Rules       string
	Descriptors []DescriptorInput
}

// TableListing is one descriptor with the rows of its table. Supported is
// false when the descriptor names a table the store does not implement; Cards
// is then empty.
type TableListing struct {
	Descriptor models.GameCardDefinition
	Supported  bool
	Cards      []carddef.Definition
}

// Registry serves games and resolves descriptors.
type Registry struct {
	repo  Repository
	cards *carddef.Store
}

func NewRegistry(repo Repository, cards *carddef.Store) *Registry {
	return &Registry{repo: repo, cards: cards}
}

// ListGames returns every game ordered by name.
func (r *Registry) ListGames(ctx context.Context) ([]models.Game, error) {
	return r.repo.List(ctx)
}

// GetGame returns a game with its descriptors.
func (r *Registry) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	return r.repo.Get(ctx, id)
}

// Descriptor returns a descriptor that is still active. A retired descriptor
// is reported as an unsupported table because its table can no longer be
// resolved through the game.
func (r *Registry) Descriptor(ctx context.Context, id uint) (*models.GameCardDefinition, error) {
	d, err := r.repo.Descriptor(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.DeletedAt.Valid {
		return d, &apperr.UnsupportedTableError{TableName: d.TableName}
	}
	return d, nil
}

// CreateOrUpdateGame upserts a game by name. Repeating a call with the same
// input leaves the catalog unchanged.
func (r *Registry) CreateOrUpdateGame(ctx context.Context, in Input) (*models.Game, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("game name is required")
	}

	seen := make(map[string]bool, len(in.Descriptors))
	descriptors := make([]models.GameCardDefinition, 0, len(in.Descriptors))
	for _, d := range in.Descriptors {
		dname := strings.TrimSpace(d.Name)
		if dname == "" {
			return nil, apperr.Validation("card definition name is required")
		}
		if seen[dname] {
			return nil, apperr.Validation("card definition %q is listed twice", dname)
		}
		seen[dname] = true
		if _, err := carddef.ParseKind(d.TableName); err != nil {
			return nil, err
		}
		descriptors = append(descriptors, models.GameCardDefinition{
			Name:        dname,
			Description: d.Description,
			TableName:   d.TableName,
		})
	}

	return r.repo.Upsert(ctx, models.Game{Name: name, Summary: in.Summary, Rules: in.Rules}, descriptors)
}

// ListGameCards loads every descriptor's table for a game concurrently.
func (r *Registry) ListGameCards(ctx context.Context, id uint, order carddef.Order) ([]TableListing, error) {
	g, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	listings := make([]TableListing, len(g.CardDefinitions))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, d := range g.CardDefinitions {
		listings[i] = TableListing{Descriptor: d, Cards: []carddef.Definition{}}
		kind, err := carddef.ParseKind(d.TableName)
		if err != nil {
			continue
		}
		listings[i].Supported = true
		eg.Go(func() error {
			cards, err := r.cards.List(egCtx, kind, order, carddef.Filter{})
			if err != nil {
				return err
			}
			listings[i].Cards = cards
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return listings, nil
}
