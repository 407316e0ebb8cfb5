// Package deck composes decks: named selections of rows from one card
// definition table, owned through a card set.
package deck

import (
	"context"
	"errors"
	"strings"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/carddef"
	"reskin/backend/internal/cardset"
	"reskin/backend/internal/game"
	"reskin/backend/internal/models"
)

// Detail is a deck with its card set and descriptor resolved. Supported is
// false when the descriptor has been retired or names an unknown table; the
// deck stays readable but its cards cannot be listed or replaced.
type Detail struct {
	Deck       models.Deck
	CardSet    models.CardSet
	Descriptor models.GameCardDefinition
	Supported  bool
}

// CreateInput holds the fields of a new deck.
type CreateInput struct {
	Name                 string
	Description          *string
	CardSetID            uint
	GameCardDefinitionID uint
	CardDefinitionIDs    []int64
}

type Service struct {
	repo  Repository
	sets  *cardset.Service
	games *game.Registry
	cards *carddef.Store
}

func NewService(repo Repository, sets *cardset.Service, games *game.Registry, cards *carddef.Store) *Service {
	return &Service{repo: repo, sets: sets, games: games, cards: cards}
}

// CreateDeck creates a deck in a card set owned by actorID. Every selected id
// must exist in the table the descriptor names; otherwise nothing is written
// and the error lists the offending ids.
func (s *Service) CreateDeck(ctx context.Context, in CreateInput, actorID uint) (*Detail, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("deck name is required")
	}
	set, err := s.sets.Owned(ctx, in.CardSetID, actorID)
	if err != nil {
		return nil, err
	}

	descriptor, err := s.games.Descriptor(ctx, in.GameCardDefinitionID)
	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		return nil, apperr.Validation("game card definition %d does not exist", in.GameCardDefinitionID)
	}
	if err != nil {
		return nil, err
	}
	if descriptor.GameID != set.GameID {
		return nil, apperr.Validation("game card definition %d belongs to a different game than the card set", descriptor.ID)
	}

	ids, err := s.validSelection(ctx, descriptor, in.CardDefinitionIDs)
	if err != nil {
		return nil, err
	}

	d := models.Deck{
		Name:                 name,
		Description:          optional(in.Description),
		CardSetID:            set.ID,
		GameCardDefinitionID: descriptor.ID,
		CardDefinitionIDs:    ids,
	}
	if err := s.repo.Create(ctx, &d); err != nil {
		return nil, err
	}
	return &Detail{Deck: d, CardSet: *set, Descriptor: *descriptor, Supported: true}, nil
}

// GetDeckByID returns a deck with its card set and descriptor.
func (s *Service) GetDeckByID(ctx context.Context, id uint) (*Detail, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, d)
}

func (s *Service) detail(ctx context.Context, d *models.Deck) (*Detail, error) {
	set, err := s.sets.GetCardSetByID(ctx, d.CardSetID, cardset.Include{})
	if err != nil {
		return nil, err
	}
	descriptor, err := s.games.Descriptor(ctx, d.GameCardDefinitionID)
	var unsupported *apperr.UnsupportedTableError
	switch {
	case errors.As(err, &unsupported):
		return &Detail{Deck: *d, CardSet: set.Set, Descriptor: *descriptor}, nil
	case err != nil:
		return nil, err
	}
	_, kindErr := carddef.ParseKind(descriptor.TableName)
	return &Detail{Deck: *d, CardSet: set.Set, Descriptor: *descriptor, Supported: kindErr == nil}, nil
}

// ReplaceCardSelection makes ids the deck's complete selection. Duplicates
// are dropped; a single unknown id rejects the whole call.
func (s *Service) ReplaceCardSelection(ctx context.Context, id uint, ids []int64, actorID uint) (*Detail, error) {
	return s.UpdateDeck(ctx, id, Changes{CardDefinitionIDs: carddef.Normalize(ids)}, actorID)
}

// UpdateDeck applies changes to a deck whose card set actorID owns. The
// selection, when present, is validated in full before anything is written.
func (s *Service) UpdateDeck(ctx context.Context, id uint, changes Changes, actorID uint) (*Detail, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.sets.Owned(ctx, d.CardSetID, actorID); err != nil {
		return nil, err
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return nil, apperr.Validation("deck name must not be blank")
		}
		changes.Name = &name
	}
	if changes.Description != nil {
		changes.Description = optional(changes.Description)
		changes.ClearDescription = changes.ClearDescription || changes.Description == nil
	}
	if changes.CardDefinitionIDs != nil {
		descriptor, err := s.games.Descriptor(ctx, d.GameCardDefinitionID)
		if err != nil {
			return nil, err
		}
		if changes.CardDefinitionIDs, err = s.validSelection(ctx, descriptor, changes.CardDefinitionIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, updated)
}

// DeleteDeck removes a deck whose card set actorID owns.
func (s *Service) DeleteDeck(ctx context.Context, id, actorID uint) error {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.sets.Owned(ctx, d.CardSetID, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListDeckCards returns the selected rows of the deck's table.
func (s *Service) ListDeckCards(ctx context.Context, id uint, order carddef.Order) ([]carddef.Definition, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	descriptor, err := s.games.Descriptor(ctx, d.GameCardDefinitionID)
	if err != nil {
		return nil, err
	}
	kind, err := carddef.ParseKind(descriptor.TableName)
	if err != nil {
		return nil, err
	}
	return s.cards.ListByIDs(ctx, kind, d.CardDefinitionIDs, order)
}

func (s *Service) validSelection(ctx context.Context, descriptor *models.GameCardDefinition, ids []int64) ([]int64, error) {
	kind, err := carddef.ParseKind(descriptor.TableName)
	if err != nil {
		return nil, err
	}
	ids = carddef.Normalize(ids)
	missing, err := s.cards.MissingIDs(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &apperr.ValidationError{
			Message:    "card definitions do not exist in " + descriptor.TableName,
			InvalidIDs: missing,
		}
	}
	return ids, nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
