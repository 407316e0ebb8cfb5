// Package cardset manages user-owned card sets and who may change them.
package cardset

import (
	"context"
	"strings"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/models"
)

// View is a card set with the relations that were asked for. Game and Owner
// are nil and Decks is nil unless the matching Include flag was set.
type View struct {
	Set   models.CardSet
	Game  *models.Game
	Owner *models.User
	Decks []models.Deck
}

func newView(set models.CardSet, include Include) View {
	v := View{Set: set}
	if include.Game {
		g := set.Game
		v.Game = &g
	}
	if include.User {
		u := set.User
		v.Owner = &u
	}
	if include.Decks {
		v.Decks = set.Decks
		if v.Decks == nil {
			v.Decks = []models.Deck{}
		}
	}
	v.Set.Game, v.Set.User, v.Set.Decks = models.Game{}, models.User{}, nil
	return v
}

// ParseInclude reads a comma-separated relation list such as "game,user".
func ParseInclude(s string) (Include, error) {
	var include Include
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "game":
			include.Game = true
		case "user":
			include.User = true
		case "decks":
			include.Decks = true
		default:
			return Include{}, apperr.Validation("unknown include %q", part)
		}
	}
	return include, nil
}

// Filter selects card sets for ListCardSets. OwnerID must come from the
// authenticated principal, never from client input.
type Filter struct {
	OwnerID *uint
	Include Include
	Page    int
	Limit   int
}

// CreateInput holds the fields of a new card set.
type CreateInput struct {
	Title       string
	Description string
	ImageURL    string
	GameID      uint
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListCardSets returns card sets newest first and the total number matching
// the filter.
func (s *Service) ListCardSets(ctx context.Context, f Filter) ([]View, int64, error) {
	q := ListQuery{OwnerID: f.OwnerID, Include: f.Include}
	if f.Limit > 0 {
		page := max(f.Page, 1)
		q.Offset = (page - 1) * f.Limit
		q.Limit = f.Limit
	}

	sets, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	views := make([]View, len(sets))
	for i, set := range sets {
		views[i] = newView(set, f.Include)
	}
	return views, total, nil
}

func (s *Service) GetCardSetByID(ctx context.Context, id uint, include Include) (*View, error) {
	set, err := s.repo.Get(ctx, id, include)
	if err != nil {
		return nil, err
	}
	v := newView(*set, include)
	return &v, nil
}

// CreateCardSet creates a card set owned by ownerID. Uniqueness of the title
// per owner is enforced by the store, so concurrent duplicates still conflict.
func (s *Service) CreateCardSet(ctx context.Context, in CreateInput, ownerID uint) (*models.CardSet, error) {
	set := models.CardSet{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		GameID:      in.GameID,
		UserID:      ownerID,
	}
	switch {
	case set.Title == "":
		return nil, apperr.Validation("title is required")
	case set.Description == "":
		return nil, apperr.Validation("description is required")
	case set.ImageURL == "":
		return nil, apperr.Validation("imageUrl is required")
	case set.GameID == 0:
		return nil, apperr.Validation("gameId is required")
	}

	if err := s.repo.Create(ctx, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// Owned returns the card set if actorID owns it.
func (s *Service) Owned(ctx context.Context, id, actorID uint) (*models.CardSet, error) {
	set, err := s.repo.Get(ctx, id, Include{})
	if err != nil {
		return nil, err
	}
	if set.UserID != actorID {
		return nil, apperr.Forbidden("you do not own this card set")
	}
	return set, nil
}

// UpdateCardSet applies changes to a set owned by actorID.
func (s *Service) UpdateCardSet(ctx context.Context, id uint, changes Changes, actorID uint) (*models.CardSet, error) {
	if _, err := s.Owned(ctx, id, actorID); err != nil {
		return nil, err
	}
	var err error
	if changes.Title, err = nonBlank("title", changes.Title); err != nil {
		return nil, err
	}
	if changes.Description, err = nonBlank("description", changes.Description); err != nil {
		return nil, err
	}
	if changes.ImageURL, err = nonBlank("imageUrl", changes.ImageURL); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, changes)
}

func nonBlank(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil, apperr.Validation("%s must not be blank", field)
	}
	return &trimmed, nil
}

// DeleteCardSet removes a set owned by actorID together with its decks.
func (s *Service) DeleteCardSet(ctx context.Context, id, actorID uint) error {
	if _, err := s.Owned(ctx, id, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
