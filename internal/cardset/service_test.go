package cardset

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/models"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	repo.PutGame(models.Game{Model: gorm.Model{ID: 1}, Name: "TokenEngine"})
	repo.PutGame(models.Game{Model: gorm.Model{ID: 2}, Name: "Alchemists"})
	repo.PutUser(models.User{Model: gorm.Model{ID: 7}, Username: "ada"})
	repo.PutUser(models.User{Model: gorm.Model{ID: 8}, Username: "grace"})
	return NewService(repo), repo
}

func starter(title string) CreateInput {
	return CreateInput{Title: title, Description: "A reskin", ImageURL: "https://img.example/1.png", GameID: 1}
}

func TestCreateCardSet(t *testing.T) {
	svc, _ := newTestService(t)

	set, err := svc.CreateCardSet(context.Background(), starter("  Starter "), 7)
	require.NoError(t, err)
	assert.NotZero(t, set.ID)
	assert.Equal(t, "Starter", set.Title)
	assert.Equal(t, uint(7), set.UserID)
}

func TestCreateCardSetValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for name, in := range map[string]CreateInput{
		"blank title":       {Description: "d", ImageURL: "u", GameID: 1},
		"blank description": {Title: "t", ImageURL: "u", GameID: 1},
		"blank image":       {Title: "t", Description: "d", GameID: 1},
		"missing game":      {Title: "t", Description: "d", ImageURL: "u"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateCardSet(ctx, in, 7)
			var verr *apperr.ValidationError
			assert.True(t, errors.As(err, &verr), "got %v", err)
		})
	}

	in := starter("Starter")
	in.GameID = 99
	_, err := svc.CreateCardSet(ctx, in, 7)
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestCardSetTitleUniquePerOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCardSet(ctx, starter("Starter"), 7)
	require.NoError(t, err)

	_, err = svc.CreateCardSet(ctx, starter("Starter"), 7)
	var conflict *apperr.ConflictError
	assert.True(t, errors.As(err, &conflict))

	_, err = svc.CreateCardSet(ctx, starter("Starter"), 8)
	assert.NoError(t, err)
}

func TestListCardSetsOwnerIsolation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i, owner := range []uint{7, 8, 7, 8, 8} {
		_, err := svc.CreateCardSet(ctx, starter(fmt.Sprintf("Set %d", i)), owner)
		require.NoError(t, err)
	}

	owner := uint(7)
	mine, total, err := svc.ListCardSets(ctx, Filter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Equal(t, int64(len(mine)), total)
	require.NotEmpty(t, mine)
	for _, v := range mine {
		assert.Equal(t, uint(7), v.Set.UserID)
	}

	all, total, err := svc.ListCardSets(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, all, 5)
}

func TestListCardSetsNewestFirstWithPaging(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []uint
	for _, title := range []string{"One", "Two", "Three"} {
		set, err := svc.CreateCardSet(ctx, starter(title), 7)
		require.NoError(t, err)
		ids = append(ids, set.ID)
	}

	page, total, err := svc.ListCardSets(ctx, Filter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].Set.ID)
	assert.Equal(t, ids[1], page[1].Set.ID)

	page, _, err = svc.ListCardSets(ctx, Filter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].Set.ID)
}

func TestIncludes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	set, err := svc.CreateCardSet(ctx, starter("Starter"), 7)
	require.NoError(t, err)

	plain, err := svc.GetCardSetByID(ctx, set.ID, Include{})
	require.NoError(t, err)
	assert.Nil(t, plain.Game)
	assert.Nil(t, plain.Owner)
	assert.Nil(t, plain.Decks)

	full, err := svc.GetCardSetByID(ctx, set.ID, Include{Game: true, User: true, Decks: true})
	require.NoError(t, err)
	require.NotNil(t, full.Game)
	assert.Equal(t, "TokenEngine", full.Game.Name)
	require.NotNil(t, full.Owner)
	assert.Equal(t, "ada", full.Owner.Username)
	assert.NotNil(t, full.Decks)
	assert.Empty(t, full.Decks)
}

func TestParseInclude(t *testing.T) {
	inc, err := ParseInclude("game, USER")
	require.NoError(t, err)
	assert.Equal(t, Include{Game: true, User: true}, inc)

	inc, err = ParseInclude("")
	require.NoError(t, err)
	assert.Equal(t, Include{}, inc)

	_, err = ParseInclude("game,password")
	var verr *apperr.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestUpdateCardSetOwnerOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	set, err := svc.CreateCardSet(ctx, starter("Starter"), 7)
	require.NoError(t, err)
	_, err = svc.CreateCardSet(ctx, starter("Advanced"), 7)
	require.NoError(t, err)

	title := "Renamed"
	_, err = svc.UpdateCardSet(ctx, set.ID, Changes{Title: &title}, 8)
	var forbidden *apperr.ForbiddenError
	assert.True(t, errors.As(err, &forbidden))

	updated, err := svc.UpdateCardSet(ctx, set.ID, Changes{Title: &title}, 7)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "A reskin", updated.Description)

	taken := "Advanced"
	_, err = svc.UpdateCardSet(ctx, set.ID, Changes{Title: &taken}, 7)
	var conflict *apperr.ConflictError
	assert.True(t, errors.As(err, &conflict))

	blank := " "
	_, err = svc.UpdateCardSet(ctx, set.ID, Changes{ImageURL: &blank}, 7)
	var verr *apperr.ValidationError
	assert.True(t, errors.As(err, &verr))
}

type fakeDecks struct {
	decks   map[uint][]models.Deck
	deleted []uint
}

func (f *fakeDecks) DecksOf(cardSetID uint) []models.Deck { return f.decks[cardSetID] }
func (f *fakeDecks) DeleteCardSet(cardSetID uint)       { f.deleted = append(f.deleted, cardSetID) }

func TestDeleteCardSetCascades(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	decks := &fakeDecks{decks: map[uint][]models.Deck{}}
	repo.UseDecks(decks)

	set, err := svc.CreateCardSet(ctx, starter("Starter"), 7)
	require.NoError(t, err)
	decks.decks[set.ID] = []models.Deck{{ID: 1, Name: "Tier 1", CardSetID: set.ID}}

	view, err := svc.GetCardSetByID(ctx, set.ID, Include{Decks: true})
	require.NoError(t, err)
	assert.Len(t, view.Decks, 1)

	var forbidden *apperr.ForbiddenError
	assert.True(t, errors.As(svc.DeleteCardSet(ctx, set.ID, 8), &forbidden))

	require.NoError(t, svc.DeleteCardSet(ctx, set.ID, 7))
	assert.Equal(t, []uint{set.ID}, decks.deleted)

	_, err = svc.GetCardSetByID(ctx, set.ID, Include{})
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
