package deck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/carddef"
	"reskin/backend/internal/cardset"
	"reskin/backend/internal/cost"
	"reskin/backend/internal/game"
	"reskin/backend/internal/models"
)

type fixture struct {
	decks     *Service
	sets      *cardset.Service
	games     *game.Registry
	tokenEng  *models.Game
	other     *models.Game
	tokenDesc uint
	discDesc  uint
	otherDesc uint
}

var tokenEngineDescriptors = []game.DescriptorInput{
	{Name: "Token Cards", TableName: "TokenEngineCardDefinition"},
	{Name: "Discovery Cards", TableName: "TokenEngineDiscoveryCardDefinition"},
}

func descriptorID(t *testing.T, g *models.Game, name string) uint {
	t.Helper()
	for _, d := range g.CardDefinitions {
		if d.Name == name {
			return d.ID
		}
	}
	t.Fatalf("game %s has no descriptor %q", g.Name, name)
	return 0
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	cards := carddef.NewStore(carddef.NewMemoryRepo())
	var tokens []carddef.TokenCard
	for id := int64(1); id <= 10; id++ {
		tokens = append(tokens, carddef.TokenCard{ID: id, Token: cost.White, Tier: 1})
	}
	tokens = append(tokens,
		carddef.TokenCard{ID: 101, Token: cost.Blue, Tier: 1, Points: 0, Cost: cost.Vector{White: 1, Green: 1, Red: 1, Black: 1}},
		carddef.TokenCard{ID: 102, Token: cost.Red, Tier: 1, Points: 1, Cost: cost.Vector{White: 4}},
	)
	require.NoError(t, cards.SeedTokenCards(ctx, tokens))
	require.NoError(t, cards.SeedDiscoveryCards(ctx, []carddef.DiscoveryCard{{ID: 500, Points: 3}}))

	registry := game.NewRegistry(game.NewMemoryRepo(), cards)
	te, err := registry.CreateOrUpdateGame(ctx, game.Input{Name: "TokenEngine", Descriptors: tokenEngineDescriptors})
	require.NoError(t, err)
	other, err := registry.CreateOrUpdateGame(ctx, game.Input{
		Name:        "Gem Rush",
		Descriptors: []game.DescriptorInput{{Name: "Token Cards", TableName: "TokenEngineCardDefinition"}},
	})
	require.NoError(t, err)

	setRepo := cardset.NewMemoryRepo()
	setRepo.PutGame(*te)
	setRepo.PutGame(*other)
	setRepo.PutUser(models.User{Model: gorm.Model{ID: 7}, Username: "ada"})
	setRepo.PutUser(models.User{Model: gorm.Model{ID: 8}, Username: "grace"})
	deckRepo := NewMemoryRepo()
	setRepo.UseDecks(deckRepo)
	sets := cardset.NewService(setRepo)

	return &fixture{
		decks:     NewService(deckRepo, sets, registry, cards),
		sets:      sets,
		games:     registry,
		tokenEng:  te,
		other:     other,
		tokenDesc: descriptorID(t, te, "Token Cards"),
		discDesc:  descriptorID(t, te, "Discovery Cards"),
		otherDesc: descriptorID(t, other, "Token Cards"),
	}
}

func (f *fixture) starterSet(t *testing.T, owner uint) *models.CardSet {
	t.Helper()
	set, err := f.sets.CreateCardSet(context.Background(), cardset.CreateInput{
		Title:       "Starter",
		Description: "First reskin",
		ImageURL:    "https://img.example/starter.png",
		GameID:      f.tokenEng.ID,
	}, owner)
	require.NoError(t, err)
	return set
}

func (f *fixture) tier1(t *testing.T, setID uint, ids ...int64) *Detail {
	t.Helper()
	d, err := f.decks.CreateDeck(context.Background(), CreateInput{
		Name:                 "Tier 1",
		CardSetID:            setID,
		GameCardDefinitionID: f.tokenDesc,
		CardDefinitionIDs:    ids,
	}, 7)
	require.NoError(t, err)
	return d
}

func TestStarterDeckScenario(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	created := f.tier1(t, set.ID, 102, 101)

	got, err := f.decks.GetDeckByID(context.Background(), created.Deck.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{101, 102}, got.Deck.CardDefinitionIDs)
	assert.Equal(t, "Starter", got.CardSet.Title)
	assert.Equal(t, "Token Cards", got.Descriptor.Name)
	assert.True(t, got.Supported)
}

func TestCreateDeckEmptySelection(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID)
	assert.NotNil(t, d.Deck.CardDefinitionIDs)
	assert.Empty(t, d.Deck.CardDefinitionIDs)
}

func TestCreateDeckValidation(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	ctx := context.Background()
	var verr *apperr.ValidationError

	_, err := f.decks.CreateDeck(ctx, CreateInput{Name: " ", CardSetID: set.ID, GameCardDefinitionID: f.tokenDesc}, 7)
	assert.True(t, errors.As(err, &verr))

	_, err = f.decks.CreateDeck(ctx, CreateInput{Name: "X", CardSetID: set.ID, GameCardDefinitionID: 999}, 7)
	assert.True(t, errors.As(err, &verr))

	_, err = f.decks.CreateDeck(ctx, CreateInput{
		Name: "X", CardSetID: set.ID, GameCardDefinitionID: f.tokenDesc, CardDefinitionIDs: []int64{101, 7777, 8888},
	}, 7)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []int64{7777, 8888}, verr.InvalidIDs)

	_, err = f.decks.CreateDeck(ctx, CreateInput{Name: "X", CardSetID: 404, GameCardDefinitionID: f.tokenDesc}, 7)
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))

	_, err = f.decks.CreateDeck(ctx, CreateInput{Name: "X", CardSetID: set.ID, GameCardDefinitionID: f.tokenDesc}, 8)
	var forbidden *apperr.ForbiddenError
	assert.True(t, errors.As(err, &forbidden))
}

func TestCreateDeckRejectsCrossGameDescriptor(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)

	_, err := f.decks.CreateDeck(context.Background(), CreateInput{
		Name: "Borrowed", CardSetID: set.ID, GameCardDefinitionID: f.otherDesc,
	}, 7)
	var verr *apperr.ValidationError
	assert.True(t, errors.As(err, &verr), "got %v", err)
}

func TestCreateDeckNameUniquePerCardSet(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	f.tier1(t, set.ID)

	_, err := f.decks.CreateDeck(context.Background(), CreateInput{
		Name: "Tier 1", CardSetID: set.ID, GameCardDefinitionID: f.discDesc,
	}, 7)
	var conflict *apperr.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestReplaceCardSelectionDeduplicates(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID, 101)

	got, err := f.decks.ReplaceCardSelection(context.Background(), d.Deck.ID, []int64{1, 1, 2, 3, 3}, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, []int64(got.Deck.CardDefinitionIDs))
}

func TestReplaceCardSelectionIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID, 101, 102)
	ctx := context.Background()

	_, err := f.decks.ReplaceCardSelection(ctx, d.Deck.ID, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 4242}, 7)
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []int64{4242}, verr.InvalidIDs)

	got, err := f.decks.GetDeckByID(ctx, d.Deck.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, []int64(got.Deck.CardDefinitionIDs))
}

func TestReplaceCardSelectionOwnerOnly(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID, 101)
	ctx := context.Background()

	_, err := f.decks.ReplaceCardSelection(ctx, d.Deck.ID, []int64{102}, 8)
	var forbidden *apperr.ForbiddenError
	require.True(t, errors.As(err, &forbidden))

	got, err := f.decks.GetDeckByID(ctx, d.Deck.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{101}, []int64(got.Deck.CardDefinitionIDs))
}

func TestReplaceCardSelectionEmpty(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID, 101, 102)

	got, err := f.decks.ReplaceCardSelection(context.Background(), d.Deck.ID, nil, 7)
	require.NoError(t, err)
	assert.Empty(t, got.Deck.CardDefinitionIDs)
}

func TestUpdateDeckFields(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID, 101)
	ctx := context.Background()

	name, desc := " Opening Hand ", "Cheap cards"
	got, err := f.decks.UpdateDeck(ctx, d.Deck.ID, Changes{Name: &name, Description: &desc}, 7)
	require.NoError(t, err)
	assert.Equal(t, "Opening Hand", got.Deck.Name)
	require.NotNil(t, got.Deck.Description)
	assert.Equal(t, "Cheap cards", *got.Deck.Description)
	assert.Equal(t, []int64{101}, []int64(got.Deck.CardDefinitionIDs))

	blank := ""
	got, err = f.decks.UpdateDeck(ctx, d.Deck.ID, Changes{Description: &blank}, 7)
	require.NoError(t, err)
	assert.Nil(t, got.Deck.Description)

	_, err = f.decks.UpdateDeck(ctx, d.Deck.ID, Changes{Name: &blank}, 7)
	var verr *apperr.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestListDeckCards(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID, 101, 102, 3)

	defs, err := f.decks.ListDeckCards(context.Background(), d.Deck.ID, carddef.OrderDefault)
	require.NoError(t, err)
	require.Len(t, defs, 3)
	// tier 1 throughout, so points desc puts 102 first
	assert.Equal(t, int64(102), defs[0].DefinitionID())
}

func TestRetiredDescriptor(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	ctx := context.Background()

	nobles, err := f.decks.CreateDeck(ctx, CreateInput{
		Name: "Nobles", CardSetID: set.ID, GameCardDefinitionID: f.discDesc, CardDefinitionIDs: []int64{500},
	}, 7)
	require.NoError(t, err)

	_, err = f.games.CreateOrUpdateGame(ctx, game.Input{Name: "TokenEngine", Descriptors: tokenEngineDescriptors[:1]})
	require.NoError(t, err)

	got, err := f.decks.GetDeckByID(ctx, nobles.Deck.ID)
	require.NoError(t, err)
	assert.False(t, got.Supported)
	assert.Equal(t, "Discovery Cards", got.Descriptor.Name)

	var unsupported *apperr.UnsupportedTableError
	_, err = f.decks.ListDeckCards(ctx, nobles.Deck.ID, carddef.OrderDefault)
	assert.True(t, errors.As(err, &unsupported))
	_, err = f.decks.ReplaceCardSelection(ctx, nobles.Deck.ID, []int64{500}, 7)
	assert.True(t, errors.As(err, &unsupported))
}

func TestDeleteDeck(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID, 101)
	ctx := context.Background()

	var forbidden *apperr.ForbiddenError
	assert.True(t, errors.As(f.decks.DeleteDeck(ctx, d.Deck.ID, 8), &forbidden))

	require.NoError(t, f.decks.DeleteDeck(ctx, d.Deck.ID, 7))
	_, err := f.decks.GetDeckByID(ctx, d.Deck.ID)
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestDeletingCardSetCascadesToDecks(t *testing.T) {
	f := newFixture(t)
	set := f.starterSet(t, 7)
	d := f.tier1(t, set.ID, 101)
	ctx := context.Background()

	view, err := f.sets.GetCardSetByID(ctx, set.ID, cardset.Include{Decks: true})
	require.NoError(t, err)
	require.Len(t, view.Decks, 1)

	require.NoError(t, f.sets.DeleteCardSet(ctx, set.ID, 7))
	_, err = f.decks.GetDeckByID(ctx, d.Deck.ID)
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
