package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reskin/backend/internal/carddef"
	"reskin/backend/internal/cardset"
	"reskin/backend/internal/cost"
	"reskin/backend/internal/deck"
	"reskin/backend/internal/game"
	"reskin/backend/internal/handler"
	"reskin/backend/internal/models"
	"reskin/backend/internal/user"
	"reskin/backend/pkg/jwt"
)

type testServer struct {
	engine    *gin.Engine
	users     *user.Service
	game      *models.Game
	tokenDesc uint
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cards := carddef.NewStore(carddef.NewMemoryRepo())
	require.NoError(t, cards.SeedTokenCards(ctx, []carddef.TokenCard{
		{ID: 101, Token: cost.Blue, Tier: 1, Cost: cost.Vector{White: 1, Green: 1, Red: 1, Black: 1}},
		{ID: 102, Token: cost.Red, Tier: 1, Points: 1, Cost: cost.Vector{White: 4}},
		{ID: 201, Token: cost.Green, Tier: 2, Points: 2, Cost: cost.Vector{Blue: 5}},
	}))

	registry := game.NewRegistry(game.NewMemoryRepo(), cards)
	g, err := registry.CreateOrUpdateGame(ctx, game.Input{
		Name: "TokenEngine",
		Descriptors: []game.DescriptorInput{
			{Name: "Token Cards", TableName: carddef.TokenCards.TableName()},
		},
	})
	require.NoError(t, err)

	setRepo := cardset.NewMemoryRepo()
	setRepo.PutGame(*g)
	deckRepo := deck.NewMemoryRepo()
	setRepo.UseDecks(deckRepo)
	sets := cardset.NewService(setRepo)

	tokens := jwt.NewManager("router-test-secret", time.Hour)
	users := user.NewService(user.NewMemoryRepo(), tokens)

	h := handler.New(handler.Services{
		Games:    registry,
		Cards:    cards,
		CardSets: sets,
		Decks:    deck.NewService(deckRepo, sets, registry, cards),
		Users:    users,
	}, logger)

	return &testServer{
		engine:    New(Options{Handler: h, Tokens: tokens, Roles: users, Logger: logger}),
		users:     users,
		game:      g,
		tokenDesc: g.CardDefinitions[0].ID,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", "", handler.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[handler.AuthResponse](t, w).Token
}

func (s *testServer) createCardSet(t *testing.T, token, title string) handler.CardSetResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/cardsets", token, handler.CreateCardSetInput{
		Title:       title,
		Description: "A gemstone reskin",
		ImageURL:    "https://example.com/" + title + ".png",
		GameID:      s.game.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[handler.CardSetResponse](t, w)
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = s.do(t, http.MethodGet, "/ping", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRegisterLoginAndProfile(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada")

	w := s.do(t, http.MethodPost, "/api/auth/login", "", handler.LoginInput{Login: "ada@example.com", Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	auth := decode[handler.AuthResponse](t, w)
	assert.Equal(t, "ada", auth.User.Username)
	assert.Equal(t, "ada", auth.User.DisplayName)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", handler.LoginInput{Login: "ada", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	bio := "Collects gem games"
	w = s.do(t, http.MethodPatch, "/api/users/me", auth.Token, handler.UpdateProfileInput{Bio: &bio})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decode[handler.PrivateUserResponse](t, w)
	assert.Equal(t, bio, me.Bio)
	assert.Equal(t, "ada@example.com", me.Email)
	assert.Equal(t, models.RoleUser, me.Role)
}

func TestRegisterRejectsDuplicatesAndShortPasswords(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada")

	w := s.do(t, http.MethodPost, "/api/auth/register", "", handler.RegisterInput{
		Username: "ada", Email: "other@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/register", "", handler.RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGamesAndCardDefinitions(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/games", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	games := decode[handler.PaginatedGameResponse](t, w)
	require.Len(t, games.Data, 1)
	assert.Equal(t, "TokenEngine", games.Data[0].Name)
	assert.EqualValues(t, 1, games.Meta.TotalItems)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/games/%d", s.game.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	g := decode[handler.GameResponse](t, w)
	require.Len(t, g.CardDefinitions, 1)
	assert.True(t, g.CardDefinitions[0].Supported)

	w = s.do(t, http.MethodGet, "/api/games/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/card-definitions/TokenEngineCardDefinition", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]carddef.TokenCard](t, w)
	require.Len(t, rows, 3)
	assert.Equal(t, []int64{102, 101, 201}, []int64{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, 4, rows[0].Cost.White)

	w = s.do(t, http.MethodGet, "/api/card-definitions/TokenEngineCardDefinition?tier=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]carddef.TokenCard](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/card-definitions/DROP%20TABLE", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdminUpsertGame(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ada")

	input := handler.UpsertGameInput{
		Name:    "TokenEngine",
		Summary: "Collect tokens, buy cards.",
		CardDefinitions: []handler.GameCardDefinitionInput{
			{Name: "Token Cards", TableName: carddef.TokenCards.TableName()},
			{Name: "Discovery Cards", TableName: carddef.DiscoveryCards.TableName()},
		},
	}

	w := s.do(t, http.MethodPut, "/api/admin/games", "", input)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodPut, "/api/admin/games", token, input)
	assert.Equal(t, http.StatusForbidden, w.Code)

	_, err := s.users.Promote(context.Background(), "ada")
	require.NoError(t, err)

	w = s.do(t, http.MethodPut, "/api/admin/games", token, input)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	g := decode[handler.GameResponse](t, w)
	assert.Equal(t, s.game.ID, g.ID)
	assert.Equal(t, "Collect tokens, buy cards.", g.Summary)
	require.Len(t, g.CardDefinitions, 2)

	w = s.do(t, http.MethodGet, "/api/games", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[handler.PaginatedGameResponse](t, w).Meta.TotalItems)

	input.CardDefinitions = []handler.GameCardDefinitionInput{{Name: "Bad", TableName: "users"}}
	w = s.do(t, http.MethodPut, "/api/admin/games", token, input)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPut, "/api/admin/games", token, handler.UpsertGameInput{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCardSetOwnership(t *testing.T) {
	s := newTestServer(t)
	ada := s.register(t, "ada")
	grace := s.register(t, "grace")

	w := s.do(t, http.MethodPost, "/api/cardsets", "", handler.CreateCardSetInput{Title: "Starter"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	starter := s.createCardSet(t, ada, "Starter")
	s.createCardSet(t, grace, "Starter")

	w = s.do(t, http.MethodPost, "/api/cardsets", ada, handler.CreateCardSetInput{
		Title: "Starter", Description: "again", ImageURL: "https://example.com/x.png", GameID: s.game.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/cardsets/user/me", ada, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[handler.PaginatedCardSetResponse](t, w)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, starter.ID, mine.Data[0].ID)

	w = s.do(t, http.MethodGet, "/api/cardsets?include=game", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[handler.PaginatedCardSetResponse](t, w)
	require.Len(t, all.Data, 2)
	require.NotNil(t, all.Data[0].Game)
	assert.Equal(t, "TokenEngine", all.Data[0].Game.Name)

	w = s.do(t, http.MethodGet, "/api/cardsets?include=owner", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	title := "Stolen"
	path := fmt.Sprintf("/api/cardsets/%d", starter.ID)
	w = s.do(t, http.MethodPatch, path, grace, handler.UpdateCardSetInput{Title: &title})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodDelete, path, grace, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, path, ada, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeckLifecycle(t *testing.T) {
	s := newTestServer(t)
	ada := s.register(t, "ada")
	grace := s.register(t, "grace")
	set := s.createCardSet(t, ada, "Starter")

	w := s.do(t, http.MethodPost, "/api/decks", ada, handler.CreateDeckInput{
		Name: "Tier 1", CardSetID: set.ID, GameCardDefinitionID: s.tokenDesc,
		CardDefinitionIDs: []int64{101, 7777},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	rejected := decode[handler.ErrorResponse](t, w)
	assert.Equal(t, []int64{7777}, rejected.InvalidIDs)

	w = s.do(t, http.MethodPost, "/api/decks", grace, handler.CreateDeckInput{
		Name: "Tier 1", CardSetID: set.ID, GameCardDefinitionID: s.tokenDesc,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/decks", ada, handler.CreateDeckInput{
		Name: "Tier 1", CardSetID: set.ID, GameCardDefinitionID: s.tokenDesc,
		CardDefinitionIDs: []int64{101, 102},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[handler.DeckResponse](t, w)
	assert.ElementsMatch(t, []int64{101, 102}, created.CardDefinitionIDs)
	require.NotNil(t, created.GameCardDefinition)
	assert.Equal(t, "Token Cards", created.GameCardDefinition.Name)

	path := fmt.Sprintf("/api/decks/%d", created.ID)

	w = s.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[handler.DeckResponse](t, w)
	assert.ElementsMatch(t, []int64{101, 102}, got.CardDefinitionIDs)
	require.NotNil(t, got.CardSet)
	assert.Equal(t, "Starter", got.CardSet.Title)

	selection := []int64{201, 201, 101, 101}
	w = s.do(t, http.MethodPatch, path, ada, handler.UpdateDeckInput{CardDefinitionIDs: &selection})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []int64{101, 201}, decode[handler.DeckResponse](t, w).CardDefinitionIDs)

	bad := []int64{101, 4242}
	w = s.do(t, http.MethodPatch, path, ada, handler.UpdateDeckInput{CardDefinitionIDs: &bad})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []int64{4242}, decode[handler.ErrorResponse](t, w).InvalidIDs)

	w = s.do(t, http.MethodPatch, path, grace, handler.UpdateDeckInput{CardDefinitionIDs: &selection})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, path+"/cards?order=points", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cards := decode[[]carddef.TokenCard](t, w)
	require.Len(t, cards, 2)
	assert.Equal(t, int64(201), cards[0].ID)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/cardsets/%d?include=decks", set.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[handler.CardSetResponse](t, w).Decks, 1)

	w = s.do(t, http.MethodDelete, path, grace, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodDelete, path, ada, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/cardsets/user/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/decks/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
