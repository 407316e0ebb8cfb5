package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reskin/backend/internal/carddef"
	"reskin/backend/internal/game"
	"reskin/backend/internal/models"
)

// region --- DTOs ---

// GameCardDefinitionResponse describes one card definition table of a game.
// Supported is false when the table is not one the server can read.
type GameCardDefinitionResponse struct {
	ID          uint   `json:"id" example:"1"`
	GameID      uint   `json:"gameId" example:"1"`
	Name        string `json:"name" example:"Token Cards"`
	Description string `json:"description"`
	TableName   string `json:"tableName" example:"TokenEngineCardDefinition"`
	Supported   bool   `json:"supported"`
}

func newGameCardDefinitionResponse(d models.GameCardDefinition) GameCardDefinitionResponse {
	_, err := carddef.ParseKind(d.TableName)
	return GameCardDefinitionResponse{
		ID:          d.ID,
		GameID:      d.GameID,
		Name:        d.Name,
		Description: d.Description,
		TableName:   d.TableName,
		Supported:   err == nil && !d.DeletedAt.Valid,
	}
}

type GameResponse struct {
	ID              uint                         `json:"id" example:"1"`
	Name            string                       `json:"name" example:"TokenEngine"`
	Summary         string                       `json:"summary"`
	Rules           string                       `json:"rules"`
	CardDefinitions []GameCardDefinitionResponse `json:"cardDefinitions,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

func newGameResponse(g models.Game) GameResponse {
	resp := GameResponse{
		ID:        g.ID,
		Name:      g.Name,
		Summary:   g.Summary,
		Rules:     g.Rules,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	for _, d := range g.CardDefinitions {
		resp.CardDefinitions = append(resp.CardDefinitions, newGameCardDefinitionResponse(d))
	}
	return resp
}

// GameCardsResponse is a descriptor together with the rows of its table.
type GameCardsResponse struct {
	GameCardDefinitionResponse
	Cards []carddef.Definition `json:"cards"`
}

// UpsertGameInput is the full desired state of a game. Tables missing from
// CardDefinitions are detached from the game.
type UpsertGameInput struct {
	Name            string                    `json:"name" binding:"required" example:"TokenEngine"`
	Summary         string                    `json:"summary"`
	Rules           string                    `json:"rules"`
	CardDefinitions []GameCardDefinitionInput `json:"cardDefinitions" binding:"dive"`
}

type GameCardDefinitionInput struct {
	Name        string `json:"name" binding:"required" example:"Token Cards"`
	Description string `json:"description"`
	TableName   string `json:"tableName" binding:"required" example:"TokenEngineCardDefinition"`
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// region --- Public Handlers ---

// GetGames godoc
// @Summary      Get a list of games
// @Description  Retrieves every game ordered by name, with its card definition tables.
// @Tags         games
// @Produce      json
// @Param        page    query     int     false  "Page number" default(1)
// @Param        limit   query     int     false  "Items per page" default(50)
// @Success      200 {object} PaginatedGameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	page, limit := pageParams(c)

	games, err := h.games.ListGames(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]GameResponse, 0, limit)
	for _, g := range paginateSlice(games, page, limit) {
		response = append(response, newGameResponse(g))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, int64(len(games)), page, limit))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves a game with its card definition table descriptors.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	g, err := h.games.GetGame(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*g))
}

// GetGameCards godoc
// @Summary      Get every card of a game
// @Description  Lists each card definition table of a game with its rows. Tables the server cannot read are returned with supported=false and no cards.
// @Tags         games
// @Produce      json
// @Param        id    path  int    true  "Game ID"
// @Param        order query string false "Sort order" Enums(default, id, points, cost)
// @Success      200 {array}  GameCardsResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/card-definitions [get]
func (h *Handler) GetGameCards(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := carddef.ParseOrder(c.Query("order"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	listings, err := h.games.ListGameCards(c.Request.Context(), id, order)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]GameCardsResponse, len(listings))
	for i, l := range listings {
		response[i] = GameCardsResponse{
			GameCardDefinitionResponse: newGameCardDefinitionResponse(l.Descriptor),
			Cards:                      l.Cards,
		}
		response[i].Supported = l.Supported
	}
	c.JSON(http.StatusOK, response)
}

// endregion

// region --- Admin Handlers ---

// UpsertGame godoc
// @Summary      Create or update a game
// @Description  Upserts a game by name together with its card definition tables. Admin only.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpsertGameInput true "Game"
// @Success      200 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      422 {object} ErrorResponse "Unsupported card definition table"
// @Router       /admin/games [put]
func (h *Handler) UpsertGame(c *gin.Context) {
	var input UpsertGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	descriptors := make([]game.DescriptorInput, len(input.CardDefinitions))
	for i, d := range input.CardDefinitions {
		descriptors[i] = game.DescriptorInput{Name: d.Name, Description: d.Description, TableName: d.TableName}
	}

	g, err := h.games.CreateOrUpdateGame(c.Request.Context(), game.Input{
		Name:        input.Name,
		Summary:     input.Summary,
		Rules:       input.Rules,
		Descriptors: descriptors,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*g))
}

// endregion
