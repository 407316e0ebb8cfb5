package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reskin/backend/internal/carddef"
	"reskin/backend/internal/deck"
	"reskin/backend/internal/models"
)

// region --- DTOs ---

type CreateDeckInput struct {
	Name                 string  `json:"name" binding:"required" example:"Tier 1"`
	Description          *string `json:"description"`
	CardSetID            uint    `json:"cardSetId" binding:"required" example:"1"`
	GameCardDefinitionID uint    `json:"gameCardDefinitionId" binding:"required" example:"1"`
	CardDefinitionIDs    []int64 `json:"cardDefinitionIds" example:"101,102"`
}

// UpdateDeckInput lists the editable fields; omitted fields are unchanged.
// cardDefinitionIds, when present, replaces the whole selection. An empty
// description clears it.
type UpdateDeckInput struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	CardDefinitionIDs *[]int64 `json:"cardDefinitionIds"`
}

type DeckResponse struct {
	ID                   uint                        `json:"id" example:"1"`
	Name                 string                      `json:"name" example:"Tier 1"`
	Description          *string                     `json:"description"`
	CardSetID            uint                        `json:"cardSetId" example:"1"`
	GameCardDefinitionID uint                        `json:"gameCardDefinitionId" example:"1"`
	CardDefinitionIDs    []int64                     `json:"cardDefinitionIds"`
	CreatedAt            time.Time                   `json:"createdAt"`
	UpdatedAt            time.Time                   `json:"updatedAt"`
	CardSet              *CardSetResponse            `json:"cardSet,omitempty"`
	GameCardDefinition   *GameCardDefinitionResponse `json:"gameCardDefinition,omitempty"`
}

func newDeckResponse(d models.Deck) DeckResponse {
	ids := []int64(d.CardDefinitionIDs)
	if ids == nil {
		ids = []int64{}
	}
	return DeckResponse{
		ID:                   d.ID,
		Name:                 d.Name,
		Description:          d.Description,
		CardSetID:            d.CardSetID,
		GameCardDefinitionID: d.GameCardDefinitionID,
		CardDefinitionIDs:    ids,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

func newDeckDetailResponse(d deck.Detail) DeckResponse {
	resp := newDeckResponse(d.Deck)
	set := newCardSetResponse(d.CardSet)
	descriptor := newGameCardDefinitionResponse(d.Descriptor)
	descriptor.Supported = d.Supported
	resp.CardSet = &set
	resp.GameCardDefinition = &descriptor
	return resp
}

// endregion

// region --- Public Handlers ---

// GetDeckByID godoc
// @Summary      Get a deck
// @Description  Returns a deck with its card set and card definition table.
// @Tags         decks
// @Produce      json
// @Param        id path int true "Deck ID"
// @Success      200 {object} DeckResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Deck not found"
// @Router       /decks/{id} [get]
func (h *Handler) GetDeckByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.decks.GetDeckByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeckDetailResponse(*detail))
}

// GetDeckCards godoc
// @Summary      List the cards of a deck
// @Description  Returns the selected rows of the deck's card definition table.
// @Tags         decks
// @Produce      json
// @Param        id    path  int    true  "Deck ID"
// @Param        order query string false "Sort order" Enums(default, id, points, cost)
// @Success      200 {array}  carddef.TokenCard
// @Failure      404 {object} ErrorResponse "Deck not found"
// @Failure      422 {object} ErrorResponse "Card type no longer supported"
// @Router       /decks/{id}/cards [get]
func (h *Handler) GetDeckCards(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := carddef.ParseOrder(c.Query("order"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	defs, err := h.decks.ListDeckCards(c.Request.Context(), id, order)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, defs)
}

// endregion

// region --- Owner Handlers ---

// CreateDeck godoc
// @Summary      Create a deck
// @Description  Creates a deck in one of the caller's card sets. Every card definition id must exist in the chosen table.
// @Tags         decks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateDeckInput true "Deck"
// @Success      201 {object} DeckResponse
// @Failure      400 {object} ErrorResponse "Invalid input or unknown card definition ids"
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Card set not found"
// @Failure      409 {object} ErrorResponse "Deck name already used in this card set"
// @Failure      422 {object} ErrorResponse "Unsupported card type"
// @Router       /decks [post]
func (h *Handler) CreateDeck(c *gin.Context) {
	userID, ok := h.principal(c)
	if !ok {
		return
	}
	var input CreateDeckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	detail, err := h.decks.CreateDeck(c.Request.Context(), deck.CreateInput{
		Name:                 input.Name,
		Description:          input.Description,
		CardSetID:            input.CardSetID,
		GameCardDefinitionID: input.GameCardDefinitionID,
		CardDefinitionIDs:    input.CardDefinitionIDs,
	}, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newDeckDetailResponse(*detail))
}

// UpdateDeck godoc
// @Summary      Update a deck
// @Description  Renames a deck or replaces its whole card selection. The selection is applied all at once or not at all.
// @Tags         decks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int             true "Deck ID"
// @Param        input body UpdateDeckInput true "Fields to change"
// @Success      200 {object} DeckResponse
// @Failure      400 {object} ErrorResponse "Invalid input or unknown card definition ids"
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Card type no longer supported"
// @Router       /decks/{id} [patch]
func (h *Handler) UpdateDeck(c *gin.Context) {
	userID, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateDeckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	changes := deck.Changes{Name: input.Name, Description: input.Description}
	if input.CardDefinitionIDs != nil {
		changes.CardDefinitionIDs = carddef.Normalize(*input.CardDefinitionIDs)
	}

	detail, err := h.decks.UpdateDeck(c.Request.Context(), id, changes, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeckDetailResponse(*detail))
}

// DeleteDeck godoc
// @Summary      Delete a deck
// @Tags         decks
// @Security     BearerAuth
// @Param        id path int true "Deck ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /decks/{id} [delete]
func (h *Handler) DeleteDeck(c *gin.Context) {
	userID, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.decks.DeleteDeck(c.Request.Context(), id, userID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// endregion
