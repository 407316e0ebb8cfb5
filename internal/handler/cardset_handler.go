package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reskin/backend/internal/cardset"
	"reskin/backend/internal/models"
)

// region --- DTOs ---

type CreateCardSetInput struct {
	Title       string `json:"title" binding:"required" example:"Starter"`
	Description string `json:"description" binding:"required" example:"A gemstone reskin"`
	ImageURL    string `json:"imageUrl" binding:"required" example:"https://example.com/starter.png"`
	GameID      uint   `json:"gameId" binding:"required" example:"1"`
}

// UpdateCardSetInput lists the editable fields; omitted fields are unchanged.
type UpdateCardSetInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// CardSetResponse is a card set with whichever relations were included.
type CardSetResponse struct {
	ID          uint                `json:"id" example:"1"`
	Title       string              `json:"title" example:"Starter"`
	Description string              `json:"description"`
	ImageURL    string              `json:"imageUrl"`
	GameID      uint                `json:"gameId" example:"1"`
	UserID      uint                `json:"userId" example:"7"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Game        *GameResponse       `json:"game,omitempty"`
	User        *PublicUserResponse `json:"user,omitempty"`
	Decks       []DeckResponse      `json:"decks,omitempty"`
}

func newCardSetResponse(s models.CardSet) CardSetResponse {
	return CardSetResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		GameID:      s.GameID,
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func newCardSetViewResponse(v cardset.View) CardSetResponse {
	resp := newCardSetResponse(v.Set)
	if v.Game != nil {
		g := newGameResponse(*v.Game)
		resp.Game = &g
	}
	if v.Owner != nil {
		u := newPublicUserResponse(*v.Owner)
		resp.User = &u
	}
	if v.Decks != nil {
		resp.Decks = make([]DeckResponse, len(v.Decks))
		for i, d := range v.Decks {
			resp.Decks[i] = newDeckResponse(d)
		}
	}
	return resp
}

// PaginatedCardSetResponse defines the structure for a paginated list of card sets.
type PaginatedCardSetResponse struct {
	Data []CardSetResponse `json:"data"`
	Meta PaginationMeta    `json:"meta"`
}

// endregion

// region --- Public Handlers ---

// GetCardSets godoc
// @Summary      List card sets
// @Description  Lists every card set, newest first.
// @Tags         cardsets
// @Produce      json
// @Param        include query string false "Comma-separated relations: game, user, decks"
// @Param        page    query int    false "Page number" default(1)
// @Param        limit   query int    false "Items per page" default(50)
// @Success      200 {object} PaginatedCardSetResponse
// @Failure      400 {object} ErrorResponse
// @Router       /cardsets [get]
func (h *Handler) GetCardSets(c *gin.Context) {
	h.listCardSets(c, nil)
}

// GetCardSetByID godoc
// @Summary      Get a card set
// @Tags         cardsets
// @Produce      json
// @Param        id      path  int    true  "Card set ID"
// @Param        include query string false "Comma-separated relations: game, user, decks"
// @Success      200 {object} CardSetResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Card set not found"
// @Router       /cardsets/{id} [get]
func (h *Handler) GetCardSetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	include, err := cardset.ParseInclude(c.Query("include"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	view, err := h.sets.GetCardSetByID(c.Request.Context(), id, include)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCardSetViewResponse(*view))
}

// endregion

// region --- Owner Handlers ---

// GetMyCardSets godoc
// @Summary      List my card sets
// @Description  Lists the authenticated user's card sets, newest first.
// @Tags         cardsets
// @Produce      json
// @Security     BearerAuth
// @Param        include query string false "Comma-separated relations: game, user, decks"
// @Param        page    query int    false "Page number" default(1)
// @Param        limit   query int    false "Items per page" default(50)
// @Success      200 {object} PaginatedCardSetResponse
// @Failure      401 {object} ErrorResponse
// @Router       /cardsets/user/me [get]
func (h *Handler) GetMyCardSets(c *gin.Context) {
	userID, ok := h.principal(c)
	if !ok {
		return
	}
	h.listCardSets(c, &userID)
}

func (h *Handler) listCardSets(c *gin.Context, ownerID *uint) {
	page, limit := pageParams(c)
	include, err := cardset.ParseInclude(c.Query("include"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	views, total, err := h.sets.ListCardSets(c.Request.Context(), cardset.Filter{
		OwnerID: ownerID,
		Include: include,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]CardSetResponse, len(views))
	for i, v := range views {
		response[i] = newCardSetViewResponse(v)
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, total, page, limit))
}

// CreateCardSet godoc
// @Summary      Create a card set
// @Tags         cardsets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateCardSetInput true "Card set"
// @Success      201 {object} CardSetResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      409 {object} ErrorResponse "Title already used"
// @Router       /cardsets [post]
func (h *Handler) CreateCardSet(c *gin.Context) {
	userID, ok := h.principal(c)
	if !ok {
		return
	}
	var input CreateCardSetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	set, err := h.sets.CreateCardSet(c.Request.Context(), cardset.CreateInput{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		GameID:      input.GameID,
	}, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCardSetResponse(*set))
}

// UpdateCardSet godoc
// @Summary      Update a card set
// @Tags         cardsets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                true "Card set ID"
// @Param        input body UpdateCardSetInput true "Fields to change"
// @Success      200 {object} CardSetResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /cardsets/{id} [patch]
func (h *Handler) UpdateCardSet(c *gin.Context) {
	userID, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateCardSetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	set, err := h.sets.UpdateCardSet(c.Request.Context(), id, cardset.Changes{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCardSetResponse(*set))
}

// DeleteCardSet godoc
// @Summary      Delete a card set
// @Description  Deletes a card set and every deck in it.
// @Tags         cardsets
// @Security     BearerAuth
// @Param        id path int true "Card set ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cardsets/{id} [delete]
func (h *Handler) DeleteCardSet(c *gin.Context) {
	userID, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.sets.DeleteCardSet(c.Request.Context(), id, userID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// endregion
