package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/carddef"
	"reskin/backend/internal/cost"
)

// GetCardDefinitions godoc
// @Summary      List a card definition table
// @Description  Returns the rows of one card definition table with decoded costs. Color and tier filters apply to token cards only.
// @Tags         card-definitions
// @Produce      json
// @Param        tableName path  string true  "Table name" example(TokenEngineCardDefinition)
// @Param        order     query string false "Sort order" Enums(default, id, points, cost)
// @Param        color     query string false "Comma-separated token colors"
// @Param        tier      query string false "Comma-separated tiers"
// @Param        minPoints query int    false "Minimum points"
// @Param        maxPoints query int    false "Maximum points"
// @Param        minCost.RED query int  false "Minimum cost of a color; any of WHITE, BLUE, GREEN, RED, BLACK"
// @Param        maxCost.RED query int  false "Maximum cost of a color; any of WHITE, BLUE, GREEN, RED, BLACK"
// @Success      200 {array}  carddef.TokenCard
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Unsupported card type"
// @Router       /card-definitions/{tableName} [get]
func (h *Handler) GetCardDefinitions(c *gin.Context) {
	order, err := carddef.ParseOrder(c.Query("order"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	defs, err := h.cards.ListDefinitions(c.Request.Context(), c.Param("tableName"), order, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if defs == nil {
		defs = []carddef.Definition{}
	}
	c.JSON(http.StatusOK, defs)
}

func parseFilter(c *gin.Context) (carddef.Filter, error) {
	var f carddef.Filter

	for _, s := range splitCommaSeparated(c.Query("color")) {
		color, err := cost.ParseColor(s)
		if err != nil {
			return f, apperr.Validation("%v", err)
		}
		f.Colors = append(f.Colors, color)
	}
	for _, s := range splitCommaSeparated(c.Query("tier")) {
		tier, err := strconv.Atoi(s)
		if err != nil {
			return f, apperr.Validation("invalid tier %q", s)
		}
		f.Tiers = append(f.Tiers, tier)
	}

	var err error
	if f.MinPoints, err = optionalInt(c, "minPoints"); err != nil {
		return f, err
	}
	if f.MaxPoints, err = optionalInt(c, "maxPoints"); err != nil {
		return f, err
	}

	for _, color := range cost.Colors() {
		lo, err := optionalInt(c, "minCost."+string(color))
		if err != nil {
			return f, err
		}
		if lo != nil {
			if f.MinCost == nil {
				f.MinCost = map[cost.Color]int{}
			}
			f.MinCost[color] = *lo
		}
		hi, err := optionalInt(c, "maxCost."+string(color))
		if err != nil {
			return f, err
		}
		if hi != nil {
			if f.MaxCost == nil {
				f.MaxCost = map[cost.Color]int{}
			}
			f.MaxCost[color] = *hi
		}
	}
	return f, nil
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.Validation("%s must be an integer", key)
	}
	return &n, nil
}
