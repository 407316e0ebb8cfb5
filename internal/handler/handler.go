// Package handler holds the gin handlers and their request/response DTOs.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/auth"
	"reskin/backend/internal/carddef"
	"reskin/backend/internal/cardset"
	"reskin/backend/internal/deck"
	"reskin/backend/internal/game"
	"reskin/backend/internal/user"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestID"

// Handler serves every API route.
type Handler struct {
	games *game.Registry
	cards *carddef.Store
	sets  *cardset.Service
	decks *deck.Service
	users *user.Service
	log   *logrus.Logger
}

// Services groups the domain services a Handler depends on.
type Services struct {
	Games    *game.Registry
	Cards    *carddef.Store
	CardSets *cardset.Service
	Decks    *deck.Service
	Users    *user.Service
}

func New(s Services, log *logrus.Logger) *Handler {
	return &Handler{
		games: s.Games,
		cards: s.Cards,
		sets:  s.CardSets,
		decks: s.Decks,
		users: s.Users,
		log:   log,
	}
}

// region --- Errors ---

// ErrorResponse represents a generic error response. InvalidIDs lists the
// card definition ids that failed validation, when there are any.
type ErrorResponse struct {
	Error      string  `json:"error" example:"An error message"`
	InvalidIDs []int64 `json:"invalidIds,omitempty"`
}

// respondError maps a service error to its HTTP status. Anything that is not
// a domain error is logged and reported without detail.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		validation  *apperr.ValidationError
		conflict    *apperr.ConflictError
		notFound    *apperr.NotFoundError
		forbidden   *apperr.ForbiddenError
		unauth      *apperr.UnauthenticatedError
		unsupported *apperr.UnsupportedTableError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validation.Message, InvalidIDs: validation.InvalidIDs})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: conflict.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFound.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: forbidden.Error()})
	case errors.As(err, &unauth):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: unauth.Error()})
	case errors.As(err, &unsupported):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: unsupported.Error()})
	default:
		h.log.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"path":       c.FullPath(),
		}).WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// endregion

// region --- Params ---

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// principal returns the authenticated user. Routes using it sit behind
// auth.AuthMiddleware, so a missing principal is reported as unauthenticated.
func (h *Handler) principal(c *gin.Context) (uint, bool) {
	id, ok := auth.UserID(c)
	if !ok {
		h.respondError(c, &apperr.UnauthenticatedError{Message: "User not authenticated"})
	}
	return id, ok
}

func splitCommaSeparated(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// endregion
