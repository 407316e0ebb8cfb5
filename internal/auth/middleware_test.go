package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reskin/backend/internal/apperr"
	"reskin/backend/pkg/jwt"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "authenticated": ok})
	})
	return r
}

func get(t *testing.T, r http.Handler, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	token, err := tokens.GenerateToken(7)
	require.NoError(t, err)
	r := newRouter(AuthMiddleware(tokens))

	w := get(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"authenticated":true}`, w.Body.String())

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-token"} {
		w := get(t, r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), `"error"`)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	token, err := tokens.GenerateToken(9)
	require.NoError(t, err)
	r := newRouter(OptionalAuthMiddleware(tokens))

	w := get(t, r, "Bearer "+token)
	assert.JSONEq(t, `{"id":9,"authenticated":true}`, w.Body.String())

	w = get(t, r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"authenticated":false}`, w.Body.String())
}

type fakeRoles map[uint]bool

func (f fakeRoles) IsAdmin(_ context.Context, userID uint) (bool, error) {
	admin, ok := f[userID]
	if !ok {
		return false, apperr.NotFound("User")
	}
	return admin, nil
}

func TestAdminMiddleware(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	roles := fakeRoles{1: true, 2: false}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(tokens), AdminMiddleware(roles), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for id, want := range map[uint]int{1: http.StatusNoContent, 2: http.StatusForbidden, 3: http.StatusNotFound} {
		token, err := tokens.GenerateToken(id)
		require.NoError(t, err)
		assert.Equal(t, want, get(t, r, "Bearer "+token).Code, "user %d", id)
	}

	bare := gin.New()
	bare.GET("/whoami", AdminMiddleware(roles), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusUnauthorized, get(t, bare, "").Code)
}
