package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"reskin/backend/internal/apperr"
	"reskin/backend/pkg/jwt"
)

func newTestService() (*Service, *jwt.Manager) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	svc := NewService(NewMemoryRepo(), tokens)
	svc.cost = bcrypt.MinCost
	return svc, tokens
}

func TestRegister(t *testing.T) {
	svc, tokens := newTestService()

	u, token, err := svc.Register(context.Background(), RegisterInput{
		Username: "ada", Email: "Ada@Example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", u.DisplayName)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "correct horse", u.PasswordHash)

	id, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	var verr *apperr.ValidationError

	_, _, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "longenough"})
	assert.True(t, errors.As(err, &verr))
	_, _, err = svc.Register(ctx, RegisterInput{Username: "ada", Email: "a@b.c", Password: "short"})
	assert.True(t, errors.As(err, &verr))
	_, _, err = svc.Register(ctx, RegisterInput{Username: "ada", Email: "a@b.c", Password: strings.Repeat("p", 80)})
	assert.True(t, errors.As(err, &verr), "got %v", err)
	_, _, err = svc.Register(ctx, RegisterInput{Username: "max", Email: "max@b.c", Password: strings.Repeat("p", 72)})
	assert.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Username: "ada", Email: "a@b.c", Password: "longenough"})
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, RegisterInput{Username: "ada", Email: "other@b.c", Password: "longenough"})
	var conflict *apperr.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	registered, _, err := svc.Register(ctx, RegisterInput{Username: "ada", Email: "ada@example.com", Password: "longenough"})
	require.NoError(t, err)

	for _, login := range []string{"ada", "ada@example.com", "ADA@example.com"} {
		u, token, err := svc.Login(ctx, login, "longenough")
		require.NoError(t, err, login)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotEmpty(t, token)
	}

	var unauth *apperr.UnauthenticatedError
	_, _, err = svc.Login(ctx, "ada", "wrong password")
	assert.True(t, errors.As(err, &unauth))
	_, _, err = svc.Login(ctx, "nobody", "longenough")
	assert.True(t, errors.As(err, &unauth))
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, _, err := svc.Register(ctx, RegisterInput{Username: "ada", Email: "ada@example.com", Password: "longenough"})
	require.NoError(t, err)

	name, bio := "Ada L.", "Reskins engines"
	updated, err := svc.UpdateProfile(ctx, u.ID, Profile{DisplayName: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.DisplayName)
	assert.Equal(t, "Reskins engines", updated.Bio)
	assert.Equal(t, "ada", updated.Username)

	blank := "  "
	_, err = svc.UpdateProfile(ctx, u.ID, Profile{DisplayName: &blank})
	var verr *apperr.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = svc.UpdateProfile(ctx, 999, Profile{Bio: &bio})
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestPromote(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, _, err := svc.Register(ctx, RegisterInput{Username: "ada", Email: "ada@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "user", u.Role)

	admin, err := svc.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, admin)

	promoted, err := svc.Promote(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, promoted.ID)

	admin, err = svc.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, admin)

	_, err = svc.Promote(ctx, "nobody")
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))
	_, err = svc.IsAdmin(ctx, 999)
	assert.True(t, errors.As(err, &nf))
}
