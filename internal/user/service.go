// Package user registers accounts, checks passwords and edits profiles.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/models"
)

const minPasswordLength = 8

// bcrypt rejects passwords longer than this.
const maxPasswordBytes = 72

// TokenIssuer creates bearer tokens for a user ID.
type TokenIssuer interface {
	GenerateToken(userID uint) (string, error)
}

// RegisterInput holds a new account's details.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	cost   int
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Register creates an account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case username == "":
		return nil, "", apperr.Validation("username is required")
	case email == "":
		return nil, "", apperr.Validation("email is required")
	case len(in.Password) < minPasswordLength:
		return nil, "", apperr.Validation("password must be at least %d characters", minPasswordLength)
	case len(in.Password) > maxPasswordBytes:
		return nil, "", apperr.Validation("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Role:         models.RoleUser,
	}
	if u.DisplayName == "" {
		u.DisplayName = username
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

// Login checks a username or email against its password. Unknown accounts
// and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	invalid := &apperr.UnauthenticatedError{Message: "invalid credentials"}

	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}
	u, err := s.repo.FindByLogin(ctx, login)
	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		return nil, "", invalid
	}
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", invalid
	}

	token, err := s.tokens.GenerateToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.Get(ctx, id)
}

// UpdateProfile edits the soft fields of the caller's own account.
func (s *Service) UpdateProfile(ctx context.Context, id uint, p Profile) (*models.User, error) {
	if p.DisplayName != nil {
		name := strings.TrimSpace(*p.DisplayName)
		if name == "" {
			return nil, apperr.Validation("displayName must not be blank")
		}
		p.DisplayName = &name
	}
	if p.AvatarURL != nil {
		url := strings.TrimSpace(*p.AvatarURL)
		p.AvatarURL = &url
	}
	return s.repo.UpdateProfile(ctx, id, p)
}

// IsAdmin reports whether the account may edit the game catalog.
func (s *Service) IsAdmin(ctx context.Context, id uint) (bool, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return u.Role == models.RoleAdmin, nil
}

// Promote grants the admin role to the account with the given username or
// email.
func (s *Service) Promote(ctx context.Context, login string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}
	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
		return nil, err
	}
	u.Role = models.RoleAdmin
	return u, nil
}
