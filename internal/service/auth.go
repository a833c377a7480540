package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/showcase/showcase-go/internal/crypto"
	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/repository"
)

// ErrWrongPassword covers both an unknown email and a bad password, so the
// login endpoint never discloses whether an account exists.
var ErrWrongPassword = errors.New("wrong password")

// tokenRetries bounds the retry loop when a freshly generated token collides
// with the UNIQUE index on access_token.
const tokenRetries = 3

// AuthUserStore is the slice of user persistence the auth service needs.
type AuthUserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetAccessToken(ctx context.Context, userID int64, token string) error
}

// AuthService handles login and identity lookups.
type AuthService struct {
	users  AuthUserStore
	hasher *crypto.Hasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(users AuthUserStore, hasher *crypto.Hasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Login verifies email and password, issues a new access token, persists it
// on the user record (overwriting any prior token, so only one session is
// active at a time) and returns it.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrWrongPassword
		}
		return "", err
	}

	if !s.hasher.Verify(req.Password, user.Salt, user.HashedPassword) {
		return "", ErrWrongPassword
	}

	for attempt := 0; attempt < tokenRetries; attempt++ {
		token, err := crypto.GenerateToken()
		if err != nil {
			return "", err
		}

		err = s.users.SetAccessToken(ctx, user.ID, token)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, repository.ErrDuplicateToken) {
			return "", err
		}
	}

	return "", fmt.Errorf("could not issue a unique token after %d attempts", tokenRetries)
}

// GetUser returns the response projection of a user: exactly id, email and
// emailNotifications, never any credential material.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		EmailNotifications: user.EmailNotifications,
	}, nil
}
