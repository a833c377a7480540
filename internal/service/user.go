package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/showcase/showcase-go/internal/crypto"
	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/repository"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailTaken       = errors.New("email already taken")
	ErrUserNotFound     = errors.New("user not found")
)

// UserStore is the slice of user persistence the mutation guard needs.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// UserService guards every user write: input is reduced to the allow-listed
// fields (email, password, emailNotifications — everything else in the
// payload is silently discarded by decoding into model.UserRequest), and
// password material is replaced by a fresh salt and hash before persistence.
type UserService struct {
	repo   UserStore
	hasher *crypto.Hasher
}

// NewUserService creates a new UserService.
func NewUserService(repo UserStore, hasher *crypto.Hasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Create registers a new user. A password is mandatory; the stored record
// carries only its salted hash.
func (s *UserService) Create(ctx context.Context, req model.UserRequest) (model.UserResponse, error) {
	if req.Email == "" {
		return model.UserResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.UserResponse{}, ErrPasswordRequired
	}

	salt, hash, err := s.credentials(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Email:          req.Email,
		HashedPassword: hash,
		Salt:           salt,
	}
	if req.EmailNotifications != nil {
		user.EmailNotifications = *req.EmailNotifications
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// Update applies an allow-listed mutation to an existing user. A payload
// without a password keeps the stored salt and hash untouched; one with a
// password gets a fresh salt and hash.
func (s *UserService) Update(ctx context.Context, id int64, req model.UserRequest) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.EmailNotifications != nil {
		user.EmailNotifications = *req.EmailNotifications
	}
	if req.Password != "" {
		salt, hash, err := s.credentials(req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.Salt = salt
		user.HashedPassword = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// credentials derives a fresh salt and hash. A randomness failure aborts the
// whole save; a predictable salt must never reach storage.
func (s *UserService) credentials(password string) (salt, hash string, err error) {
	salt, err = crypto.GenerateSalt()
	if err != nil {
		return "", "", fmt.Errorf("generating salt: %w", err)
	}
	return salt, s.hasher.Hash(password, salt), nil
}

func toUserResponse(user *model.User) model.UserResponse {
	return model.UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		EmailNotifications: user.EmailNotifications,
	}
}
