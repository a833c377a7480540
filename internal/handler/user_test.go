package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/showcase/showcase-go/internal/crypto"
	"github.com/showcase/showcase-go/internal/middleware"
	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/repository"
	"github.com/showcase/showcase-go/internal/service"
)

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	user.ID = int64(len(m.byID) + 1)
	clone := *user
	m.byID[user.ID] = &clone
	return nil
}

func (m *memUsers) Update(_ context.Context, user *model.User) error {
	if _, ok := m.byID[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	m.byID[user.ID] = &clone
	return nil
}

// newUserRouter wires the user routes the way the server does: the literal
// /users/me route first, the pattern route after it.
func newUserRouter(t *testing.T) (chi.Router, *memUsers) {
	t.Helper()

	hasher := crypto.NewHasher("secret")
	salt, err := crypto.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() unexpected error: %v", err)
	}

	users := &memUsers{byID: map[int64]*model.User{
		1: {
			ID:                 1,
			Email:              "owner@example.com",
			Salt:               salt,
			HashedPassword:     hasher.Hash("hunter2", salt),
			EmailNotifications: true,
		},
		2: {
			ID:    2,
			Email: "other@example.com",
			Salt:  salt,
		},
	}}

	authSvc := service.NewAuthService(users, hasher)
	userHandler := NewUserHandler(service.NewUserService(users, hasher), authSvc)
	authHandler := NewAuthHandler(authSvc)

	r := chi.NewRouter()
	r.Get("/users/me", authHandler.HandleMe)
	r.Get("/users/{id}", userHandler.HandleGet)
	return r, users
}

func TestHandleGetByID(t *testing.T) {
	r, _ := newUserRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/users/2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp model.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != 2 || resp.Email != "other@example.com" {
		t.Errorf("response = %+v, want user 2", resp)
	}
}

func TestHandleGetInvalidID(t *testing.T) {
	r, _ := newUserRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-number", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleGetNotFound(t *testing.T) {
	r, _ := newUserRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// GET /users/me must resolve through the literal route to the authenticated
// identity, never through the {id} pattern.
func TestUsersMeRoutePrecedence(t *testing.T) {
	r, _ := newUserRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp model.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != 1 || resp.Email != "owner@example.com" {
		t.Errorf("response = %+v, want the authenticated user", resp)
	}

	// Without an identity the literal route still answers, with 401 rather
	// than the pattern route's invalid-id 400.
	anon := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	anonRec := httptest.NewRecorder()
	r.ServeHTTP(anonRec, anon)

	if anonRec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want %d", anonRec.Code, http.StatusUnauthorized)
	}
}
