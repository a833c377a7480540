package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/repository"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenResolver resolves an opaque bearer token to the user holding it.
type TokenResolver interface {
	GetByAccessToken(ctx context.Context, token string) (*model.User, error)
}

// Authenticate returns middleware that resolves a bearer token from the
// Authorization header to a user identity and stores it on the request
// context. A request without the header proceeds unauthenticated; a request
// with an unknown token is rejected outright with 401.
func Authenticate(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Header form is "<scheme> <token>"; the scheme is not checked,
			// only the token matters.
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[1] == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			user, err := resolver.GetByAccessToken(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "invalid access token")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying the given user identity. Intended
// for tests and internal dispatch, mirroring what Authenticate does for
// real requests.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
