package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/service"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// HandleCreate handles POST /users requests.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.users.Create(r.Context(), req)
	if err != nil {
		writeUserError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleUpdate handles PUT /users/{id} requests.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.users.Update(r.Context(), id, req)
	if err != nil {
		writeUserError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /users/{id} requests. GET /users/me is registered
// separately and resolved by AuthHandler.HandleMe before this route matches.
// The response is always the safe projection: id, email and
// emailNotifications.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	resp, err := h.auth.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeUserRequest decodes a user payload. Decoding into model.UserRequest
// enforces the field allow-list: anything else in the body is dropped.
func decodeUserRequest(w http.ResponseWriter, r *http.Request) (model.UserRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return model.UserRequest{}, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return model.UserRequest{}, false
	}
	return req, true
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrPasswordRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
