package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/showcase/showcase-go/internal/middleware"
	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/service"
)

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

// HandleList handles GET /events requests.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	if events == nil {
		events = []model.EventResponse{}
	}
	writeJSON(w, http.StatusOK, events)
}

// HandleGet handles GET /events/{id} requests.
func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeEventError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// HandleCreate handles POST /events requests. An authenticated request
// records its identity as the event owner.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}

	var owner *int64
	if userID, authed := middleware.UserIDFromContext(r.Context()); authed {
		owner = &userID
	}

	event, err := h.service.Create(r.Context(), owner, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// HandleUpdate handles PUT /events/{id} requests.
func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}

	event, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeEventError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// HandleDelete handles DELETE /events/{id} requests.
func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeEventError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeEventRequest(w http.ResponseWriter, r *http.Request) (model.EventRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return model.EventRequest{}, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return model.EventRequest{}, false
	}
	return req, true
}

func writeEventError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrEventNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}

// pathID parses the {id} route parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid id"))
		return 0, false
	}
	return id, true
}
