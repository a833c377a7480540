package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/service"
)

// ApplicationHandler handles HTTP requests for applications. Writes trigger
// post-processing hooks after the response is sent: create runs notification
// dispatch then asset promotion, update runs asset promotion only.
type ApplicationHandler struct {
	service *service.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: svc}
}

// HandleList handles GET /applications requests.
func (h *ApplicationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	if apps == nil {
		apps = []model.ApplicationResponse{}
	}
	writeJSON(w, http.StatusOK, apps)
}

// HandleGet handles GET /applications/{id} requests.
func (h *ApplicationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	app, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeApplicationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// HandleCreate handles POST /applications requests.
func (h *ApplicationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeApplicationRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, resp)

	// The hooks must not delay the client response; their failures are
	// logged, not reported. WithoutCancel keeps the detached work alive
	// once this request's context is torn down.
	go h.service.AfterCreate(context.WithoutCancel(r.Context()),
		resp.ID, req.Published, req.ConnectedEvent, req.Title, req.Images)
}

// HandleUpdate handles PUT /applications/{id} requests.
func (h *ApplicationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeApplicationRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeApplicationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)

	go h.service.AfterUpdate(context.WithoutCancel(r.Context()), resp.ID, req.Images)
}

// HandleDelete handles DELETE /applications/{id} requests.
func (h *ApplicationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeApplicationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeApplicationRequest(w http.ResponseWriter, r *http.Request) (model.ApplicationRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return model.ApplicationRequest{}, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return model.ApplicationRequest{}, false
	}
	return req, true
}

func writeApplicationError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrApplicationNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}
