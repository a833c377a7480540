package handler

import (
	"net/http"

	"github.com/showcase/showcase-go/internal/assets"
)

// ImageHandler handles multipart image uploads into temporary storage.
type ImageHandler struct {
	store       *assets.Store
	uploadLimit int64
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(store *assets.Store, uploadLimit int64) *ImageHandler {
	return &ImageHandler{store: store, uploadLimit: uploadLimit}
}

// HandleUpload handles POST /images requests. The multipart part is named
// "file"; the response body is the generated temp filename, which the
// client echoes back later as the tmpName of an application image.
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadLimit)

	if err := r.ParseMultipartForm(h.uploadLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid multipart body"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("missing file part"))
		return
	}
	defer file.Close()

	tmpName, err := h.store.SaveUpload(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeText(w, http.StatusOK, tmpName)
}
