package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/showcase/showcase-go/internal/assets"
)

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing part: %v", err)
	}
	writer.Close()
	return buf, writer.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	tmpDir := t.TempDir()
	store := assets.NewStore(tmpDir, t.TempDir(), "http://localhost:8080")
	h := NewImageHandler(store, 10<<20)

	body, contentType := multipartBody(t, "file", "photo.png", "image bytes")
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.HandleUpload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	tmpName := rec.Body.String()
	if !strings.HasPrefix(tmpName, "upload-") {
		t.Errorf("body = %q, want generated temp filename", tmpName)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, tmpName))
	if err != nil {
		t.Fatalf("uploaded file not in temp storage: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("stored content = %q, want %q", data, "image bytes")
	}
}

func TestHandleUploadMissingFilePart(t *testing.T) {
	store := assets.NewStore(t.TempDir(), t.TempDir(), "http://localhost:8080")
	h := NewImageHandler(store, 10<<20)

	body, contentType := multipartBody(t, "wrong-field", "photo.png", "data")
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.HandleUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleUploadNotMultipart(t *testing.T) {
	store := assets.NewStore(t.TempDir(), t.TempDir(), "http://localhost:8080")
	h := NewImageHandler(store, 10<<20)

	req := httptest.NewRequest(http.MethodPost, "/images", strings.NewReader("plain body"))
	rec := httptest.NewRecorder()

	h.HandleUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
