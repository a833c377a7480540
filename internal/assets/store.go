package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/showcase/showcase-go/internal/model"
)

// promoteConcurrency caps parallel file copies during promotion.
const promoteConcurrency = 4

// Store moves uploaded images between temporary and permanent storage.
// Uploads land in tmpDir under a generated name; promotion copies them to
// staticDir/images/<applicationID>/<name> and builds the public URL.
type Store struct {
	tmpDir        string
	staticDir     string
	publicBaseURL string
}

// NewStore creates a Store over the given directories.
func NewStore(tmpDir, staticDir, publicBaseURL string) *Store {
	return &Store{tmpDir: tmpDir, staticDir: staticDir, publicBaseURL: publicBaseURL}
}

// SaveUpload writes an uploaded file to temporary storage and returns the
// generated temp filename. The caller hands that name back later inside an
// application write's image list.
func (s *Store) SaveUpload(src io.Reader) (string, error) {
	tmpName := "upload-" + uuid.NewString()

	f, err := os.Create(filepath.Join(s.tmpDir, tmpName))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	return tmpName, nil
}

// Promote resolves an application write's image list into permanent URLs.
// {src} entries pass through unchanged; {tmpName, name} entries are moved
// from temporary storage into the application's image directory. All moves
// are joined before returning, so the caller can safely persist the result.
// Entries whose move failed are omitted from the list; each failure is
// logged here and the first is also returned.
func (s *Store) Promote(ctx context.Context, applicationID int64, images []model.ImageInput) ([]string, error) {
	resolved := make([]string, len(images))

	g := new(errgroup.Group)
	g.SetLimit(promoteConcurrency)

	for i, image := range images {
		i, image := i, image
		switch {
		case image.Src != "":
			resolved[i] = image.Src

		case image.TmpName != "":
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				url, err := s.promoteOne(applicationID, image.TmpName, image.Name)
				if err != nil {
					slog.Error("image promotion failed",
						"application", applicationID,
						"tmpName", image.TmpName,
						"name", image.Name,
						"error", err,
					)
					return err
				}
				resolved[i] = url
				return nil
			})
		}
	}

	err := g.Wait()

	// Drop slots that never resolved (failed moves, empty entries) while
	// keeping the submitted order for the rest.
	final := make([]string, 0, len(resolved))
	for _, url := range resolved {
		if url != "" {
			final = append(final, url)
		}
	}
	return final, err
}

// promoteOne copies a single temp file to permanent storage and removes the
// temp copy. Base-name the inputs so a crafted payload cannot escape the
// storage directories.
func (s *Store) promoteOne(applicationID int64, tmpName, name string) (string, error) {
	tmpPath := filepath.Join(s.tmpDir, filepath.Base(tmpName))
	name = filepath.Base(name)

	dir := filepath.Join(s.staticDir, "images", strconv.FormatInt(applicationID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing permanent file: %w", err)
	}

	if err := os.Remove(tmpPath); err != nil {
		slog.Warn("could not remove temp file", "path", tmpPath, "error", err)
	}

	return fmt.Sprintf("%s/static/images/%d/%s", s.publicBaseURL, applicationID, name), nil
}
