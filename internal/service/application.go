package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/repository"
)

var ErrApplicationNotFound = errors.New("application not found")

// ApplicationStore is the slice of application persistence the service needs.
type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	Update(ctx context.Context, app *model.Application) error
	UpdateImages(ctx context.Context, id int64, images []string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
}

// EventGetter resolves an application's connected event.
type EventGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Event, error)
}

// UserGetter resolves an event's owner.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// OwnerNotifier sends the owner-notification email.
type OwnerNotifier interface {
	SendApplicationNotification(ctx context.Context, to, eventTitle, appTitle string) error
}

// ImagePromoter resolves an image list into permanent URLs, joining all
// pending file moves before returning.
type ImagePromoter interface {
	Promote(ctx context.Context, applicationID int64, images []model.ImageInput) ([]string, error)
}

// ApplicationService handles application CRUD plus the two post-write hooks:
// AfterCreate (notification dispatch, then asset promotion) and AfterUpdate
// (asset promotion only). The hooks run after the base write succeeded, so
// their failures are logged, never reported as failures of the request.
type ApplicationService struct {
	apps     ApplicationStore
	events   EventGetter
	users    UserGetter
	notifier OwnerNotifier
	promoter ImagePromoter
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(apps ApplicationStore, events EventGetter, users UserGetter, notifier OwnerNotifier, promoter ImagePromoter) *ApplicationService {
	return &ApplicationService{
		apps:     apps,
		events:   events,
		users:    users,
		notifier: notifier,
		promoter: promoter,
	}
}

// Create stores a new application. The submitted image list is kept out of
// the stored record until AfterCreate promotes it; only already-permanent
// src entries are persisted right away.
func (s *ApplicationService) Create(ctx context.Context, req model.ApplicationRequest) (model.ApplicationResponse, error) {
	app := applicationFromRequest(req)

	if err := s.apps.Create(ctx, app); err != nil {
		return model.ApplicationResponse{}, err
	}
	return toApplicationResponse(app), nil
}

// Update overwrites an application's fields.
func (s *ApplicationService) Update(ctx context.Context, id int64, req model.ApplicationRequest) (model.ApplicationResponse, error) {
	existing, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return model.ApplicationResponse{}, ErrApplicationNotFound
		}
		return model.ApplicationResponse{}, err
	}

	app := applicationFromRequest(req)
	app.ID = existing.ID
	app.CreatedAt = existing.CreatedAt

	if err := s.apps.Update(ctx, app); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return model.ApplicationResponse{}, ErrApplicationNotFound
		}
		return model.ApplicationResponse{}, err
	}
	return toApplicationResponse(app), nil
}

// Delete removes an application.
func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	err := s.apps.Delete(ctx, id)
	if errors.Is(err, repository.ErrApplicationNotFound) {
		return ErrApplicationNotFound
	}
	return err
}

// Get returns a single application.
func (s *ApplicationService) Get(ctx context.Context, id int64) (model.ApplicationResponse, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return model.ApplicationResponse{}, ErrApplicationNotFound
		}
		return model.ApplicationResponse{}, err
	}
	return toApplicationResponse(app), nil
}

// List returns all applications.
func (s *ApplicationService) List(ctx context.Context) ([]model.ApplicationResponse, error) {
	apps, err := s.apps.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.ApplicationResponse, len(apps))
	for i, app := range apps {
		result[i] = toApplicationResponse(&app)
	}
	return result, nil
}

// AfterCreate runs the post-create hooks: notification dispatch first, then
// asset promotion, in that order.
func (s *ApplicationService) AfterCreate(ctx context.Context, id int64, published bool, connectedEvent *int64, title string, images []model.ImageInput) {
	s.notifyOwner(ctx, published, connectedEvent, title)
	s.promoteImages(ctx, id, images)
}

// AfterUpdate runs the post-update hook: asset promotion only.
func (s *ApplicationService) AfterUpdate(ctx context.Context, id int64, images []model.ImageInput) {
	s.promoteImages(ctx, id, images)
}

// notifyOwner emails the connected event's owner about an unpublished
// application, if that owner opted into notifications. Every missing link
// (no event reference, unknown event, ownerless event, unknown owner)
// aborts silently; only a failed send is worth a log line.
func (s *ApplicationService) notifyOwner(ctx context.Context, published bool, connectedEvent *int64, appTitle string) {
	if published || connectedEvent == nil {
		return
	}

	event, err := s.events.GetByID(ctx, *connectedEvent)
	if err != nil || event.Owner == nil {
		return
	}

	owner, err := s.users.GetByID(ctx, *event.Owner)
	if err != nil || !owner.EmailNotifications {
		return
	}

	if err := s.notifier.SendApplicationNotification(ctx, owner.Email, event.Title, appTitle); err != nil {
		slog.Error("owner notification failed", "event", event.ID, "to", owner.Email, "error", err)
	}
}

// promoteImages resolves the submitted image list to permanent URLs and
// overwrites the stored record. The promoter joins every pending file move
// before returning, so the save cannot race the copies.
func (s *ApplicationService) promoteImages(ctx context.Context, id int64, images []model.ImageInput) {
	resolved, err := s.promoter.Promote(ctx, id, images)
	if err != nil {
		slog.Warn("asset promotion incomplete", "application", id, "error", err)
	}

	if err := s.apps.UpdateImages(ctx, id, resolved); err != nil {
		slog.Error("saving promoted images failed", "application", id, "error", err)
	}
}

// applicationFromRequest maps a write payload onto the stored shape. Image
// entries that are already permanent keep their URL; freshly uploaded ones
// only enter the record once promotion resolves them.
func applicationFromRequest(req model.ApplicationRequest) *model.Application {
	images := make([]string, 0, len(req.Images))
	for _, image := range req.Images {
		if image.Src != "" {
			images = append(images, image.Src)
		}
	}

	return &model.Application{
		Title:          req.Title,
		Text:           req.Text,
		Homepage:       req.Homepage,
		DownloadURL:    req.DownloadURL,
		ConnectedEvent: req.ConnectedEvent,
		Published:      req.Published,
		Images:         images,
		Datasets:       req.Datasets,
		Authors:        req.Authors,
	}
}

func toApplicationResponse(app *model.Application) model.ApplicationResponse {
	return model.ApplicationResponse{
		ID:             app.ID,
		Title:          app.Title,
		Text:           app.Text,
		Homepage:       app.Homepage,
		DownloadURL:    app.DownloadURL,
		ConnectedEvent: app.ConnectedEvent,
		Published:      app.Published,
		Images:         app.Images,
		Datasets:       app.Datasets,
		Authors:        app.Authors,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}
