package service

import (
	"context"
	"errors"

	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/repository"
)

var ErrEventNotFound = errors.New("event not found")

// EventStore is the slice of event persistence the event service needs.
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
}

// EventService is a thin CRUD layer over events. Its only rule of its own:
// a create performed by an authenticated request records that identity as
// the event's owner.
type EventService struct {
	repo EventStore
}

// NewEventService creates a new EventService.
func NewEventService(repo EventStore) *EventService {
	return &EventService{repo: repo}
}

// Create stores a new event. owner is the authenticated identity, or nil
// for an unauthenticated request.
func (s *EventService) Create(ctx context.Context, owner *int64, req model.EventRequest) (model.EventResponse, error) {
	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Homepage:    req.Homepage,
		Date:        req.Date,
		Owner:       owner,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return model.EventResponse{}, err
	}
	return toEventResponse(event), nil
}

// Update overwrites an event's descriptive fields. Ownership never changes
// through this path.
func (s *EventService) Update(ctx context.Context, id int64, req model.EventRequest) (model.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.EventResponse{}, ErrEventNotFound
		}
		return model.EventResponse{}, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Homepage = req.Homepage
	event.Date = req.Date

	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.EventResponse{}, ErrEventNotFound
		}
		return model.EventResponse{}, err
	}
	return toEventResponse(event), nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		return ErrEventNotFound
	}
	return err
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id int64) (model.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.EventResponse{}, ErrEventNotFound
		}
		return model.EventResponse{}, err
	}
	return toEventResponse(event), nil
}

// List returns all events.
func (s *EventService) List(ctx context.Context) ([]model.EventResponse, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.EventResponse, len(events))
	for i, event := range events {
		result[i] = toEventResponse(&event)
	}
	return result, nil
}

func toEventResponse(event *model.Event) model.EventResponse {
	return model.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Homepage:    event.Homepage,
		Date:        event.Date,
		Owner:       event.Owner,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}
