package service

import (
	"context"

	"github.com/showcase/showcase-go/internal/model"
	"github.com/showcase/showcase-go/internal/repository"
)

// fakeUserStore is an in-memory user store shared by the service tests.
type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64

	// setTokenErrs is consumed one error per SetAccessToken call, letting
	// tests simulate token collisions.
	setTokenErrs []error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUserStore) add(user *model.User) *model.User {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	clone := *user
	f.add(&clone)
	user.ID = clone.ID
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) SetAccessToken(_ context.Context, userID int64, token string) error {
	if len(f.setTokenErrs) > 0 {
		err := f.setTokenErrs[0]
		f.setTokenErrs = f.setTokenErrs[1:]
		if err != nil {
			return err
		}
	}
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.AccessToken = &token
	return nil
}

// fakeEventStore is an in-memory event store.
type fakeEventStore struct {
	events map[int64]*model.Event
	nextID int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*model.Event), nextID: 1}
}

func (f *fakeEventStore) Create(_ context.Context, event *model.Event) error {
	event.ID = f.nextID
	f.nextID++
	clone := *event
	f.events[event.ID] = &clone
	return nil
}

func (f *fakeEventStore) Update(_ context.Context, event *model.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return repository.ErrEventNotFound
	}
	clone := *event
	f.events[event.ID] = &clone
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*model.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	clone := *event
	return &clone, nil
}

func (f *fakeEventStore) List(_ context.Context) ([]model.Event, error) {
	var events []model.Event
	for _, event := range f.events {
		events = append(events, *event)
	}
	return events, nil
}

// fakeApplicationStore is an in-memory application store.
type fakeApplicationStore struct {
	apps   map[int64]*model.Application
	nextID int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: make(map[int64]*model.Application), nextID: 1}
}

func (f *fakeApplicationStore) Create(_ context.Context, app *model.Application) error {
	app.ID = f.nextID
	f.nextID++
	clone := *app
	f.apps[app.ID] = &clone
	return nil
}

func (f *fakeApplicationStore) Update(_ context.Context, app *model.Application) error {
	if _, ok := f.apps[app.ID]; !ok {
		return repository.ErrApplicationNotFound
	}
	clone := *app
	f.apps[app.ID] = &clone
	return nil
}

func (f *fakeApplicationStore) UpdateImages(_ context.Context, id int64, images []string) error {
	app, ok := f.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	app.Images = images
	return nil
}

func (f *fakeApplicationStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.apps[id]; !ok {
		return repository.ErrApplicationNotFound
	}
	delete(f.apps, id)
	return nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*model.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	clone := *app
	return &clone, nil
}

func (f *fakeApplicationStore) List(_ context.Context) ([]model.Application, error) {
	var apps []model.Application
	for _, app := range f.apps {
		apps = append(apps, *app)
	}
	return apps, nil
}

// sentEmail records one notifier call.
type sentEmail struct {
	to, eventTitle, appTitle string
}

// fakeNotifier records notification sends; calls may be shared with a
// fakePromoter to assert hook ordering.
type fakeNotifier struct {
	sent  []sentEmail
	calls *[]string
	err   error
}

func (f *fakeNotifier) SendApplicationNotification(_ context.Context, to, eventTitle, appTitle string) error {
	f.sent = append(f.sent, sentEmail{to: to, eventTitle: eventTitle, appTitle: appTitle})
	if f.calls != nil {
		*f.calls = append(*f.calls, "notify")
	}
	return f.err
}

// fakePromoter returns a canned resolved list.
type fakePromoter struct {
	resolved []string
	err      error
	got      []model.ImageInput
	calls    *[]string
}

func (f *fakePromoter) Promote(_ context.Context, _ int64, images []model.ImageInput) ([]string, error) {
	f.got = images
	if f.calls != nil {
		*f.calls = append(*f.calls, "promote")
	}
	return f.resolved, f.err
}
