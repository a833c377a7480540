package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/showcase/showcase-go/internal/model"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository handles event persistence operations.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, homepage, date, owner, created_at, updated_at`

// Create inserts a new event and sets the generated ID on the event struct.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `INSERT INTO events (title, description, homepage, date, owner) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		event.Title, event.Description, event.Homepage, event.Date, event.Owner,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

// Update overwrites an event's mutable columns.
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `UPDATE events SET title = ?, description = ?, homepage = ?, date = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		event.Title, event.Description, event.Homepage, event.Date, event.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event by ID.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, id))
}

// List returns all events ordered by creation time.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		event := model.Event{}
		var date sql.NullTime
		var owner sql.NullInt64

		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Homepage,
			&date, &owner, &event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if date.Valid {
			event.Date = &date.Time
		}
		if owner.Valid {
			event.Owner = &owner.Int64
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepository) scanEvent(row *sql.Row) (*model.Event, error) {
	event := &model.Event{}
	var date sql.NullTime
	var owner sql.NullInt64

	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.Homepage,
		&date, &owner, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if date.Valid {
		event.Date = &date.Time
	}
	if owner.Valid {
		event.Owner = &owner.Int64
	}
	return event, nil
}
