package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/showcase/showcase-go/internal/model"
)

var ErrApplicationNotFound = errors.New("application not found")

// ApplicationRepository handles application persistence operations. The
// images, datasets and authors lists are stored as JSON columns.
type ApplicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, title, text, homepage, download_url, connected_event, published, images, datasets, authors, created_at, updated_at`

// Create inserts a new application and sets the generated ID on the struct.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	images, datasets, authors, err := marshalLists(app)
	if err != nil {
		return err
	}

	query := `INSERT INTO applications
		(title, text, homepage, download_url, connected_event, published, images, datasets, authors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		app.Title, app.Text, app.Homepage, app.DownloadURL,
		app.ConnectedEvent, app.Published, images, datasets, authors,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	app.ID = id
	return nil
}

// Update overwrites an application's mutable columns.
func (r *ApplicationRepository) Update(ctx context.Context, app *model.Application) error {
	images, datasets, authors, err := marshalLists(app)
	if err != nil {
		return err
	}

	query := `UPDATE applications SET
		title = ?, text = ?, homepage = ?, download_url = ?,
		connected_event = ?, published = ?, images = ?, datasets = ?, authors = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		app.Title, app.Text, app.Homepage, app.DownloadURL,
		app.ConnectedEvent, app.Published, images, datasets, authors, app.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// UpdateImages overwrites only the images column, used by asset promotion
// once every pending upload has been moved to permanent storage.
func (r *ApplicationRepository) UpdateImages(ctx context.Context, id int64, images []string) error {
	encoded, err := json.Marshal(emptyIfNil(images))
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `UPDATE applications SET images = ? WHERE id = ?`, encoded, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// Delete removes an application by ID.
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// GetByID retrieves an application by its ID.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	app, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

// List returns all applications ordered by creation time.
func (r *ApplicationRepository) List(ctx context.Context) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func scanApplication(scan func(dest ...any) error) (*model.Application, error) {
	app := &model.Application{}
	var connectedEvent sql.NullInt64
	var images, datasets, authors []byte

	err := scan(
		&app.ID, &app.Title, &app.Text, &app.Homepage, &app.DownloadURL,
		&connectedEvent, &app.Published, &images, &datasets, &authors,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if connectedEvent.Valid {
		app.ConnectedEvent = &connectedEvent.Int64
	}
	if err := json.Unmarshal(images, &app.Images); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(datasets, &app.Datasets); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(authors, &app.Authors); err != nil {
		return nil, err
	}
	return app, nil
}

func marshalLists(app *model.Application) (images, datasets, authors []byte, err error) {
	if images, err = json.Marshal(emptyIfNil(app.Images)); err != nil {
		return nil, nil, nil, err
	}
	if app.Datasets == nil {
		app.Datasets = []model.Dataset{}
	}
	if datasets, err = json.Marshal(app.Datasets); err != nil {
		return nil, nil, nil, err
	}
	if app.Authors == nil {
		app.Authors = []model.Author{}
	}
	if authors, err = json.Marshal(app.Authors); err != nil {
		return nil, nil, nil, err
	}
	return images, datasets, authors, nil
}

func emptyIfNil(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
