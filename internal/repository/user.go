package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/showcase/showcase-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicateToken signals a collision on the access_token UNIQUE
	// index; the login path retries with a fresh token.
	ErrDuplicateToken = errors.New("access token already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, hashed_password, salt, access_token, email_notifications, created_at, updated_at`

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (email, hashed_password, salt, email_notifications) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.HashedPassword, user.Salt, user.EmailNotifications,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// Update overwrites a user's mutable columns. The access token is managed
// separately through SetAccessToken.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET email = ?, hashed_password = ?, salt = ?, email_notifications = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.HashedPassword, user.Salt, user.EmailNotifications, user.ID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetAccessToken persists a new access token for a user, overwriting any
// prior token. The column carries a UNIQUE index: a collision with another
// user's token surfaces as ErrDuplicateToken.
func (r *UserRepository) SetAccessToken(ctx context.Context, userID int64, token string) error {
	query := `UPDATE users SET access_token = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateToken
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByAccessToken resolves a bearer token to the user holding it.
func (r *UserRepository) GetByAccessToken(ctx context.Context, token string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE access_token = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var token sql.NullString

	err := row.Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.Salt,
		&token, &user.EmailNotifications, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if token.Valid {
		user.AccessToken = &token.String
	}
	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
