package model

import "time"

// User represents a user account in the database. Password material never
// leaves the repository/service layers; API responses use UserResponse.
type User struct {
	ID                 int64
	Email              string
	HashedPassword     string
	Salt               string
	AccessToken        *string
	EmailNotifications bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UserRequest represents a user create or update payload. Password is
// write-only input; it is hashed before persistence and never stored as-is.
// Fields outside this struct are discarded by JSON decoding, which is the
// allow-list: {email, password, id, emailNotifications}.
type UserRequest struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	EmailNotifications *bool  `json:"emailNotifications"`
}

// LoginRequest represents a login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses. Exactly these
// three fields; never hashedPassword, salt or accessToken.
type UserResponse struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	EmailNotifications bool   `json:"emailNotifications"`
}
