package model

import "time"

// Event represents a happening that applications can be submitted to.
// The core pipeline only writes events through the generic CRUD handlers;
// post-processing reads them to resolve an application's notification target.
type Event struct {
	ID          int64
	Title       string
	Description string
	Homepage    string
	Date        *time.Time
	Owner       *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventRequest represents an event create or update payload.
type EventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Homepage    string     `json:"homepage"`
	Date        *time.Time `json:"date"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Homepage    string     `json:"homepage"`
	Date        *time.Time `json:"date"`
	Owner       *int64     `json:"owner"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
