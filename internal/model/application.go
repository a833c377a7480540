package model

import "time"

// Application represents a project submission tied to an event. Images holds
// fully-resolved permanent URLs; raw upload references only exist in the
// request payload (ImageInput) until asset promotion rewrites them.
type Application struct {
	ID             int64
	Title          string
	Text           string
	Homepage       string
	DownloadURL    string
	ConnectedEvent *int64
	Published      bool
	Images         []string
	Datasets       []Dataset
	Authors        []Author
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Dataset is a linked data source attached to an application.
type Dataset struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Author is a person credited on an application.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ImageInput is one entry of an application write's image list. Either Src
// is set (an already-permanent URL, passed through unchanged) or TmpName and
// Name are set (a freshly uploaded file awaiting promotion).
type ImageInput struct {
	Src     string `json:"src,omitempty"`
	TmpName string `json:"tmpName,omitempty"`
	Name    string `json:"name,omitempty"`
}

// ApplicationRequest represents an application create or update payload.
type ApplicationRequest struct {
	Title          string       `json:"title"`
	Text           string       `json:"text"`
	Homepage       string       `json:"homepage"`
	DownloadURL    string       `json:"downloadUrl"`
	ConnectedEvent *int64       `json:"connectedEvent"`
	Published      bool         `json:"published"`
	Images         []ImageInput `json:"images"`
	Datasets       []Dataset    `json:"datasets"`
	Authors        []Author     `json:"authors"`
}

// ApplicationResponse represents an application in API responses.
type ApplicationResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Text           string    `json:"text"`
	Homepage       string    `json:"homepage"`
	DownloadURL    string    `json:"downloadUrl"`
	ConnectedEvent *int64    `json:"connectedEvent"`
	Published      bool      `json:"published"`
	Images         []string  `json:"images"`
	Datasets       []Dataset `json:"datasets"`
	Authors        []Author  `json:"authors"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
