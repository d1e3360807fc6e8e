package model

import "time"

// Media categories inferred from the declared MIME type of an upload.
const (
	CategoryImage = "image"
	CategoryPDF   = "pdf"
	CategoryVideo = "video"
)

// MediaObject represents a stored media file indexed by the application.
// This is a pure domain model with no database-specific dependencies or tags.
// The object store owns the bytes; this record only mirrors the metadata the
// storefront admin needs for listing.
type MediaObject struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Converted   bool      `json:"converted"`
	CreatedAt   time.Time `json:"created_at"`
}
