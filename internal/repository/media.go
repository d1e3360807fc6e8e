package repository

import (
	"context"

	"mediaapi/internal/model"
)

// MediaRepository defines data access for the media metadata index using SQL queries only.
// No business logic here — strictly persistence operations. The object store
// remains the source of truth for bytes; this index only backs listings.
type MediaRepository interface {
	// Create inserts a new media record.
	// The caller provides required fields (e.g., ID, CreatedAt) according to the database schema defaults.
	// Returns the stored record (may include values set by the DB).
	Create(ctx context.Context, m *model.MediaObject) (*model.MediaObject, error)

	// FindByPath returns a media record by its storage key.
	FindByPath(ctx context.Context, path string) (*model.MediaObject, error)

	// List returns a paginated list of media records and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.MediaObject], error)

	// DeleteByPath removes a media record by its storage key.
	// It returns nil if the row was deleted or did not exist.
	DeleteByPath(ctx context.Context, path string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
