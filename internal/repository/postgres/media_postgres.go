package postgres

import (
	"context"
	"database/sql"

	"mediaapi/internal/model"
	"mediaapi/internal/repository"
)

// MediaPostgres is a PostgreSQL implementation of repository.MediaRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type MediaPostgres struct {
	db *sql.DB
}

// NewMediaPostgres creates a new MediaPostgres repository.
func NewMediaPostgres(db *sql.DB) *MediaPostgres {
	return &MediaPostgres{db: db}
}

var _ repository.MediaRepository = (*MediaPostgres)(nil)

// Create inserts a new media row and returns the stored record.
// Re-uploading to an existing key replaces the row, mirroring the
// last-write-wins semantics of the object store.
func (r *MediaPostgres) Create(ctx context.Context, m *model.MediaObject) (*model.MediaObject, error) {
	const q = `
		INSERT INTO media_objects (id, path, url, category, size, content_type, converted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (path) DO UPDATE SET
			url = EXCLUDED.url,
			category = EXCLUDED.category,
			size = EXCLUDED.size,
			content_type = EXCLUDED.content_type,
			converted = EXCLUDED.converted,
			created_at = EXCLUDED.created_at
		RETURNING id, path, url, category, size, content_type, converted, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.Path,
		m.URL,
		m.Category,
		m.Size,
		m.ContentType,
		m.Converted,
		m.CreatedAt,
	)
	var out model.MediaObject
	if err := scanMedia(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByPath fetches a single media record by its storage key.
func (r *MediaPostgres) FindByPath(ctx context.Context, path string) (*model.MediaObject, error) {
	const q = `
		SELECT id, path, url, category, size, content_type, converted, created_at
		FROM media_objects
		WHERE path = $1
	`
	row := r.db.QueryRowContext(ctx, q, path)
	var m model.MediaObject
	if err := scanMedia(row, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns media records using LIMIT/OFFSET pagination and a total count.
func (r *MediaPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.MediaObject], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM media_objects`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `
		SELECT id, path, url, category, size, content_type, converted, created_at
		FROM media_objects
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.MediaObject, 0)
	for rows.Next() {
		var m model.MediaObject
		if err := rows.Scan(
			&m.ID,
			&m.Path,
			&m.URL,
			&m.Category,
			&m.Size,
			&m.ContentType,
			&m.Converted,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.MediaObject]{
		Items: items,
		Total: total,
	}, nil
}

// DeleteByPath removes a media record by key. It does not return an error if
// the row does not exist, keeping delete idempotent end to end.
func (r *MediaPostgres) DeleteByPath(ctx context.Context, path string) error {
	const q = `DELETE FROM media_objects WHERE path = $1`
	res, err := r.db.ExecContext(ctx, q, path)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func scanMedia(row *sql.Row, m *model.MediaObject) error {
	return row.Scan(
		&m.ID,
		&m.Path,
		&m.URL,
		&m.Category,
		&m.Size,
		&m.ContentType,
		&m.Converted,
		&m.CreatedAt,
	)
}
