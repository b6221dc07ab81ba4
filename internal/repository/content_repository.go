package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/campfireagency/socialpress/internal/models"
	"github.com/lib/pq"
)

// ErrAlreadyRecorded reports that a conditional publish write matched no row,
// meaning another invocation already stored an external post id.
var ErrAlreadyRecorded = errors.New("content item already carries an external post id")

type ContentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ContentItem, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.ContentItem, error)
	MarkPublished(ctx context.Context, id int64, postID string) error
	SetLastError(ctx context.Context, id int64, message string) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, client_id, platform, body, hashtags, mentions,
			COALESCE(image_url, ''), COALESCE(video_url, ''), content_type, status,
			COALESCE(external_post_id, ''), COALESCE(last_error, ''),
			scheduled_time, published_at, created_at, updated_at`

func (r *contentRepository) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	item, err := scanContentItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return item, nil
}

func (r *contentRepository) ListDue(ctx context.Context, now time.Time) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + `
		FROM content_items
		WHERE status = $1 AND scheduled_time <= $2 AND external_post_id IS NULL`

	rows, err := r.db.QueryContext(ctx, query, models.ContentStatusScheduled, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return items, nil
}

// MarkPublished records a successful publish. The write is conditional on the
// external post id still being null, which backstops two invocations racing
// past the pre-dispatch idempotency check.
func (r *contentRepository) MarkPublished(ctx context.Context, id int64, postID string) error {
	query := `
		UPDATE content_items
		SET status = $1,
			external_post_id = $2,
			last_error = NULL,
			published_at = $3,
			updated_at = $3
		WHERE id = $4 AND external_post_id IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, models.ContentStatusPublished, postID, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected == 0 {
		return ErrAlreadyRecorded
	}
	return nil
}

// SetLastError stores the failure message without touching the status, so the
// item stays eligible for a manual retry.
func (r *contentRepository) SetLastError(ctx context.Context, id int64, message string) error {
	query := `
		UPDATE content_items
		SET last_error = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, message, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContentItem(row rowScanner) (*models.ContentItem, error) {
	var item models.ContentItem
	var publishedAt sql.NullTime

	err := row.Scan(&item.ID, &item.ClientID, &item.Platform, &item.Body,
		pq.Array(&item.Hashtags), pq.Array(&item.Mentions),
		&item.ImageURL, &item.VideoURL, &item.ContentType, &item.Status,
		&item.ExternalPostID, &item.LastError,
		&item.ScheduledTime, &publishedAt, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		item.PublishedAt = publishedAt.Time
	}
	return &item, nil
}
