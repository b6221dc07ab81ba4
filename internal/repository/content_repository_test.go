package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campfireagency/socialpress/internal/models"
)

var contentRows = []string{
	"id", "client_id", "platform", "body", "hashtags", "mentions",
	"image_url", "video_url", "content_type", "status",
	"external_post_id", "last_error",
	"scheduled_time", "published_at", "created_at", "updated_at",
}

func TestContentGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM content_items WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(contentRows).AddRow(
			int64(42), int64(7), "instagram", "Launch day!", []byte("{launch,demo}"), []byte("{partner}"),
			"https://cdn.example.com/a.jpg", "", "image", "scheduled",
			"", "", now, nil, now, now,
		))

	repo := NewContentRepository(db)
	item, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, "instagram", item.Platform)
	assert.Equal(t, []string{"launch", "demo"}, item.Hashtags)
	assert.Equal(t, []string{"partner"}, item.Mentions)
	assert.Equal(t, models.ContentStatusScheduled, item.Status)
	assert.Empty(t, item.ExternalPostID)
	assert.True(t, item.PublishedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM content_items WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(contentRows))

	repo := NewContentRepository(db)
	item, err := repo.GetByID(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, item)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentMarkPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $4 AND external_post_id IS NULL`)).
		WithArgs(models.ContentStatusPublished, "ig_post_1", sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContentRepository(db)
	err = repo.MarkPublished(context.Background(), 42, "ig_post_1")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentMarkPublishedConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $4 AND external_post_id IS NULL`)).
		WithArgs(models.ContentStatusPublished, "ig_post_2", sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewContentRepository(db)
	err = repo.MarkPublished(context.Background(), 42, "ig_post_2")

	assert.ErrorIs(t, err, ErrAlreadyRecorded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentSetLastError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`SET last_error = $1`)).
		WithArgs("media container processing failed", sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContentRepository(db)
	err = repo.SetLastError(context.Background(), 42, "media container processing failed")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentListDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = $1 AND scheduled_time <= $2 AND external_post_id IS NULL`)).
		WithArgs(models.ContentStatusScheduled, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(contentRows).
			AddRow(int64(1), int64(7), "facebook", "a", []byte("{}"), []byte("{}"),
				"", "", "image", "scheduled", "", "", now, nil, now, now).
			AddRow(int64(2), int64(8), "instagram", "b", []byte("{}"), []byte("{}"),
				"", "https://cdn.example.com/b.mp4", "reel", "scheduled", "", "", now, nil, now, now))

	repo := NewContentRepository(db)
	items, err := repo.ListDue(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "reel", items[1].ContentType)
	require.NoError(t, mock.ExpectationsWereMet())
}
