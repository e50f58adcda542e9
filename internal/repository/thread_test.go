package repository

import (
	"context"
	"regexp"
	"testing"

	"forumverse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadRepository_IncrementVote(t *testing.T) {
	ctx := context.Background()

	t.Run("Upvote Uses Single Atomic Update", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewThreadRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "threads" SET "upvotes"=upvotes + 1 WHERE id = $1`)).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.IncrementVote(ctx, 5, models.VoteUp)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Downvote Targets Downvotes Column", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewThreadRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "threads" SET "downvotes"=downvotes + 1 WHERE id = $1`)).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.IncrementVote(ctx, 5, models.VoteDown)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Thread Is Not Found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewThreadRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "threads" SET "upvotes"=upvotes + 1 WHERE id = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.IncrementVote(ctx, 99, models.VoteUp)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestThreadRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewThreadRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "title", "author_id", "upvotes", "downvotes", "comment_count"}).
		AddRow(2, "Newest", 1, 1, 0, 0).
		AddRow(1, "Oldest", 1, 3, 1, 4)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "threads" ORDER BY created_at DESC LIMIT $1`)).
		WithArgs(20).
		WillReturnRows(rows)

	// Author preload
	authorRows := sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1).
		WillReturnRows(authorRows)

	threads, err := repo.List(ctx, 20, 0)
	assert.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, "Newest", threads[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
