package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"forumverse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFollowRepository_Get_MissingEdgeIsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "followers" WHERE follower_id = $1 AND following_id = $2`)).
		WithArgs(1, 2, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	follow, err := repo.Get(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Nil(t, follow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Create_DuplicateIsConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "followers"`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "followers_pkey" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Follow{FollowerID: 1, FollowingID: 2})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Delete_AbsentEdgeIsNoError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "followers" WHERE follower_id = $1 AND following_id = $2`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_FollowerIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	rows := sqlmock.NewRows([]string{"follower_id"}).AddRow(3).AddRow(5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "follower_id" FROM "followers" WHERE following_id = $1`)).
		WithArgs(2).
		WillReturnRows(rows)

	ids, err := repo.FollowerIDs(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, []uint{3, 5}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
