package imgpostgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"
)

func newRepoWithMock(t *testing.T) (PostgresRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	pg := &dbpg.DB{Master: db}

	repo := PostgresRepo{DB: pg}

	return repo, mock
}

// CREATE - SUCCESS
func TestPostgresRepo_Create_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	img := &model.Image{
		Filename:     "cat_token",
		OriginalName: "cat",
		Size:         1234,
		FileType:     ".jpg",
	}

	uploadTime := time.Now()
	mock.ExpectQuery(`INSERT INTO images`).
		WithArgs(img.Filename, img.OriginalName, img.Size, img.FileType).
		WillReturnRows(sqlmock.NewRows([]string{"id", "upload_time"}).AddRow(int64(7), uploadTime))

	err := repo.Create(context.Background(), img)
	require.NoError(t, err)
	require.Equal(t, int64(7), img.ID)
	require.Equal(t, uploadTime, img.UploadTime)
}

// CREATE - DB FAIL
func TestPostgresRepo_Create_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO images`).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	err := repo.Create(context.Background(), &model.Image{Filename: "cat_token"})
	require.ErrorIs(t, err, model.ErrEntityCreation)
}

// DELETE - ROW REMOVED
func TestPostgresRepo_DeleteByFilename_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`DELETE FROM images`).
		WithArgs("cat_token").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	deleted, err := repo.DeleteByFilename(context.Background(), "cat_token")
	require.NoError(t, err)
	require.True(t, deleted)
}

// DELETE - NO SUCH ROW
func TestPostgresRepo_DeleteByFilename_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`DELETE FROM images`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	deleted, err := repo.DeleteByFilename(context.Background(), "ghost")
	require.NoError(t, err)
	require.False(t, deleted)
}

// DELETE - DB FAIL
func TestPostgresRepo_DeleteByFilename_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`DELETE FROM images`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.DeleteByFilename(context.Background(), "cat_token")
	require.ErrorIs(t, err, model.ErrEntityDeletion)
}

// GETLIST - SUCCESS
func TestPostgresRepo_GetListPaginatedSorted_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{
		"id", "filename", "original_name", "size", "file_type", "upload_time",
	}).
		AddRow(int64(1), "a_1", "a", int64(100), ".jpg", time.Now()).
		AddRow(int64(2), "b_2", "b", int64(200), ".png", time.Now())

	mock.ExpectQuery(`SELECT id, filename, original_name, size, file_type, upload_time`).
		WithArgs(8, 0).
		WillReturnRows(rows)

	images, err := repo.GetListPaginatedSorted(context.Background(), 8, 0, "size", "ASC")
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, "a_1", images[0].Filename)
	require.Equal(t, ".png", images[1].FileType)
}

// GETLIST - DB FAIL
func TestPostgresRepo_GetListPaginatedSorted_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT id, filename`).
		WillReturnError(errors.New("relation does not exist"))

	_, err := repo.GetListPaginatedSorted(context.Background(), 8, 0, "upload_time", "DESC")
	require.ErrorIs(t, err, model.ErrQueryExecution)
}

// COUNT - SUCCESS
func TestPostgresRepo_CountAll_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))

	total, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 20, total)
}

// COUNT - DB FAIL
func TestPostgresRepo_CountAll_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CountAll(context.Background())
	require.ErrorIs(t, err, model.ErrQueryExecution)
}
