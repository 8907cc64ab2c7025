package mysql

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFavoriteTx(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("insert into favorite").
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("update prompt set favorite_count").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, AddFavorite(1, 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavoriteMissing(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("delete from favorite").
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := RemoveFavorite(1, 7)
	assert.ErrorIs(t, err, ErrorFavoriteMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckFavoriteExist(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("select count").
		WithArgs(int64(1), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exist, err := CheckFavoriteExist(1, 7)
	require.NoError(t, err)
	assert.True(t, exist)
}
