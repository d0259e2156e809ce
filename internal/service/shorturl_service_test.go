package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorturl-go/pkg/utils"
)

func longURLRow(id int64, url string, ownerID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "url", "owner_id"}).
		AddRow(id, url, ownerID)
}

func shortURLRow(id int64, ownerID, fullURLID int64, code string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "owner_id", "full_url_id", "short_code", "created_at", "updated_at"}).
		AddRow(id, ownerID, fullURLID, code, now, now)
}

func emptyShortURLRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner_id", "full_url_id", "short_code", "created_at", "updated_at"})
}

func TestCreateShortURLNew(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `long_url`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "owner_id"}))
	mock.ExpectExec("INSERT INTO `long_url`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery("SELECT (.+) FROM `short_url`").
		WillReturnRows(emptyShortURLRows())
	mock.ExpectExec("INSERT INTO `short_url`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	resp, err := CreateShortURL(context.Background(), 1, "https://example.com/page")
	require.NoError(t, err)

	wantCode := utils.EncodeBase62(5 + codeOffset)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, wantCode, resp.URLCode)
	assert.Equal(t, "example.com/"+wantCode, resp.ShortURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShortURLRejectsBadURL(t *testing.T) {
	initTestEnv(t)

	_, err := CreateShortURL(context.Background(), 1, "example.com/no-scheme")
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

// Submitting an already shortened URL as a different user returns the
// existing code, attributed to whoever created the long record first.
func TestCreateIsIdempotentAcrossUsers(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `long_url`").
		WillReturnRows(longURLRow(5, "https://example.com/page", 1))
	mock.ExpectQuery("SELECT (.+) FROM `short_url`").
		WillReturnRows(shortURLRow(7, 1, 5, "fxSP"))
	mock.ExpectCommit()

	resp, err := CreateShortURL(context.Background(), 2, "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "fxSP", resp.URLCode)
	assert.Equal(t, "example.com/fxSP", resp.ShortURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A duplicate-key failure on the long insert means a concurrent
// request won the race; the loser picks up the winner's row with a
// locking read and carries on.
func TestCreateShortURLDuplicateRace(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `long_url`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "owner_id"}))
	mock.ExpectExec("INSERT INTO `long_url`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectQuery("SELECT (.+) FROM `long_url`(.+)FOR UPDATE").
		WillReturnRows(longURLRow(5, "https://example.com/page", 9))
	mock.ExpectQuery("SELECT (.+) FROM `short_url`").
		WillReturnRows(shortURLRow(7, 9, 5, "fxSP"))
	mock.ExpectCommit()

	resp, err := CreateShortURL(context.Background(), 2, "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, "fxSP", resp.URLCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShortURLShortInsertFails(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `long_url`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "owner_id"}))
	mock.ExpectExec("INSERT INTO `long_url`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery("SELECT (.+) FROM `short_url`").
		WillReturnRows(emptyShortURLRows())
	mock.ExpectExec("INSERT INTO `short_url`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := CreateShortURL(context.Background(), 1, "https://example.com/page")
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveShortURLFound(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectQuery("SELECT (.+) FROM `short_url` JOIN long_url").
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "short_code"}).
			AddRow(7, "https://example.com/page", "fxSP"))

	resp, err := ResolveShortURL(context.Background(), "fxSP")
	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "https://example.com/page", resp.URL)
	assert.Equal(t, "fxSP", resp.ShortURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveShortURLNotFound(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectQuery("SELECT (.+) FROM `short_url` JOIN long_url").
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "short_code"}))

	_, err := ResolveShortURL(context.Background(), "zzzzz")
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestResolveShortURLInvalidCode(t *testing.T) {
	initTestEnv(t)

	_, err := ResolveShortURL(context.Background(), "no such/code")
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestUpdateShortURL(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `long_url` JOIN short_url (.+)long_url.owner_id").
		WillReturnRows(longURLRow(5, "https://example.com/old", 1))
	mock.ExpectExec("UPDATE `long_url`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := UpdateShortURL(context.Background(), "fxSP", 1, "https://example.com/new")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Update authorizes against the long record's owner: the short record
// owner alone cannot update. Pins the current asymmetric behavior.
func TestUpdateOwnershipUsesLongRecordOwner(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `long_url` JOIN short_url (.+)long_url.owner_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "owner_id"}))
	mock.ExpectRollback()

	err := UpdateShortURL(context.Background(), "fxSP", 2, "https://example.com/new")
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Pointing a short link at a URL another long record already holds
// trips the unique index and comes back as a conflict, not a 500.
func TestUpdateShortURLConflictingURL(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `long_url` JOIN short_url (.+)long_url.owner_id").
		WillReturnRows(longURLRow(5, "https://example.com/old", 1))
	mock.ExpectExec("UPDATE `long_url`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := UpdateShortURL(context.Background(), "fxSP", 1, "https://example.com/taken")
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteShortURL(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `short_url` JOIN long_url (.+)short_url.owner_id").
		WillReturnRows(shortURLRow(7, 1, 5, "fxSP"))
	mock.ExpectExec("DELETE FROM `short_url`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := DeleteShortURL(context.Background(), "fxSP", 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Delete authorizes against the short record's owner, unlike Update.
// Pins the current asymmetric behavior.
func TestDeleteOwnershipUsesShortRecordOwner(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `short_url` JOIN long_url (.+)short_url.owner_id").
		WillReturnRows(emptyShortURLRows())
	mock.ExpectRollback()

	err := DeleteShortURL(context.Background(), "fxSP", 2)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteShortURLFailure(t *testing.T) {
	mock := initTestEnv(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `short_url` JOIN long_url").
		WillReturnRows(shortURLRow(7, 1, 5, "fxSP"))
	mock.ExpectExec("DELETE FROM `short_url`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := DeleteShortURL(context.Background(), "fxSP", 1)
	assert.Equal(t, http.StatusInternalServerError, appErrorCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
