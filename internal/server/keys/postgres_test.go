package keys

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

const (
	insertQ = `(?s)^INSERT\s+INTO\s+public_keys\s*\(username,\s*public_key\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(username\)\s*DO\s+NOTHING\s*$`
	deleteQ = `(?s)^DELETE\s+FROM\s+public_keys\s+WHERE\s+username\s*=\s*\$1\s*$`
	selectQ = `(?s)^SELECT\s+public_key\s+FROM\s+public_keys\s+WHERE\s+username\s*=\s*\$1\s*$`
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_Pin_New(t *testing.T) {
	s, mock := newStoreWithMock(t)
	k := newKey(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQ).WithArgs("alice", []byte(k)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectQ).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"public_key"}).AddRow([]byte(k)))
	mock.ExpectCommit()

	require.NoError(t, s.Pin(context.Background(), "alice", k))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Pin_DifferentKeyRollsBack(t *testing.T) {
	s, mock := newStoreWithMock(t)
	k1, k2 := newKey(t), newKey(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQ).WithArgs("alice", []byte(k2)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(selectQ).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"public_key"}).AddRow([]byte(k1)))
	mock.ExpectRollback()

	err := s.Pin(context.Background(), "alice", k2)
	require.ErrorIs(t, err, ErrAlreadyPinned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Pin_DBError(t *testing.T) {
	s, mock := newStoreWithMock(t)
	k := newKey(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQ).WithArgs("alice", []byte(k)).WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	err := s.Pin(context.Background(), "alice", k)
	require.Error(t, err)
	require.Contains(t, err.Error(), "db down")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	s, mock := newStoreWithMock(t)
	k := newKey(t)

	mock.ExpectQuery(selectQ).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"public_key"}).AddRow([]byte(k)))
	got, err := s.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, k, got)

	mock.ExpectQuery(selectQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	_, err = s.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotPinned)

	mock.ExpectQuery(selectQ).WithArgs("bob").WillReturnError(errors.New("db err"))
	_, err = s.Get(context.Background(), "bob")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotPinned)
}

func TestPostgresStore_Forget(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectExec(deleteQ).WithArgs("alice").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Forget(context.Background(), "alice"))

	mock.ExpectExec(deleteQ).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.Forget(context.Background(), "ghost"))

	mock.ExpectExec(deleteQ).WithArgs("bob").WillReturnError(errors.New("db down"))
	err := s.Forget(context.Background(), "bob")
	require.ErrorContains(t, err, "db down")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RunMigrations(t *testing.T) {
	s, _ := newStoreWithMock(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, s.RunMigrations(context.Background()))
	require.Equal(t, ".", gotDir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	err := s.RunMigrations(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
