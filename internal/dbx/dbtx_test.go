package dbx

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pinSQL = `INSERT INTO user_keys(username, public_key) VALUES ($1, $2) ON CONFLICT DO NOTHING`

func pinKey(ctx context.Context, tx DBTX) error {
	_, err := tx.ExecContext(ctx, pinSQL, "alice", []byte{1, 2, 3})
	return err
}

func TestWithTx(t *testing.T) {
	errPin := errors.New("pin failed")

	tests := []struct {
		name    string
		expect  func(m sqlmock.Sqlmock)
		fn      func(ctx context.Context, tx DBTX) error
		wantErr string
		wantIs  error
	}{
		{
			name: "commit after successful pin",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec("INSERT INTO user_keys").WithArgs("alice", []byte{1, 2, 3}).WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectCommit()
			},
			fn: pinKey,
		},
		{
			name: "exec error rolls back",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec("INSERT INTO user_keys").WillReturnError(errPin)
				m.ExpectRollback()
			},
			fn:     pinKey,
			wantIs: errPin,
		},
		{
			name: "begin failure skips fn",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin().WillReturnError(errors.New("no conn"))
			},
			fn: func(context.Context, DBTX) error {
				t.Error("fn must not run without a transaction")
				return nil
			},
			wantErr: "begin tx: no conn",
		},
		{
			name: "commit failure is wrapped",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn:      func(context.Context, DBTX) error { return nil },
			wantErr: "commit tx: serialization failure",
		},
		{
			name: "rollback failure joins fn error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback().WillReturnError(errors.New("conn reset"))
			},
			fn:      func(context.Context, DBTX) error { return errPin },
			wantErr: "rollback: conn reset",
			wantIs:  errPin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.expect(mock)

			err = WithTx(context.Background(), db, nil, tt.fn)

			if tt.wantErr == "" && tt.wantIs == nil {
				assert.NoError(t, err)
			}
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			}
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "store corrupted", func() {
		_ = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
			panic("store corrupted")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
