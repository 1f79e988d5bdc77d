package keys

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/auctionhouse/internal/dbx"
	"github.com/dmitrijs2005/auctionhouse/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore keeps pinned keys in the public_keys table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a pgx-backed *sql.DB and checks connectivity.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema.
func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, s.db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Pin(ctx context.Context, username string, key ed25519.PublicKey) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO public_keys (username, public_key)
			 VALUES ($1, $2)
			 ON CONFLICT (username) DO NOTHING`,
			username, []byte(key))
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		stored, err := getKey(ctx, tx, username)
		if err != nil {
			return err
		}
		if !bytes.Equal(stored, key) {
			return ErrAlreadyPinned
		}
		return nil
	})
}

func (s *PostgresStore) Get(ctx context.Context, username string) (ed25519.PublicKey, error) {
	return getKey(ctx, s.db, username)
}

// Forget deletes the pinned key. Deleting a missing row is not an error.
func (s *PostgresStore) Forget(ctx context.Context, username string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM public_keys WHERE username = $1`, username); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func getKey(ctx context.Context, db dbx.DBTX, username string) (ed25519.PublicKey, error) {
	var key []byte
	err := db.QueryRowContext(ctx,
		`SELECT public_key FROM public_keys WHERE username = $1`, username).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotPinned
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ed25519.PublicKey(key), nil
}
