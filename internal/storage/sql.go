package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var placeholderRe = regexp.MustCompile(`\$\d+`)

// SQL - хранилище на таблице kv_store, postgres (lib/pq) или sqlite (modernc)
type SQL struct {
	DB      *sql.DB
	dialect string
	Logger  *zap.SugaredLogger
}

func NewSQL(db *sql.DB, dialect string, l *zap.SugaredLogger) *SQL {
	return &SQL{
		DB:      db,
		dialect: dialect,
		Logger:  l,
	}
}

func OpenSQL(ctx context.Context, dialect, dsn string, l *zap.SugaredLogger) (*SQL, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s storage: dsn is required", dialect)
	}

	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	if dialect == DriverSQLite {
		if _, err = db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma wal: %w", err)
		}
	}

	s := NewSQL(db, dialect, l)
	if err = s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// В sqlite параметры через ?, запросы пишем в виде postgres
func (s *SQL) rebind(query string) string {
	if s.dialect != DriverSQLite {
		return query
	}
	return placeholderRe.ReplaceAllString(query, "?")
}

func (s *SQL) Migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS kv_store (
		store_key   TEXT PRIMARY KEY,
		store_value TEXT NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)
	`
	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		s.Logger.Errorf("%v. More details: %v", ErrWrite, err)
		return fmt.Errorf("migrate kv_store: %w", err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value string

	query := `
	SELECT store_value
	FROM kv_store
	WHERE store_key = $1
	`
	err := s.DB.QueryRowContext(ctx, s.rebind(query), key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.Logger.Errorf("%v. More details: %v", ErrRead, err)
		return nil, ErrRead
	}

	return []byte(value), nil
}

// Set - upsert, в обоих диалектах одинаковый ON CONFLICT
func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	query := `
	INSERT INTO kv_store (store_key, store_value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (store_key) DO UPDATE SET store_value = EXCLUDED.store_value, updated_at = EXCLUDED.updated_at
	`
	_, err := s.DB.ExecContext(ctx, s.rebind(query), key, string(value), time.Now().UTC())
	if err != nil {
		s.Logger.Errorf("%v. More details: %v", ErrWrite, err)
		return ErrWrite
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE store_key = $1`
	if _, err := s.DB.ExecContext(ctx, s.rebind(query), key); err != nil {
		s.Logger.Errorf("%v. More details: %v", ErrWrite, err)
		return ErrWrite
	}
	return nil
}

func (s *SQL) Close() error {
	return s.DB.Close()
}
