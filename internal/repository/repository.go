package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Store runs queries that span more than one statement.
type Store struct {
	*Queries
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{Queries: New(db), db: db}
}

// SaveBestTime stores a record and returns its rank among the records for
// the same field, both read and written in one transaction.
func (s *Store) SaveBestTime(ctx context.Context, params InsertBestTimeParams) (int, *BestTime, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	defer tx.Rollback()

	q := s.WithTx(tx)
	rank, err := q.Rank(ctx, params.GameParams, params.Playtime)
	if err != nil {
		return 0, nil, fmt.Errorf("unable to rank best time: %w", err)
	}
	b, err := q.InsertBestTime(ctx, params)
	if err != nil {
		return 0, nil, fmt.Errorf("unable to insert best time: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}
	return rank, b, nil
}
