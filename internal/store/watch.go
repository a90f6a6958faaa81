// Package store persists the tracking watcher checkpoints.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Checkpoint is the last tracking update already published for an order.
type Checkpoint struct {
	OrderID        string
	LastTrackingID string
	LastSequence   int64
	Active         bool
	UpdatedAt      time.Time
}

type WatchStore struct {
	pool DBPool
}

func NewWatchStore(pool DBPool) *WatchStore {
	return &WatchStore{pool: pool}
}

func (s *WatchStore) Get(ctx context.Context, orderID string) (Checkpoint, error) {
	var cp Checkpoint
	row := s.pool.QueryRow(ctx, `
		SELECT order_id, last_tracking_id, last_sequence, active, updated_at
		FROM tracking_watch
		WHERE order_id=$1
	`, orderID)
	if err := row.Scan(&cp.OrderID, &cp.LastTrackingID, &cp.LastSequence, &cp.Active, &cp.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Checkpoint{}, ErrNotFound
		}
		return Checkpoint{}, fmt.Errorf("select tracking_watch: %w", err)
	}
	return cp, nil
}

// Save upserts a checkpoint. The sequence never moves backwards and the tracking id
// only follows a sequence that is at least as new as the stored one.
func (s *WatchStore) Save(ctx context.Context, cp Checkpoint) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tracking_watch (order_id, last_tracking_id, last_sequence, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id) DO UPDATE SET
			last_tracking_id = CASE
				WHEN EXCLUDED.last_sequence >= tracking_watch.last_sequence THEN EXCLUDED.last_tracking_id
				ELSE tracking_watch.last_tracking_id
			END,
			last_sequence = GREATEST(tracking_watch.last_sequence, EXCLUDED.last_sequence),
			active = EXCLUDED.active,
			updated_at = now()
	`, cp.OrderID, cp.LastTrackingID, cp.LastSequence, cp.Active)
	if err != nil {
		return fmt.Errorf("upsert tracking_watch: %w", err)
	}
	return nil
}

func (s *WatchStore) ListActive(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT order_id FROM tracking_watch WHERE active ORDER BY updated_at`)
	if err != nil {
		return nil, fmt.Errorf("list active watches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order_id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active watches: %w", err)
	}
	return ids, nil
}
