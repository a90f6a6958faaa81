package dedup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrInvalidCheckpoint is returned for an empty consumer or partition key, or a sequence below 1.
var ErrInvalidCheckpoint = errors.New("invalid checkpoint")

const (
	selectLastSQL = `SELECT last_sequence FROM consumed_event_checkpoint WHERE consumer = $1 AND partition_key = $2`

	// The WHERE on the conflict branch leaves the row alone for stale or repeated sequences,
	// so RowsAffected tells whether the checkpoint moved.
	advanceSQL = `INSERT INTO consumed_event_checkpoint AS c (consumer, partition_key, last_sequence)
VALUES ($1, $2, $3)
ON CONFLICT (consumer, partition_key) DO UPDATE
SET last_sequence = EXCLUDED.last_sequence, updated_at = now()
WHERE c.last_sequence < EXCLUDED.last_sequence`
)

// Store remembers, per consumer and partition key (the order id), the highest
// event sequence already handled.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Last reports the stored sequence; found is false before the first Advance.
func (s *Store) Last(ctx context.Context, consumer, partitionKey string) (seq int64, found bool, err error) {
	if err := checkKey(consumer, partitionKey); err != nil {
		return 0, false, err
	}
	err = s.db.QueryRowContext(ctx, selectLastSQL, consumer, partitionKey).Scan(&seq)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("load checkpoint %s/%s: %w", consumer, partitionKey, err)
	}
	return seq, true, nil
}

// Advance moves the checkpoint to seq. It never goes backwards: an equal or older
// seq is a no-op and advanced is false.
func (s *Store) Advance(ctx context.Context, consumer, partitionKey string, seq int64) (advanced bool, err error) {
	if err := checkKey(consumer, partitionKey); err != nil {
		return false, err
	}
	if seq < 1 {
		return false, fmt.Errorf("%w: sequence %d", ErrInvalidCheckpoint, seq)
	}
	res, err := s.db.ExecContext(ctx, advanceSQL, consumer, partitionKey, seq)
	if err != nil {
		return false, fmt.Errorf("advance checkpoint %s/%s to %d: %w", consumer, partitionKey, seq, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("advance checkpoint %s/%s: rows affected: %w", consumer, partitionKey, err)
	}
	return n > 0, nil
}

func checkKey(consumer, partitionKey string) error {
	if consumer == "" {
		return fmt.Errorf("%w: empty consumer", ErrInvalidCheckpoint)
	}
	if partitionKey == "" {
		return fmt.Errorf("%w: empty partition key", ErrInvalidCheckpoint)
	}
	return nil
}
