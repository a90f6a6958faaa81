//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acrsolucoedig-spec/cellparts/internal/db"
	"github.com/acrsolucoedig-spec/cellparts/internal/dedup"
	"github.com/acrsolucoedig-spec/cellparts/internal/store"
	"github.com/acrsolucoedig-spec/cellparts/internal/testutil"
)

func TestWatchStore_Roundtrip(t *testing.T) {
	dsn, cleanup := testutil.StartPostgres(t)
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := store.NewWatchStore(pool)

	_, err = s.Get(ctx, "order-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Save(ctx, store.Checkpoint{OrderID: "order-1", Active: true}))
	require.NoError(t, s.Save(ctx, store.Checkpoint{OrderID: "order-2", Active: true}))
	require.NoError(t, s.Save(ctx, store.Checkpoint{OrderID: "order-1", LastTrackingID: "t-2", LastSequence: 2, Active: true}))

	// A stale write never moves the checkpoint backwards.
	require.NoError(t, s.Save(ctx, store.Checkpoint{OrderID: "order-1", LastTrackingID: "t-1", LastSequence: 1, Active: true}))

	cp, err := s.Get(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, "t-2", cp.LastTrackingID)
	require.Equal(t, int64(2), cp.LastSequence)
	require.True(t, cp.Active)

	ids, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"order-1", "order-2"}, ids)

	// The final checkpoint closes the watch in the same write.
	require.NoError(t, s.Save(ctx, store.Checkpoint{OrderID: "order-1", LastTrackingID: "t-2", LastSequence: 3}))

	ids, err = s.ListActive(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"order-2"}, ids)

	cp, err = s.Get(ctx, "order-1")
	require.NoError(t, err)
	require.False(t, cp.Active)
	require.Equal(t, int64(3), cp.LastSequence)
}

func TestDedupStore_Advance(t *testing.T) {
	dsn, cleanup := testutil.StartPostgres(t)
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	sqlDB, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	checkpoints := dedup.NewStore(sqlDB)

	_, found, err := checkpoints.Last(ctx, "consumer", "order-1")
	require.NoError(t, err)
	require.False(t, found)

	advanced, err := checkpoints.Advance(ctx, "consumer", "order-1", 3)
	require.NoError(t, err)
	require.True(t, advanced)

	// Stale and repeated sequences leave the row alone.
	for _, seq := range []int64{2, 3} {
		advanced, err = checkpoints.Advance(ctx, "consumer", "order-1", seq)
		require.NoError(t, err)
		require.False(t, advanced, seq)
	}

	seq, found, err := checkpoints.Last(ctx, "consumer", "order-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(3), seq)

	_, found, err = checkpoints.Last(ctx, "other-consumer", "order-1")
	require.NoError(t, err)
	require.False(t, found)
}
