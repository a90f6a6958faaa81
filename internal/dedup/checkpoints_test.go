package dedup

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), mock
}

func TestLast_Found(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectLastSQL)).
		WithArgs("gateway", "order-1").
		WillReturnRows(sqlmock.NewRows([]string{"last_sequence"}).AddRow(int64(7)))

	seq, found, err := s.Last(context.Background(), "gateway", "order-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(7), seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLast_Missing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectLastSQL)).
		WithArgs("gateway", "order-2").
		WillReturnRows(sqlmock.NewRows([]string{"last_sequence"}))

	seq, found, err := s.Last(context.Background(), "gateway", "order-2")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLast_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectLastSQL)).WillReturnError(errors.New("connection reset"))

	_, _, err := s.Last(context.Background(), "gateway", "order-3")
	require.ErrorContains(t, err, "gateway/order-3")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvance(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		advanced bool
	}{
		{"moves forward", 1, true},
		{"stale sequence", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			mock.ExpectExec(regexp.QuoteMeta(advanceSQL)).
				WithArgs("gateway", "order-1", int64(8)).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			advanced, err := s.Advance(context.Background(), "gateway", "order-1", 8)
			require.NoError(t, err)
			assert.Equal(t, tc.advanced, advanced)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdvance_ExecError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(advanceSQL)).
		WithArgs("gateway", "order-1", int64(8)).
		WillReturnError(errors.New("deadlock"))

	_, err := s.Advance(context.Background(), "gateway", "order-1", 8)
	require.ErrorContains(t, err, "deadlock")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidCheckpointNeverQueries(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	_, _, err := s.Last(ctx, "", "order-1")
	assert.ErrorIs(t, err, ErrInvalidCheckpoint)
	_, err = s.Advance(ctx, "gateway", "", 1)
	assert.ErrorIs(t, err, ErrInvalidCheckpoint)
	_, err = s.Advance(ctx, "gateway", "order-1", 0)
	assert.ErrorIs(t, err, ErrInvalidCheckpoint)

	require.NoError(t, mock.ExpectationsWereMet())
}
