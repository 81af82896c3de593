package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SQLiteStoreSuite runs against a fresh in-memory database per test.
type SQLiteStoreSuite struct {
	suite.Suite
	store *SQLiteStore
	ctx   context.Context
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	st, err := OpenSQLite(s.ctx, ":memory:")
	s.Require().NoError(err)
	s.store = st
}

func (s *SQLiteStoreSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func (s *SQLiteStoreSuite) TestAppendAssignsIDAndTimestamp() {
	e, err := s.store.Append(s.ctx, Entry{A: 4, B: 5, Op: "+", Result: 9})
	s.Require().NoError(err)

	s.Positive(e.ID)
	s.False(e.CreatedAt.IsZero())
	s.Equal(time.UTC, e.CreatedAt.Location())
}

func (s *SQLiteStoreSuite) TestListNewestFirst() {
	for i := 1; i <= 3; i++ {
		_, err := s.store.Append(s.ctx, Entry{A: float64(i), B: 1, Op: "*", Result: float64(i)})
		s.Require().NoError(err)
	}

	items, err := s.store.List(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(items, 3)

	s.Equal(3.0, items[0].A)
	s.Equal(2.0, items[1].A)
	s.Equal(1.0, items[2].A)
	s.Greater(items[0].ID, items[1].ID)
}

func (s *SQLiteStoreSuite) TestListRespectsLimit() {
	for i := 0; i < 5; i++ {
		_, err := s.store.Append(s.ctx, Entry{A: float64(i), B: 2, Op: "-", Result: float64(i - 2)})
		s.Require().NoError(err)
	}

	items, err := s.store.List(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(items, 2)
	s.Equal(4.0, items[0].A)
}

func (s *SQLiteStoreSuite) TestListEmpty() {
	items, err := s.store.List(s.ctx, 0)
	s.Require().NoError(err)
	s.NotNil(items)
	s.Empty(items)
}

func (s *SQLiteStoreSuite) TestRoundTripKeepsFields() {
	created := time.Date(2026, 10, 19, 12, 30, 0, 123000000, time.UTC)
	_, err := s.store.Append(s.ctx, Entry{A: 0.1, B: 0.2, Op: "+", Result: 0.30000000000000004, CreatedAt: created})
	s.Require().NoError(err)

	items, err := s.store.List(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(items, 1)

	got := items[0]
	s.Equal(0.1, got.A)
	s.Equal(0.2, got.B)
	s.Equal("+", got.Op)
	s.Equal(0.30000000000000004, got.Result)
	s.True(created.Equal(got.CreatedAt))
}

func (s *SQLiteStoreSuite) TestClearReportsDeletedRows() {
	for i := 0; i < 3; i++ {
		_, err := s.store.Append(s.ctx, Entry{A: 1, B: 1, Op: "+", Result: 2})
		s.Require().NoError(err)
	}

	n, err := s.store.Clear(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	items, err := s.store.List(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(items)

	n, err = s.store.Clear(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func TestOpenSQLitePersistsAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	st, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	_, err = st.Append(ctx, Entry{A: 8, B: 2, Op: "/", Result: 4})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer st.Close()

	items, err := st.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4.0, items[0].Result)
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: -1, want: DefaultLimit},
		{in: 0, want: DefaultLimit},
		{in: 1, want: 1},
		{in: 50, want: 50},
		{in: MaxLimit + 1, want: MaxLimit},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ClampLimit(tc.in), "limit %d", tc.in)
	}
}
