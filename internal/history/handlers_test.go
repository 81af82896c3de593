package history

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"keypad-calculator/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (f failingStore) Append(context.Context, Entry) (Entry, error) { return Entry{}, f.err }
func (f failingStore) List(context.Context, int) ([]Entry, error)   { return nil, f.err }
func (f failingStore) Clear(context.Context) (int64, error)         { return 0, f.err }

func newTestRouter(t *testing.T, store Store) http.Handler {
	t.Helper()
	require.NoError(t, InitMetrics())
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(store))
	return r
}

func TestListHandlerReturnsItems(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer st.Close()

	_, err = st.Append(ctx, Entry{A: 2, B: 3, Op: "*", Result: 6})
	require.NoError(t, err)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/history?limit=5", nil), newTestRouter(t, st))
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var body ListResponse
	testutil.DecodeJSONBody(t, w.Body, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "*", body.Items[0].Op)
	assert.Equal(t, 6.0, body.Items[0].Result)
}

func TestListHandlerRejectsBadLimit(t *testing.T) {
	st, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer st.Close()

	for _, q := range []string{"abc", "0", "501"} {
		w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/history?limit="+q, nil), newTestRouter(t, st))
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", q)

		var body map[string]string
		testutil.DecodeJSONBody(t, w.Body, &body)
		assert.Contains(t, body["detail"], "limit must be an integer")
	}
}

func TestListHandlerStoreFailure(t *testing.T) {
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/history", nil), newTestRouter(t, failingStore{err: errors.New("disk gone")}))
	testutil.CheckResponseCode(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, w.Body, &body)
	assert.Equal(t, "Failed to load history.", body["detail"])
}

func TestClearHandler(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer st.Close()

	for i := 0; i < 2; i++ {
		_, err = st.Append(ctx, Entry{A: 1, B: 2, Op: "+", Result: 3})
		require.NoError(t, err)
	}

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, "/api/history", nil), newTestRouter(t, st))
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var body ClearResponse
	testutil.DecodeJSONBody(t, w.Body, &body)
	assert.Equal(t, int64(2), body.Deleted)

	items, err := st.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClearHandlerStoreFailure(t *testing.T) {
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, "/api/history", nil), newTestRouter(t, failingStore{err: errors.New("locked")}))
	testutil.CheckResponseCode(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, w.Body, &body)
	assert.Equal(t, "Failed to clear history.", body["detail"])
}
