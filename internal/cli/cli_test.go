package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/history"
	"keypad-calculator/internal/server"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) string {
	t.Helper()
	require.NoError(t, calculator.InitMetrics())
	require.NoError(t, history.InitMetrics())

	st, err := history.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv := httptest.NewServer(server.NewRouter(server.Config{Store: st}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"CALC_API_BASE_URL", "CALC_HISTORY_LIMIT", "CALC_STATUS_TTL", "CALC_TIMEOUT", "CALC_LOG_FILE", "CALC_FORMAT"} {
		t.Setenv(k, "")
	}

	var stdout, stderr bytes.Buffer
	cmd, app := newRoot()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := execute(context.Background(), cmd, app)
	return stdout.String(), stderr.String(), err
}

func TestKeysCommandChainsThroughAPI(t *testing.T) {
	api := newTestAPI(t)

	out, _, err := runCLI(t, "--api", api, "keys", "4+5+3=")
	require.NoError(t, err)

	var got keysResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, keysResult{Display: "12"}, got)

	out, _, err = runCLI(t, "--api", api, "history", "--limit", "5")
	require.NoError(t, err)

	var list history.ListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, 12.0, list.Items[0].Result)
	assert.Equal(t, 9.0, list.Items[1].Result)
}

func TestKeysCommandReportsStatus(t *testing.T) {
	api := newTestAPI(t)

	out, _, err := runCLI(t, "--api", api, "keys", "8/0=")
	require.NoError(t, err)

	var got keysResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0", got.Display)
	assert.Equal(t, "8 /", got.Preview)
	assert.Equal(t, "Division by zero is not allowed.", got.Status)
}

func TestKeysCommandTextFormat(t *testing.T) {
	api := newTestAPI(t)

	out, _, err := runCLI(t, "--api", api, "--format", "text", "keys", "12+3")
	require.NoError(t, err)
	assert.Equal(t, "12 +\n3\n", out)
}

func TestKeysCommandRejectsUnknownKey(t *testing.T) {
	_, _, err := runCLI(t, "keys", "1+x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestHistoryClear(t *testing.T) {
	api := newTestAPI(t)

	_, _, err := runCLI(t, "--api", api, "keys", "2*3=")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--api", api, "--format", "text", "history")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2 * 3 = 6  "), "got %q", out)

	out, _, err = runCLI(t, "--api", api, "history", "clear")
	require.NoError(t, err)
	assert.JSONEq(t, `{"cleared":true}`, out)

	out, _, err = runCLI(t, "--api", api, "--format", "text", "history")
	require.NoError(t, err)
	assert.Equal(t, "No history yet.\n", out)
}

func TestFlagValidation(t *testing.T) {
	cases := [][]string{
		{"--history-limit", "0", "keys", "1"},
		{"--status-ttl", "0s", "keys", "1"},
		{"--format", "yaml", "keys", "1"},
		{"history", "--limit", "501"},
	}
	for _, args := range cases {
		_, _, err := runCLI(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestEnvDefaults(t *testing.T) {
	api := newTestAPI(t)
	t.Setenv("CALC_API_BASE_URL", api)

	cmd := NewRootCmd()
	got, err := cmd.PersistentFlags().GetString("api")
	require.NoError(t, err)
	assert.Equal(t, api, got)
}

func TestMalformedEnvIsReported(t *testing.T) {
	t.Setenv("CALC_HISTORY_LIMIT", "lots")

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"keys", "1"})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CALC_HISTORY_LIMIT")
}

func TestShutdownRunsAfterFailedCommand(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	down := srv.URL
	srv.Close()

	cmd, app := newRoot()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--api", down, "history"})

	flushed := false
	app.shutdown = append(app.shutdown, func(context.Context) error {
		flushed = true
		return nil
	})

	err := execute(context.Background(), cmd, app)
	require.Error(t, err)
	assert.True(t, flushed)
	assert.Empty(t, app.shutdown)
}
