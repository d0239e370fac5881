package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/metrics"
	"github.com/afjrotc/logistics/internal/store"
)

// run executes the CLI against a SQLite file and returns its output.
func run(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	defer a.close()

	var out bytes.Buffer
	root := newRootCmd(a)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--log-level", "error", "--storage", "sqlite", "--dsn", dsn}, args...))
	err := root.Execute()
	return out.String(), err
}

func tempDSN(t *testing.T) string {
	return filepath.Join(t.TempDir(), "logistics.sqlite3")
}

func TestUsersCommands(t *testing.T) {
	dsn := tempDSN(t)

	out, err := run(t, dsn, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "instructor@school.edu")
	assert.Contains(t, out, "Admin (Instructor)")

	out, err = run(t, dsn, "users", "add", "new@school.edu", "C/Maj Ortiz", "--role", "logistics")
	require.NoError(t, err)
	assert.Contains(t, out, "Authorized new@school.edu")

	_, err = run(t, dsn, "users", "add", "NEW@school.edu", "Someone Else")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	_, err = run(t, dsn, "users", "remove", "new@school.edu")
	assert.ErrorIs(t, err, store.ErrConfirmationRequired)

	out, err = run(t, dsn, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "new@school.edu")

	out, err = run(t, dsn, "users", "remove", "new@school.edu", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed new@school.edu")

	out, err = run(t, dsn, "users", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "new@school.edu")
}

func TestUsersAddRejectsUnknownRole(t *testing.T) {
	_, err := run(t, tempDSN(t), "users", "add", "new@school.edu", "C/Maj Ortiz", "--role", "general")
	assert.ErrorIs(t, err, store.ErrInvalidRole)
}

func TestSeed(t *testing.T) {
	dsn := tempDSN(t)

	out, err := run(t, dsn, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 8 items and 3 authorized users")

	_, err = run(t, dsn, "seed")
	assert.ErrorIs(t, err, errDataExists)

	_, err = run(t, dsn, "users", "add", "new@school.edu", "C/Maj Ortiz")
	require.NoError(t, err)

	_, err = run(t, dsn, "seed", "--force")
	require.NoError(t, err)

	out, err = run(t, dsn, "users", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "new@school.edu")
}

func TestUnknownStorageDriver(t *testing.T) {
	a := newApp()
	defer a.close()

	root := newRootCmd(a)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--storage", "floppy", "users", "list"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floppy")
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	svc := logistics.New(kv.NewMemory(), logistics.Options{})
	require.NoError(t, svc.Init(context.Background()))

	m := metrics.New()
	m.RegisterInventory(svc)

	h, err := newHandler(svc, m, "test-secret", false, zap.NewNop())
	require.NoError(t, err)
	return h
}

func TestHandlerRoutes(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = http.Post(ts.URL+"/api/auth/login", "application/json", strings.NewReader(`{"email":"cadet@school.edu"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err = client.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	metricsText := string(body)
	assert.Contains(t, metricsText, `logistics_http_requests_total{method="POST",route="/api/auth/login",status="200"} 1`)
	assert.Contains(t, metricsText, "logistics_inventory_items 154")
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- listenAndServe(ctx, server, zap.NewNop()) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
