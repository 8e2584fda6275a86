package preview

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	require.True(t, shouldIgnoreEvent("/tmp/.hidden.html"))
	require.True(t, shouldIgnoreEvent("/tmp/#foo#"))
	require.True(t, shouldIgnoreEvent("/tmp/foo.swp"))
	require.True(t, shouldIgnoreEvent("/tmp/foo~"))
	require.True(t, shouldIgnoreEvent("/tmp/.DS_Store"))
	require.False(t, shouldIgnoreEvent("/tmp/index.html"))
}

func TestHandlerServesPlugFiles(t *testing.T) {
	dir := t.TempDir()
	plugDir := filepath.Join(dir, "todo-app")
	require.NoError(t, os.MkdirAll(plugDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(plugDir, "index.html"), []byte("<html>todo</html>"), 0o600))

	server := NewServer(dir, 0)
	handler := server.handler(dir)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todo-app/index.html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "todo")
}

func TestHandlerNotFound(t *testing.T) {
	dir := t.TempDir()
	server := NewServer(dir, 0)
	handler := server.handler(dir)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing-plug/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "one"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "two"), 0o750))

	server := NewServer(dir, 0)
	handler := server.handler(dir)

	// Generate a request so the counter has a sample
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/one/", nil))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "plugforge_preview_requests_total")
	require.Contains(t, body, "plugforge_plugs 2")
}
