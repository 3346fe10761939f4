package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/mcdev12/liveauction/go/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *engine.Engine) {
	t.Helper()
	_, eng := newTestHandler(t)
	r := mux.NewRouter()
	NewAPI(eng).RegisterRoutes(r)
	return r, eng
}

func TestSubmitPlayer(t *testing.T) {
	r, eng := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/players", strings.NewReader(`{"name":"Messi"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"queued":{"name":"Messi","position":1}}`, rec.Body.String())
	assert.Equal(t, 1, eng.Snapshot().Queue.Count)
}

func TestSubmitPlayerValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{
		`{"name":"  "}`,
		`{"name":"Messi","basePrice":5}`,
		`{not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/players", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Contains(t, rec.Body.String(), `"ok":false`)
	}
}

func TestPendingPlayers(t *testing.T) {
	r, eng := newTestRouter(t)

	for _, name := range []string{"Messi", "Ronaldo"} {
		_, err := eng.EnqueuePlayer(name, nil)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/players/pending", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Messi")
	assert.Contains(t, rec.Body.String(), "Ronaldo")
}

func settleOne(t *testing.T, eng *engine.Engine) {
	t.Helper()
	_, err := eng.EnqueuePlayer("Messi", nil)
	require.NoError(t, err)
	require.NoError(t, eng.Start())
	require.NoError(t, eng.SubmitBid("TEAM1", 80))
	require.NoError(t, eng.CloseAndSell())
}

func TestExportJSON(t *testing.T) {
	r, eng := newTestRouter(t)
	settleOne(t, eng)

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `"history"`)
	assert.Contains(t, body, `"teams"`)
	assert.Contains(t, body, `"Messi"`)
}

func TestExportCSV(t *testing.T) {
	r, eng := newTestRouter(t)
	settleOne(t, eng)

	req := httptest.NewRequest(http.MethodGet, "/api/export?format=csv", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "timestamp,player,status,team_name,team_id,amount", lines[0])

	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 6)
	_, err := time.Parse(time.RFC3339, fields[0])
	assert.NoError(t, err)
	assert.Equal(t, "Messi", fields[1])
	assert.Equal(t, "sold", fields[2])
	assert.Equal(t, "Team 1", fields[3])
	assert.Equal(t, "TEAM1", fields[4])
	assert.Equal(t, "80", fields[5])
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
