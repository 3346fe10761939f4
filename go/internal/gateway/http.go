package gateway

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mcdev12/liveauction/go/internal/engine"
	"github.com/rs/zerolog/log"
)

// API exposes the thin HTTP surface: player submission, queue preview and
// results export. All of it is a pure read/write consumer of the engine's
// public operations.
type API struct {
	engine *engine.Engine
}

// NewAPI creates the HTTP API around the engine.
func NewAPI(e *engine.Engine) *API {
	return &API{engine: e}
}

// RegisterRoutes attaches the API to a router.
func (a *API) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/players", a.handleSubmitPlayer).Methods(http.MethodPost)
	r.HandleFunc("/api/players/pending", a.handlePendingPlayers).Methods(http.MethodGet)
	r.HandleFunc("/api/export", a.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)
}

type submitPlayerRequest struct {
	Name      string `json:"name"`
	BasePrice *int   `json:"basePrice,omitempty"`
}

func (a *API) handleSubmitPlayer(w http.ResponseWriter, r *http.Request) {
	var req submitPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid JSON"})
		return
	}

	pos, err := a.engine.EnqueuePlayer(req.Name, req.BasePrice)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"queued": map[string]any{
			"name":     req.Name,
			"position": pos,
		},
	})
}

func (a *API) handlePendingPlayers(w http.ResponseWriter, _ *http.Request) {
	snap := a.engine.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "pending": snap.Queue.Pending})
}

// handleExport serves the settlement history and team standings as JSON or
// CSV. Read-only consumer of the public snapshot.
func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	snap := a.engine.Snapshot()

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="auction_results.csv"`)

		cw := csv.NewWriter(w)
		cw.Write([]string{"timestamp", "player", "status", "team_name", "team_id", "amount"})

		teamNames := make(map[string]string, len(snap.Teams))
		for _, t := range snap.Teams {
			teamNames[t.ID] = t.Name
		}
		for _, rec := range snap.Auction.History {
			status := "sold"
			teamID, teamName := "", ""
			if rec.Unsold {
				status = "unsold"
			}
			if rec.TeamID != nil {
				teamID = *rec.TeamID
				teamName = teamNames[teamID]
			}
			cw.Write([]string{
				rec.Timestamp.UTC().Format(time.RFC3339),
				rec.Player,
				status,
				teamName,
				teamID,
				strconv.Itoa(rec.Amount),
			})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			log.Error().Err(err).Msg("failed to write CSV export")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"history": snap.Auction.History,
		"teams":   snap.Teams,
	})
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}
