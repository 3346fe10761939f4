// Package gateway binds network sessions to the auction core: websocket
// connections with role-based authentication, inbound message dispatch,
// best-effort snapshot fan-out and the thin HTTP endpoints for player
// submission and results export.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/liveauction/go/internal/engine"
	"github.com/rs/zerolog/log"
)

// Manager owns every live websocket session and fans broadcast frames out to
// all of them. Fan-out is best effort: a slow or disconnected session is
// dropped, never waited on.
type Manager struct {
	sessions map[*Session]bool
	mu       sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig
	handler  *Handler

	broadcastCh chan []byte
}

// ConnectionConfig holds websocket connection tunables.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns the default websocket configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// NewManager creates a session manager dispatching inbound messages to the
// given handler.
func NewManager(config ConnectionConfig, handler *Handler) *Manager {
	return &Manager{
		sessions: make(map[*Session]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		handler:     handler,
		broadcastCh: make(chan []byte, 256),
	}
}

// Start processes broadcast frames until the context is cancelled.
func (m *Manager) Start(ctx context.Context) {
	log.Info().Msg("session manager started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session manager shutting down")
			return
		case frame := <-m.broadcastCh:
			m.fanOut(frame)
		}
	}
}

// BroadcastState wraps a snapshot in a state frame and queues it for every
// connected session.
func (m *Manager) BroadcastState(snap engine.Snapshot) {
	frame, err := json.Marshal(outbound{Type: msgTypeState, Payload: snap})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal state frame")
		return
	}
	m.Broadcast(frame)
}

// Broadcast queues a frame for delivery to every connected session.
func (m *Manager) Broadcast(frame []byte) {
	select {
	case m.broadcastCh <- frame:
	default:
		log.Warn().Msg("broadcast channel full, dropping frame")
	}
}

// HandleWS upgrades an HTTP request to a websocket session.
func (m *Manager) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade websocket connection")
		return
	}

	session := &Session{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan []byte, 64),
		manager:     m,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}
	m.register(session)

	go session.writePump()
	go session.readPump()

	session.sendJSON(outbound{Type: msgTypeHello, Payload: helloPayload{Message: "connected"}})

	log.Info().
		Str("session_id", session.ID).
		Str("remote", r.RemoteAddr).
		Msg("websocket session established")
}

func (m *Manager) register(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s] = true
	log.Debug().
		Str("session_id", s.ID).
		Int("total_sessions", len(m.sessions)).
		Msg("session registered")
}

func (m *Manager) unregister(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s]; exists {
		delete(m.sessions, s)
		s.closeSend()
		log.Info().
			Str("session_id", s.ID).
			Msg("session unregistered")
	}
}

func (m *Manager) fanOut(frame []byte) {
	m.mu.RLock()
	targets := make([]*Session, 0, len(m.sessions))
	for s := range m.sessions {
		targets = append(targets, s)
	}
	m.mu.RUnlock()

	for _, s := range targets {
		if !s.queueFrame(frame) {
			// Session is slow or dead, close it
			log.Warn().Str("session_id", s.ID).Msg("session send buffer full, closing")
			m.unregister(s)
			s.Conn.Close()
		}
	}

	log.Debug().Int("sessions", len(targets)).Msg("frame broadcasted")
}

// SessionCount returns the number of live sessions.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// HandleStats reports connection statistics.
func (m *Manager) HandleStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"total_sessions":%d}`, m.SessionCount())
}
