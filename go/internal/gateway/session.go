package gateway

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Role is what a session is allowed to do after login.
type Role string

const (
	// RoleAdmin is the auctioneer: drives phases and settlement.
	RoleAdmin Role = "admin"
	// RoleTeam is a bidder bound to one team id.
	RoleTeam Role = "team"
	// RoleAudience is a read-only observer.
	RoleAudience Role = "audience"
)

// Session is one websocket connection. Role and TeamID are set by a
// successful login and only ever touched from the session's own read pump.
type Session struct {
	ID     string
	Role   Role
	TeamID string

	Conn    *websocket.Conn
	Send    chan []byte
	manager *Manager

	// sendMu guards closed and every send on Send. Send is only ever
	// closed under sendMu, so queueFrame can never hit a closed channel.
	sendMu sync.Mutex
	closed bool

	ConnectedAt time.Time
	LastPing    time.Time
}

// queueFrame enqueues a frame without blocking. Reports false when the
// session is closed or its buffer is full.
func (s *Session) queueFrame(frame []byte) bool {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.Send <- frame:
		return true
	default:
		return false
	}
}

// closeSend marks the session closed and closes the send channel, exactly
// once. Frames queued after this are dropped.
func (s *Session) closeSend() {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.Send)
	}
}

// sendJSON queues a frame for this session only. Never blocks; if the
// session is gone or cannot keep up the frame is dropped.
func (s *Session) sendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("failed to marshal outbound frame")
		return
	}
	if !s.queueFrame(data) {
		log.Warn().Str("session_id", s.ID).Msg("session not accepting frames, dropping")
	}
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (s *Session) writePump() {
	ticker := time.NewTicker(s.manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		s.Conn.Close()
		s.manager.unregister(s)
	}()

	for {
		select {
		case frame, ok := <-s.Send:
			s.Conn.SetWriteDeadline(time.Now().Add(s.manager.config.WriteTimeout))
			if !ok {
				s.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Error().Err(err).Str("session_id", s.ID).Msg("failed to write frame")
				return
			}
		case <-ticker.C:
			s.Conn.SetWriteDeadline(time.Now().Add(s.manager.config.WriteTimeout))
			if err := s.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().Err(err).Str("session_id", s.ID).Msg("failed to send ping")
				return
			}
			s.LastPing = time.Now()
		}
	}
}

// readPump reads inbound frames and dispatches them to the handler.
func (s *Session) readPump() {
	defer func() {
		s.manager.unregister(s)
		s.Conn.Close()
	}()

	s.Conn.SetReadLimit(s.manager.config.MaxMessageSize)
	s.Conn.SetReadDeadline(time.Now().Add(s.manager.config.ReadTimeout))
	s.Conn.SetPongHandler(func(string) error {
		s.Conn.SetReadDeadline(time.Now().Add(s.manager.config.ReadTimeout))
		s.LastPing = time.Now()
		return nil
	})

	for {
		_, frame, err := s.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("session_id", s.ID).Msg("unexpected websocket close")
			}
			break
		}
		s.manager.handler.HandleMessage(s, frame)
		s.Conn.SetReadDeadline(time.Now().Add(s.manager.config.ReadTimeout))
	}
}
