package gateway

import (
	"encoding/json"
	"errors"

	"github.com/mcdev12/liveauction/go/internal/engine"
	"github.com/rs/zerolog/log"
)

var (
	errNotAuthenticated = errors.New("not authenticated")
	errForbidden        = errors.New("forbidden")
	errUnknownRole      = errors.New("unknown role")
	errUnknownAction    = errors.New("unknown action")
	errUnknownMessage   = errors.New("unknown message type")
)

// Handler dispatches inbound session frames against the auction engine.
// Domain errors go back to the originating session only and never touch
// state.
type Handler struct {
	engine    *engine.Engine
	adminPass string
}

// NewHandler creates the message dispatcher.
func NewHandler(e *engine.Engine, adminPass string) *Handler {
	return &Handler{engine: e, adminPass: adminPass}
}

// HandleMessage decodes and applies one inbound frame.
func (h *Handler) HandleMessage(s *Session, frame []byte) {
	var msg inbound
	if err := json.Unmarshal(frame, &msg); err != nil {
		s.sendJSON(outbound{Type: msgTypeError, Error: "invalid JSON"})
		return
	}

	var err error
	switch msg.Type {
	case msgTypeLogin:
		h.handleLogin(s, msg)
		return
	case msgTypeAdmin:
		err = h.handleAdmin(s, msg)
	case msgTypeBid:
		err = h.handleBid(s, msg)
	case msgTypeTeam:
		err = h.handleTeam(s, msg)
	default:
		err = errUnknownMessage
	}

	if err != nil {
		log.Debug().
			Str("session_id", s.ID).
			Str("type", msg.Type).
			Str("action", msg.Action).
			Err(err).
			Msg("rejected session message")
		s.sendJSON(outbound{Type: msgTypeError, Error: err.Error()})
	}
}

func (h *Handler) handleLogin(s *Session, msg inbound) {
	switch Role(msg.Role) {
	case RoleAdmin:
		if msg.Pass != h.adminPass {
			s.sendJSON(outbound{Type: msgTypeLoginFailed, Error: "bad credentials"})
			return
		}
		s.Role = RoleAdmin
		s.TeamID = ""
	case RoleTeam:
		if err := h.engine.AuthenticateTeam(msg.TeamID, msg.Pass); err != nil {
			s.sendJSON(outbound{Type: msgTypeLoginFailed, Error: "bad credentials"})
			return
		}
		s.Role = RoleTeam
		s.TeamID = msg.TeamID
	case RoleAudience:
		s.Role = RoleAudience
		s.TeamID = ""
	default:
		s.sendJSON(outbound{Type: msgTypeLoginFailed, Error: errUnknownRole.Error()})
		return
	}

	payload := loginOKPayload{Role: s.Role}
	if s.TeamID != "" {
		teamID := s.TeamID
		payload.TeamID = &teamID
	}
	s.sendJSON(outbound{Type: msgTypeLoginOK, Payload: payload})
	s.sendJSON(outbound{Type: msgTypeState, Payload: h.engine.Snapshot()})

	log.Info().
		Str("session_id", s.ID).
		Str("role", string(s.Role)).
		Str("team_id", s.TeamID).
		Msg("session logged in")
}

func (h *Handler) handleAdmin(s *Session, msg inbound) error {
	if s.Role == "" {
		return errNotAuthenticated
	}
	if s.Role != RoleAdmin {
		return errForbidden
	}

	switch msg.Action {
	case actionStart:
		return h.engine.Start()
	case actionStartNext:
		return h.engine.StartNext()
	case actionPause:
		h.engine.Pause()
	case actionSetPlayer:
		h.engine.SetPlayer(msg.Player)
	case actionNext:
		h.engine.LoadNext()
	case actionCloseAndSell:
		return h.engine.CloseAndSell()
	case actionMarkUnsold:
		h.engine.MarkUnsold()
	case actionResetAll:
		h.engine.Reset()
	default:
		return errUnknownAction
	}
	return nil
}

func (h *Handler) handleBid(s *Session, msg inbound) error {
	if s.Role == "" {
		return errNotAuthenticated
	}
	if s.Role != RoleTeam {
		return errForbidden
	}
	return h.engine.SubmitBid(s.TeamID, msg.Amount)
}

func (h *Handler) handleTeam(s *Session, msg inbound) error {
	if s.Role == "" {
		return errNotAuthenticated
	}
	if s.Role != RoleTeam {
		return errForbidden
	}

	switch msg.Action {
	case actionSetName:
		return h.engine.RenameTeam(s.TeamID, msg.Name)
	default:
		return errUnknownAction
	}
}
