package signal

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/pairline/internal/app/orch"
	"github.com/dkeye/pairline/internal/core"
	"github.com/dkeye/pairline/internal/domain"
	"github.com/rs/zerolog/log"
)

func joinErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomIDEmpty), errors.Is(err, domain.ErrRoomIDTooLong):
		return "missing_room"
	case errors.Is(err, core.ErrRoomFull):
		return "room_full"
	case errors.Is(err, core.ErrAlreadyMember):
		return "already_in_room"
	case errors.Is(err, domain.ErrUsernameEmpty), errors.Is(err, domain.ErrUsernameTooLong):
		return "invalid_name"
	case errors.Is(err, orch.ErrUnknownSession):
		return "unknown_session"
	default:
		return "join_failed"
	}
}

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type        string `json:"type"`
		RoomID      string `json:"roomId"`
		DisplayName string `json:"displayName,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, errBadPayload)
		return
	}
	if ctl.Limiter != nil && !ctl.Limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("join rate limited")
		ctl.sendError(conn, "rate_limited")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room_id", p.RoomID).Msg("join")
	if _, err := ctl.Orch.Join(sid, p.RoomID, p.DisplayName); err != nil {
		ctl.sendError(conn, joinErrorCode(err))
	}
}

// handleLeave leaves the current room; the connection stays open.
func (ctl *SignalWSController) handleLeave(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(conn, errBadPayload)
		return
	}

	roomID, ok := ctl.Orch.Leave(sid, p.RoomID)
	if !ok {
		log.Debug().Str("module", "signal").Str("sid", string(sid)).Str("room_id", p.RoomID).Msg("leave ignored")
		return
	}
	ctl.sendJSON(conn, struct {
		Type   string        `json:"type"`
		RoomID domain.RoomID `json:"roomId"`
	}{
		Type:   "left",
		RoomID: roomID,
	})
}
