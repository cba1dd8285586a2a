package signal

import (
	"encoding/json"

	"github.com/dkeye/pairline/internal/core"
	"github.com/dkeye/pairline/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRename(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(conn, errBadPayload)
		return
	}
	if err := ctl.Orch.Registry.SetDisplayName(sid, p.Name); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("rename rejected")
		ctl.sendError(conn, "invalid_name")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("name", p.Name).Msg("rename")
	ctl.handleWhoAmI(sid, conn)
}

func (ctl *SignalWSController) handleWhoAmI(
	sid core.SessionID,
	conn *WsSignalConn,
) {
	c, ok := ctl.Orch.Registry.Resolve(sid)
	if !ok {
		return
	}
	ctl.sendJSON(conn, struct {
		Type     string         `json:"type"`
		ID       core.SessionID `json:"id"`
		Username string         `json:"username"`
		Room     domain.RoomID  `json:"room,omitempty"`
	}{
		Type:     "whoami",
		ID:       sid,
		Username: c.Name,
		Room:     c.Room,
	})
}
