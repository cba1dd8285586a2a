package signal

import (
	"encoding/json"

	"github.com/dkeye/pairline/internal/app/orch"
	"github.com/dkeye/pairline/internal/core"
	"github.com/rs/zerolog/log"
)

// handleRelay forwards offer/answer/ice-candidate to the peer named in "to".
// The body is kept as raw fields so SDP and candidates pass through as sent.
func (ctl *SignalWSController) handleRelay(
	sid core.SessionID,
	conn *WsSignalConn,
	typ string,
	data []byte,
) {
	kind, err := orch.ParseKind(typ)
	if err != nil {
		ctl.sendError(conn, "unknown_type")
		return
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		ctl.sendError(conn, errBadPayload)
		return
	}
	var to string
	if raw, ok := payload["to"]; ok {
		_ = json.Unmarshal(raw, &to)
	}
	if to == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("type", typ).Msg("relay without recipient")
		ctl.sendError(conn, "missing_recipient")
		return
	}
	ctl.Orch.Relay(kind, sid, core.SessionID(to), payload)
}
