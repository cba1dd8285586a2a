package signal

import (
	"time"

	"github.com/dkeye/pairline/internal/core"
	"github.com/rs/zerolog/log"
)

// handlePing answers the client-side keepalive.
func (ctl *SignalWSController) handlePing(sid core.SessionID, conn *WsSignalConn) {
	log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("ping")
	ctl.sendJSON(conn, struct {
		Type string `json:"type"`
		TS   int64  `json:"ts"`
	}{
		Type: "pong",
		TS:   time.Now().UnixMilli(),
	})
}
