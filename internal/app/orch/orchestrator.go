package orch

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/pairline/internal/app"
	"github.com/dkeye/pairline/internal/core"
	"github.com/dkeye/pairline/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrUnknownSession = errors.New("unknown session")

// Orchestrator coordinates rooms and routes signaling between connections.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomManager
	Policy   app.Policy
}

// New wires the registry's unregister hook to the room coordinator.
func New(reg *app.Registry, rooms core.RoomManager, policy app.Policy) *Orchestrator {
	o := &Orchestrator{
		Registry: reg,
		Rooms:    rooms,
		Policy:   policy,
	}
	reg.OnUnregister(o.onUnregister)
	return o
}

// Disconnect is the cancellation path of a connection. Calling it more than
// once, or after an explicit leave, has no further effect.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	conn, ok := o.Registry.Resolve(sid)
	if !ok {
		return
	}
	o.Registry.Cancel(sid)
	if o.Registry.Unregister(sid) {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("disconnected")
	}
	if conn.Signal != nil {
		conn.Signal.Close()
	}
}

func (o *Orchestrator) onUnregister(sid core.SessionID) {
	if roomID, ok := o.Registry.RoomOf(sid); ok {
		o.leaveRoom(sid, roomID)
	}
}

type MemberDTO struct {
	ID       core.SessionID `json:"id"`
	Username string         `json:"username"`
}

type RoomSnapshot struct {
	ID      domain.RoomID    `json:"roomId"`
	State   domain.RoomState `json:"state"`
	Members []MemberDTO      `json:"members"`
}

// Snapshot describes a room; unknown rooms are reported as empty.
func (o *Orchestrator) Snapshot(id domain.RoomID) RoomSnapshot {
	snap := RoomSnapshot{ID: id, State: domain.RoomEmpty, Members: []MemberDTO{}}
	room, ok := o.Rooms.Get(id)
	if !ok {
		return snap
	}
	snap.State = room.State()
	for _, sid := range room.Members() {
		snap.Members = append(snap.Members, MemberDTO{ID: sid, Username: o.nameOf(sid)})
	}
	return snap
}

func (o *Orchestrator) nameOf(sid core.SessionID) string {
	if c, ok := o.Registry.Resolve(sid); ok {
		return c.Name
	}
	return ""
}

// send delivers one event without blocking. A full queue is handed to Policy.
func (o *Orchestrator) send(sid core.SessionID, v any) bool {
	conn, ok := o.Registry.Resolve(sid)
	if !ok || conn.Signal == nil {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("send: unknown recipient")
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("send: marshal")
		return false
	}
	if err := conn.Signal.TrySend(b); err != nil {
		o.onSendError(sid, err)
		return false
	}
	return true
}

func (o *Orchestrator) onSendError(sid core.SessionID, err error) {
	action := app.DropFrame
	if o.Policy != nil {
		action = o.Policy.OnBackPressure(sid, err)
	}
	switch action {
	case app.KickMember:
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("slow recipient, disconnecting")
		// Callers may hold a room lock; the leave it triggers needs that lock.
		go o.Disconnect(sid)
	case app.DropFrame, app.NoAction:
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("frame dropped")
	}
}
