package orch

import (
	"github.com/dkeye/pairline/internal/core"
	"github.com/dkeye/pairline/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join seats sid in the room named by rawRoom, creating the room on demand.
// A connection sitting in another room leaves it first.
func (o *Orchestrator) Join(sid core.SessionID, rawRoom, displayName string) (core.JoinResult, error) {
	roomID, err := domain.ParseRoomID(rawRoom)
	if err != nil {
		return core.JoinResult{}, err
	}
	if _, ok := o.Registry.Resolve(sid); !ok {
		return core.JoinResult{}, ErrUnknownSession
	}
	if displayName != "" {
		if displayName, err = domain.ValidateUsername(displayName); err != nil {
			return core.JoinResult{}, err
		}
	}

	if cur, ok := o.Registry.RoomOf(sid); ok && cur != roomID {
		o.leaveRoom(sid, cur)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(cur)).Msg("left previous room")
	}

	var res core.JoinResult
	for {
		room := o.Rooms.GetOrCreate(roomID)
		res, err = room.Join(sid, func(res core.JoinResult) {
			// Rejected joins leave the name untouched.
			if displayName != "" {
				_ = o.Registry.SetDisplayName(sid, displayName)
			}
			o.announceJoin(sid, roomID, res)
		})
		if err != core.ErrRoomClosed {
			break
		}
	}
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room_id", string(roomID)).Msg("join rejected")
		return res, err
	}

	if !o.Registry.SetRoom(sid, roomID) {
		// Disconnected while joining; give the seat back.
		o.leaveRoom(sid, roomID)
		return core.JoinResult{}, ErrUnknownSession
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room_id", string(roomID)).Stringer("state", res.State).Msg("joined room")
	return res, nil
}

// announceJoin runs under the room lock.
func (o *Orchestrator) announceJoin(sid core.SessionID, roomID domain.RoomID, res core.JoinResult) {
	switch res.Role {
	case core.RoleCreator:
		o.send(sid, roomEvent{Type: EventCreated, RoomID: roomID})
	case core.RoleJoiner:
		me := PeerDTO{ID: sid, Name: o.nameOf(sid)}
		peer := PeerDTO{ID: res.Peer, Name: o.nameOf(res.Peer)}
		o.send(sid, roomEvent{Type: EventJoined, RoomID: roomID, Peer: &peer})
		o.send(res.Peer, peerJoinedEvent{Type: EventPeerJoined, RoomID: roomID, ID: sid, Name: me.Name})
		// Only the member already present originates the offer.
		o.send(res.Peer, roomEvent{Type: EventReady, RoomID: roomID, Peer: &me})
	}
}

// Leave removes sid from its current room. A non-empty rawRoom must name
// that room, otherwise nothing happens. It returns the room that was left.
func (o *Orchestrator) Leave(sid core.SessionID, rawRoom string) (domain.RoomID, bool) {
	cur, ok := o.Registry.RoomOf(sid)
	if !ok {
		return "", false
	}
	if rawRoom != "" {
		if id, err := domain.ParseRoomID(rawRoom); err != nil || id != cur {
			return "", false
		}
	}
	return cur, o.leaveRoom(sid, cur)
}

func (o *Orchestrator) leaveRoom(sid core.SessionID, roomID domain.RoomID) bool {
	defer o.Registry.ClearRoom(sid, roomID)

	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return false
	}
	res := room.Leave(sid, func(res core.LeaveResult) {
		if res.Remaining != "" {
			o.send(res.Remaining, peerLeftEvent{Type: EventPeerLeft, RoomID: roomID, DepartedID: sid})
		}
	})
	if !res.Removed {
		return false
	}
	if res.State == domain.RoomEmpty {
		o.Rooms.Release(roomID)
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room_id", string(roomID)).Stringer("state", res.State).Msg("left room")
	return true
}
