package core

import (
	"sync"

	"github.com/dkeye/pairline/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory two-seat room.
// Every transition happens under mu, so a room is never observed half-updated.
type roomImpl struct {
	room    *domain.Room
	mu      sync.RWMutex
	state   domain.RoomState
	members []SessionID
	closed  bool
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:    room,
		state:   domain.RoomEmpty,
		members: make([]SessionID, 0, domain.RoomCapacity),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) State() domain.RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) Members() []SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SessionID, len(r.members))
	copy(out, r.members)
	return out
}

func (r *roomImpl) Has(sid SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(sid) >= 0
}

func (r *roomImpl) Join(sid SessionID, onJoin func(JoinResult)) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return JoinResult{State: r.state}, ErrRoomClosed
	}
	if r.indexOf(sid) >= 0 {
		return JoinResult{State: r.state}, ErrAlreadyMember
	}

	var res JoinResult
	switch r.state {
	case domain.RoomEmpty:
		r.members = append(r.members, sid)
		r.state = domain.RoomWaiting
		res = JoinResult{Role: RoleCreator, State: r.state}
	case domain.RoomWaiting:
		peer := r.members[0]
		r.members = append(r.members, sid)
		r.state = domain.RoomPaired
		res = JoinResult{Role: RoleJoiner, State: r.state, Peer: peer}
	default:
		log.Info().Str("module", "core.room").Str("room_id", string(r.room.ID)).Str("sid", string(sid)).Msg("join rejected, room full")
		return JoinResult{State: r.state}, ErrRoomFull
	}

	log.Info().
		Str("module", "core.room").
		Str("room_id", string(r.room.ID)).
		Str("sid", string(sid)).
		Stringer("state", r.state).
		Msg("member added")
	if onJoin != nil {
		onJoin(res)
	}
	return res, nil
}

func (r *roomImpl) Leave(sid SessionID, onLeave func(LeaveResult)) LeaveResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(sid)
	if i < 0 {
		return LeaveResult{State: r.state}
	}
	r.members = append(r.members[:i], r.members[i+1:]...)

	res := LeaveResult{Removed: true}
	switch r.state {
	case domain.RoomPaired:
		r.state = domain.RoomWaiting
		res.Remaining = r.members[0]
	case domain.RoomWaiting:
		r.state = domain.RoomEmpty
	}
	res.State = r.state

	log.Info().
		Str("module", "core.room").
		Str("room_id", string(r.room.ID)).
		Str("sid", string(sid)).
		Stringer("state", r.state).
		Msg("member removed")
	if onLeave != nil {
		onLeave(res)
	}
	return res
}

func (r *roomImpl) Retire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != domain.RoomEmpty {
		return false
	}
	r.closed = true
	return true
}

func (r *roomImpl) indexOf(sid SessionID) int {
	for i, m := range r.members {
		if m == sid {
			return i
		}
	}
	return -1
}
