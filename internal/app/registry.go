package app

import (
	"context"
	"sync"

	"github.com/dkeye/pairline/internal/core"
	"github.com/dkeye/pairline/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	User   *domain.User
	Room   domain.RoomID
	Signal core.SignalConnection
	Cancel context.CancelFunc

	// closing is set once Unregister started; the entry stays resolvable
	// until the unregister hook returns.
	closing bool
}

// Connection is a read-only snapshot of a registry entry.
type Connection struct {
	ID     core.SessionID
	Name   string
	Room   domain.RoomID
	Signal core.SignalConnection
}

// Registry is the single owner of live connections and the room each one sits in.
type Registry struct {
	mu           sync.RWMutex
	sessions     map[core.SessionID]*sessionEntry
	onUnregister func(sid core.SessionID)
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

// OnUnregister installs the hook run by Unregister before the id stops resolving.
func (r *Registry) OnUnregister(fn func(sid core.SessionID)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onUnregister = fn
}

func (r *Registry) Register(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{
		User:   domain.NewUser(domain.UserID(sid)),
		Signal: conn,
		Cancel: cancel,
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("registered connection")
}

// SetDisplayName is a no-op for unknown ids; it only fails on an invalid name.
func (r *Registry) SetDisplayName(sid core.SessionID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return nil
	}
	if err := e.User.SetUsername(name); err != nil {
		return err
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", e.User.Username).Msg("updated username")
	return nil
}

func (r *Registry) Resolve(sid core.SessionID) (Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok {
		return Connection{}, false
	}
	return Connection{ID: sid, Name: e.User.Username, Room: e.Room, Signal: e.Signal}, true
}

func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

// SetRoom records the room of a connection. It fails once the connection is
// unregistering so that a racing join can roll itself back.
func (r *Registry) SetRoom(sid core.SessionID, room domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok || e.closing {
		return false
	}
	e.Room = room
	log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Str("room_id", string(room)).Msg("updated room")
	return true
}

// ClearRoom forgets the room association, but only if it still points at room.
func (r *Registry) ClearRoom(sid core.SessionID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok && e.Room == room {
		e.Room = ""
		log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Msg("removed room association")
	}
}

// Unregister runs the unregister hook and then drops the connection.
// Only the first call for a given id does anything.
func (r *Registry) Unregister(sid core.SessionID) bool {
	r.mu.Lock()
	e, ok := r.sessions[sid]
	if !ok || e.closing {
		r.mu.Unlock()
		return false
	}
	e.closing = true
	hook := r.onUnregister
	r.mu.Unlock()

	if hook != nil {
		hook(sid)
	}

	r.mu.Lock()
	delete(r.sessions, sid)
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unregistered connection")
	return true
}

func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
