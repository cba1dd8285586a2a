package core

import (
	"errors"

	"github.com/dkeye/pairline/internal/domain"
)

var (
	ErrRoomFull      = errors.New("room full")
	ErrAlreadyMember = errors.New("already in room")
	// ErrRoomClosed is returned by a room that was released from the manager
	// after the caller obtained it; callers fetch a fresh one and retry.
	ErrRoomClosed = errors.New("room closed")
)

// Role tells a joiner which side of the pairing it ended up on.
type Role int

const (
	RoleNone Role = iota
	// RoleCreator is the first member; it will be told to originate the offer.
	RoleCreator
	// RoleJoiner is the second member; it waits for the offer.
	RoleJoiner
)

type JoinResult struct {
	Role  Role
	State domain.RoomState
	// Peer is the member already present when Role == RoleJoiner.
	Peer SessionID
}

type LeaveResult struct {
	Removed   bool
	State     domain.RoomState
	Remaining SessionID
}

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	Room() *domain.Room
	State() domain.RoomState
	MemberCount() int
	Members() []SessionID
	Has(sid SessionID) bool

	// Join and Leave run their optional callback while the room is still
	// locked, so notifications leave in the order the transitions happened.
	Join(sid SessionID, onJoin func(JoinResult)) (JoinResult, error)
	Leave(sid SessionID, onLeave func(LeaveResult)) LeaveResult
	// Retire marks an empty room as unusable; it reports false if someone
	// sat down meanwhile. Join on a retired room fails with ErrRoomClosed.
	Retire() bool
}

type RoomInfo struct {
	ID          domain.RoomID    `json:"roomId"`
	State       domain.RoomState `json:"state"`
	MemberCount int              `json:"memberCount"`
}

type RoomManager interface {
	GetOrCreate(id domain.RoomID) RoomService
	Get(id domain.RoomID) (RoomService, bool)
	// Release drops the room from the table if it is still empty.
	Release(id domain.RoomID) bool
	List() []RoomInfo
}
