package orch

import (
	"github.com/dkeye/pairline/internal/core"
	"github.com/dkeye/pairline/internal/domain"
)

// Server to client event types.
const (
	EventCreated    = "created"
	EventJoined     = "joined"
	EventPeerJoined = "peer-joined"
	EventReady      = "ready"
	EventPeerLeft   = "peer-left"
)

type PeerDTO struct {
	ID   core.SessionID `json:"id"`
	Name string         `json:"name"`
}

// roomEvent covers created, joined and ready.
type roomEvent struct {
	Type   string        `json:"type"`
	RoomID domain.RoomID `json:"roomId"`
	Peer   *PeerDTO      `json:"peer,omitempty"`
}

type peerJoinedEvent struct {
	Type   string         `json:"type"`
	RoomID domain.RoomID  `json:"roomId"`
	ID     core.SessionID `json:"id"`
	Name   string         `json:"name"`
}

type peerLeftEvent struct {
	Type       string         `json:"type"`
	RoomID     domain.RoomID  `json:"roomId"`
	DepartedID core.SessionID `json:"departedId"`
}
