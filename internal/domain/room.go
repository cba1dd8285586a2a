package domain

import (
	"errors"
	"strings"
)

// RoomCapacity is the number of seats in a call room.
const RoomCapacity = 2

const MaxRoomIDLen = 64

var (
	ErrRoomIDEmpty   = errors.New("room id empty")
	ErrRoomIDTooLong = errors.New("room id too long")
)

// RoomID is supplied by the caller; rooms exist for as long as someone sits in them.
type RoomID string

func ParseRoomID(raw string) (RoomID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrRoomIDEmpty
	}
	if len(raw) > MaxRoomIDLen {
		return "", ErrRoomIDTooLong
	}
	return RoomID(raw), nil
}

// RoomState is the lifecycle of a two-seat room.
//
//	EMPTY --join--> WAITING --join--> PAIRED
//	  ^               |  ^              |
//	  +----leave------+  +----leave-----+
type RoomState int

const (
	RoomEmpty RoomState = iota
	RoomWaiting
	RoomPaired
)

func (s RoomState) String() string {
	switch s {
	case RoomEmpty:
		return "EMPTY"
	case RoomWaiting:
		return "WAITING"
	case RoomPaired:
		return "PAIRED"
	default:
		return "UNKNOWN"
	}
}

func (s RoomState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Room struct {
	ID RoomID
}
