package core

import "errors"

// Frame is one encoded signaling message.
type Frame []byte

// SessionID identifies a single live signaling connection.
type SessionID string

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend never blocks; it fails with ErrBackpressure or ErrConnClosed.
	TrySend(Frame) error
	Close()
}
