package app

import "github.com/dkeye/pairline/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a recipient whose outbound queue is full.
type Policy interface {
	OnBackPressure(sid core.SessionID, err error) BackpressureAction
}

// SimplePolicy drops the frame; signaling is best-effort and the peers renegotiate.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(core.SessionID, error) BackpressureAction {
	return DropFrame
}

// StrictPolicy disconnects a recipient that cannot keep up.
type StrictPolicy struct{}

func (StrictPolicy) OnBackPressure(_ core.SessionID, err error) BackpressureAction {
	if err == core.ErrBackpressure {
		return KickMember
	}
	return DropFrame
}
