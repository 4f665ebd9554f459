package domain

import (
	"errors"
	"sync"
)

var ErrToggleInFlight = errors.New("a store toggle is already in progress")

// Status is the last store state confirmed by the backend.
type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusClosed
)

// StatusFromOpen maps the backend boolean onto Status.
func StatusFromOpen(open bool) Status {
	if open {
		return StatusOpen
	}
	return StatusClosed
}

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Command is a store toggle request.
type Command string

const (
	CommandOpen  Command = "open"
	CommandClose Command = "close"
)

// Target is the state a command leads to.
func (c Command) Target() Status {
	if c == CommandOpen {
		return StatusOpen
	}
	return StatusClosed
}

// Switch tracks the confirmed store state and whether a toggle is in flight for
// one console session. Only a successful status fetch changes the state.
type Switch struct {
	mu       sync.Mutex
	status   Status
	inFlight bool
}

func NewSwitch() *Switch {
	return &Switch{}
}

// Snapshot is a consistent read of a Switch.
type Snapshot struct {
	Status   Status
	InFlight bool
}

// Known reports whether the backend has ever answered.
func (s Snapshot) Known() bool {
	return s.Status != StatusUnknown
}

// Allows reports whether cmd would send anything: never while in flight, never
// towards the state already confirmed.
func (s Snapshot) Allows(cmd Command) bool {
	return !s.InFlight && s.Status != cmd.Target()
}

func (sw *Switch) Snapshot() Snapshot {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return Snapshot{Status: sw.status, InFlight: sw.inFlight}
}

// Begin claims the switch for cmd. It returns false without error when the store
// is already in the target state, and ErrToggleInFlight while another toggle runs.
// A true result must be paired with Finish.
func (sw *Switch) Begin(cmd Command) (bool, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.inFlight {
		return false, ErrToggleInFlight
	}
	if sw.status == cmd.Target() {
		return false, nil
	}
	sw.inFlight = true
	return true, nil
}

// Finish releases the switch.
func (sw *Switch) Finish() {
	sw.mu.Lock()
	sw.inFlight = false
	sw.mu.Unlock()
}

// Confirm records a state reported by the backend.
func (sw *Switch) Confirm(status Status) {
	sw.mu.Lock()
	sw.status = status
	sw.mu.Unlock()
}
