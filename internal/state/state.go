package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/five82/paa/internal/conversation"
	"github.com/five82/paa/internal/input"
	"github.com/five82/paa/internal/mode"
)

// State is everything the controller mutates and the view reads.
type State struct {
	Mode  mode.Mode
	Input input.Buffer
	Log   conversation.Log

	ShouldExit bool
	// Awaiting is set while a backend request is in flight. At most one
	// request may be outstanding.
	Awaiting bool
	// Pending identifies the in-flight request; uuid.Nil when idle.
	Pending uuid.UUID

	// Notice is one line of transient feedback shown in the input pane.
	Notice string

	Backend BackendStatus
}

// BackendStatus records the outcome of the most recent reachability probe.
type BackendStatus struct {
	Checked   bool
	Online    bool
	LastError error
	CheckedAt time.Time
}

// New returns the initial state: Navigation mode, empty buffer and log.
func New() *State {
	return &State{Mode: mode.Navigation}
}

// Begin marks a request as in flight.
func (s *State) Begin(id uuid.UUID) {
	s.Awaiting = true
	s.Pending = id
	s.Notice = ""
}

// Finish clears the in-flight marker if id matches the pending request. It
// reports whether the completion belongs to the outstanding request.
func (s *State) Finish(id uuid.UUID) bool {
	if !s.Awaiting || id != s.Pending {
		return false
	}
	s.Awaiting = false
	s.Pending = uuid.Nil
	return true
}

// RecordProbe stores the result of a backend reachability check. A failure
// keeps the error for display.
func (s *State) RecordProbe(err error) {
	s.Backend = BackendStatus{
		Checked:   true,
		Online:    err == nil,
		LastError: err,
		CheckedAt: time.Now(),
	}
}
