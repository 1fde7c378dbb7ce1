// Package state holds the application state of paa.
//
// # Overview
//
// State aggregates the interaction mode, the input buffer, the conversation
// log and a handful of flags. It is owned by the UI controller, which is the
// only writer; the view functions receive a pointer and only read from it.
//
// # Concurrency Model
//
// There is no locking. The controller runs inside the bubbletea event loop,
// which serializes key presses and backend completions into a single Update
// call. Backend requests run in their own goroutines but never touch State;
// their results come back as messages:
//
//	key press ─────────┐
//	                   ├──> Update(msg) ──> *State ──> View()
//	backend response ──┘
//
// # Request Tracking
//
// Begin and Finish bracket a backend request. Awaiting doubles as the mutual
// exclusion flag: while it is set the controller refuses further submissions.
// Finish only accepts the id passed to Begin, so a reply that arrives after the
// request was abandoned is dropped instead of being appended to the log.
//
// # Backend Status
//
// RecordProbe stores the result of the startup reachability check so the view
// can show whether the model server answered.
package state
