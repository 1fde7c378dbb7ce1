// Package mode defines the two interaction modes of the application and the
// transition between them.
package mode

// Mode is the active interaction mode. The zero value is Navigation.
type Mode int

const (
	// Navigation interprets keystrokes as commands (quit, scroll, toggle).
	Navigation Mode = iota
	// Chat routes keystrokes into the input buffer.
	Chat
)

// Toggle returns the other mode. It has no side effects.
func Toggle(m Mode) Mode {
	switch m {
	case Chat:
		return Navigation
	default:
		return Chat
	}
}

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case Chat:
		return "Chat"
	case Navigation:
		return "Navigation"
	default:
		return "Unknown"
	}
}

// IsChat reports whether keystrokes compose a message.
func (m Mode) IsChat() bool {
	return m == Chat
}
