// Package conversation holds the chat transcript.
package conversation

import "iter"

// Sender identifies who wrote an entry.
type Sender int

const (
	User Sender = iota
	Model
)

// String returns the transcript label for the sender.
func (s Sender) String() string {
	switch s {
	case User:
		return "You"
	case Model:
		return "Model"
	default:
		return "Unknown"
	}
}

// Role maps the sender to the chat role used by model backends.
func (s Sender) Role() string {
	if s == Model {
		return "assistant"
	}
	return "user"
}

// Entry is one transcript record. Entries are values and never change after
// they are appended.
type Entry struct {
	Sender Sender
	Text   string
	// Failed marks a Model entry that reports a backend error instead of a reply.
	Failed bool
}

// Log is an append-only, insertion-ordered transcript. The zero value is an
// empty log. It is not safe for concurrent mutation.
type Log struct {
	entries []Entry
}

// Append adds an entry at the end of the log.
func (l *Log) Append(sender Sender, text string) {
	l.entries = append(l.entries, Entry{Sender: sender, Text: text})
}

// AppendFailure adds a Model entry carrying an error indicator.
func (l *Log) AppendFailure(text string) {
	l.entries = append(l.entries, Entry{Sender: Model, Text: text, Failed: true})
}

// All yields entries oldest first. The sequence can be ranged over any number
// of times.
func (l *Log) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Last returns the newest entry.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Context returns a copy of the entries a backend should see: everything
// except failure indicators.
func (l *Log) Context() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Failed {
			continue
		}
		out = append(out, e)
	}
	return out
}
