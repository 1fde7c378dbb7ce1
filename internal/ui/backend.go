package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/five82/paa/internal/conversation"
	"github.com/five82/paa/internal/logtail"
	"github.com/five82/paa/internal/ollama"
)

// Backend produces a model reply for a transcript. Implementations must honor
// ctx cancellation.
type Backend interface {
	Generate(ctx context.Context, history []conversation.Entry) (string, error)
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

var errNoBackend = errors.New("no model backend configured")

// responseMsg carries a backend completion back into Update.
type responseMsg struct {
	id      uuid.UUID
	text    string
	err     error
	elapsed time.Duration
}

// probeMsg carries the startup reachability result.
type probeMsg struct {
	err error
}

// logTailMsg carries records read for the log overlay.
type logTailMsg struct {
	lines []logtail.Line
	err   error
}

// generateCmd runs one backend request. history must not be shared with the
// controller.
func generateCmd(ctx context.Context, backend Backend, id uuid.UUID, history []conversation.Entry, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if backend == nil {
			return responseMsg{id: id, err: errNoBackend}
		}
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		text, err := backend.Generate(reqCtx, history)
		return responseMsg{id: id, text: text, err: err, elapsed: time.Since(start)}
	}
}

func probeCmd(ctx context.Context, pinger Pinger) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
		defer cancel()
		return probeMsg{err: pinger.Ping(reqCtx)}
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logTailMsg{}
		}
		lines, err := logtail.Read(path, LogOverlayLines)
		return logTailMsg{lines: lines, err: err}
	}
}

// describeError turns a backend failure into the text shown in the transcript.
func describeError(err error, model string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ollama.ErrModelNotFound):
		if model == "" {
			return "model not found"
		}
		return fmt.Sprintf("model %q not found (try: ollama pull %s)", model, model)
	case errors.Is(err, ollama.ErrNotRunning):
		return "cannot reach the model server (is ollama running?)"
	case errors.Is(err, ollama.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "the model took too long to respond"
	case errors.Is(err, ollama.ErrCanceled), errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.Is(err, ollama.ErrInvalidResponse):
		return "unexpected reply from the model server: " + err.Error()
	}
	return err.Error()
}
