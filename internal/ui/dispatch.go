package ui

import (
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/paa/internal/conversation"
	"github.com/five82/paa/internal/mode"
	"github.com/five82/paa/internal/prefs"
)

// handleKey dispatches a key press on (mode, key).
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Interrupt) {
		return m.quit()
	}

	// An open overlay swallows its own toggle and Esc; any other key closes it
	// and is handled as usual.
	if m.overlay != overlayNone {
		closing := m.overlay
		m.overlay = overlayNone
		switch {
		case key.Matches(msg, m.keys.ToggleMode),
			closing == overlayHelp && key.Matches(msg, m.keys.Help),
			closing == overlayLogs && key.Matches(msg, m.keys.Logs):
			return m, nil
		}
	}

	if key.Matches(msg, m.keys.ToggleMode) {
		m.state.Mode = mode.Toggle(m.state.Mode)
		return m, nil
	}

	switch m.state.Mode {
	case mode.Chat:
		return m.handleChatKey(msg)
	default:
		return m.handleNavigationKey(msg)
	}
}

func (m Model) handleNavigationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.EnterChat):
		m.state.Mode = mode.Chat

	case key.Matches(msg, m.keys.Up):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(-m.pageSize())
	case key.Matches(msg, m.keys.Top):
		m.scrollBack = m.maxScroll()
	case key.Matches(msg, m.keys.Bottom):
		m.scrollBack = 0

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp

	case key.Matches(msg, m.keys.Logs):
		m.overlay = overlayLogs
		return m, loadLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.ToggleMarkdown):
		m.plainText = !m.plainText
		m.rebuildMarkdown()
		m.clampScroll()
		m.savePrefs()
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buf := &m.state.Input
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Left):
		buf.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		buf.MoveRight()
	case key.Matches(msg, m.keys.Home):
		buf.MoveHome()
	case key.Matches(msg, m.keys.End):
		buf.MoveEnd()
	case key.Matches(msg, m.keys.Backspace):
		buf.DeleteBefore()
	case key.Matches(msg, m.keys.DeleteChar):
		buf.DeleteAt()
	case msg.Type == tea.KeySpace:
		buf.Insert(' ')
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.insertRunes(msg.Runes)
	}
	return m, nil
}

// insertRunes types runes into the buffer. Pasted line breaks and tabs become
// spaces; other control characters are dropped.
func (m Model) insertRunes(runes []rune) {
	for _, r := range runes {
		switch r {
		case '\n', '\r', '\t':
			r = ' '
		}
		if !unicode.IsPrint(r) {
			continue
		}
		m.state.Input.Insert(r)
	}
}

// submit sends the buffer to the backend. Only one request may be in flight;
// a second submit is refused with a notice and the buffer is kept.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state.Input.IsBlank() {
		return m, nil
	}
	if m.state.Awaiting {
		m.state.Notice = noticeAwaiting
		return m, nil
	}

	text := m.state.Input.String()
	m.state.Log.Append(conversation.User, text)
	m.state.Input.Clear()

	id := uuid.New()
	m.state.Begin(id)
	m.scrollBack = 0
	m.logger.Info("message submitted",
		zap.String("request_id", id.String()),
		zap.Int("chars", utf8.RuneCountInString(text)),
		zap.Int("history", m.state.Log.Len()),
	)

	cmds := []tea.Cmd{generateCmd(m.ctx, m.backend, id, m.state.Log.Context(), m.timeout)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) savePrefs() {
	theme, plain := m.theme.Name, m.plainText
	_, err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) {
		p.Theme = theme
		p.PlainText = plain
	})
	if err != nil {
		m.logger.Warn("save preferences failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

func (m *Model) scrollBy(delta int) {
	m.scrollBack += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	m.scrollBack = max(0, min(m.scrollBack, m.maxScroll()))
}

// maxScroll is the number of transcript rows hidden above the viewport when
// it follows the newest entry.
func (m Model) maxScroll() int {
	f := m.frame()
	innerW, innerH := f.transcriptSize()
	content := renderTranscript(m.state, f, innerW)
	return max(0, lineCount(content)-innerH)
}

func (m Model) pageSize() int {
	_, h := m.frame().transcriptSize()
	return max(1, h-1)
}
