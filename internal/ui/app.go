package ui

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/five82/paa/internal/conversation"
	"github.com/five82/paa/internal/logtail"
	"github.com/five82/paa/internal/prefs"
	"github.com/five82/paa/internal/state"
)

// overlay is a full-height panel drawn over the transcript.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayLogs
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Backend        Backend
	Logger         *zap.Logger
	ModelName      string
	RequestTimeout time.Duration
	LogPath        string
	PrefsPath      string
	Prefs          prefs.Prefs
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	cancel    context.CancelFunc
	backend   Backend
	logger    *zap.Logger
	modelName string
	timeout   time.Duration
	logPath   string
	prefsPath string
	keys      keyMap

	// Conversation state
	state *state.State

	// UI state
	theme      Theme
	plainText  bool
	width      int
	height     int
	ready      bool
	scrollBack int
	overlay    overlay
	spinner    spinner.Model
	spinning   bool

	// Log overlay
	logLines []logtail.Line
	logErr   error

	// Markdown
	markdown *glamour.TermRenderer
	mdCache  map[string]string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:       ctx,
		cancel:    cancel,
		backend:   opts.Backend,
		logger:    logger,
		modelName: opts.ModelName,
		timeout:   timeout,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		state:     state.New(),
		theme:     GetTheme(opts.Prefs.Theme),
		plainText: opts.Prefs.PlainText,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		mdCache:   make(map[string]string),
	}
}

// State exposes the conversation state for inspection after the program ends.
func (m Model) State() *state.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if p, ok := m.backend.(Pinger); ok {
		return probeCmd(m.ctx, p)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		resized := msg.Width != m.width
		m.width = msg.Width
		m.height = msg.Height
		if resized || !m.ready {
			m.rebuildMarkdown()
		}
		m.ready = true
		m.clampScroll()
		return m, nil

	case responseMsg:
		return m.handleResponse(msg)

	case probeMsg:
		m.state.RecordProbe(msg.err)
		if msg.err != nil {
			m.logger.Warn("backend probe failed", zap.Error(msg.err))
		} else {
			m.logger.Info("backend online", zap.String("model", m.modelName))
		}
		return m, nil

	case logTailMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.state.Awaiting {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return render(m.state, m.frame())
}

// handleResponse applies a backend completion. Completions for anything other
// than the pending request are dropped.
func (m Model) handleResponse(msg responseMsg) (tea.Model, tea.Cmd) {
	if !m.state.Finish(msg.id) {
		m.logger.Debug("stale response ignored", zap.String("request_id", msg.id.String()))
		return m, nil
	}
	m.state.Notice = ""
	m.scrollBack = 0

	if msg.err != nil {
		m.state.Log.AppendFailure("⚠ " + describeError(msg.err, m.modelName))
		m.logger.Warn("generation failed",
			zap.String("request_id", msg.id.String()),
			zap.Duration("elapsed", msg.elapsed),
			zap.Error(msg.err),
		)
		return m, nil
	}

	m.state.Log.Append(conversation.Model, msg.text)
	m.logger.Info("response received",
		zap.String("request_id", msg.id.String()),
		zap.Duration("elapsed", msg.elapsed),
		zap.Int("chars", utf8.RuneCountInString(msg.text)),
	)
	return m, nil
}

// quit marks the session finished and abandons any outstanding request.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.state.ShouldExit = true
	if m.state.Awaiting {
		m.logger.Info("abandoning pending request", zap.String("request_id", m.state.Pending.String()))
	}
	m.cancel()
	return m, tea.Quit
}

func (m *Model) rebuildMarkdown() {
	m.mdCache = make(map[string]string)
	m.markdown = nil
	if m.plainText || m.width <= 0 {
		return
	}
	w, _ := inner(m.width, 0)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		return
	}
	m.markdown = r
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.cancel()

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)
	_, err := p.Run()
	return err
}
