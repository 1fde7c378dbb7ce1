package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/goleak"

	"github.com/five82/paa/internal/conversation"
	"github.com/five82/paa/internal/mode"
	"github.com/five82/paa/internal/ollama"
	"github.com/five82/paa/internal/prefs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackend struct {
	mu    sync.Mutex
	reply string
	err   error
	calls [][]conversation.Entry
}

func (f *fakeBackend) Generate(_ context.Context, history []conversation.Entry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, history)
	return f.reply, f.err
}

// blockingBackend waits for its context to end.
type blockingBackend struct{}

func (blockingBackend) Generate(ctx context.Context, _ []conversation.Entry) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type pingBackend struct {
	fakeBackend
	pingErr error
}

func (p *pingBackend) Ping(context.Context) error { return p.pingErr }

func newTestModel(t *testing.T, backend Backend) Model {
	t.Helper()
	m := New(Options{
		Backend:   backend,
		ModelName: "llama3.2",
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	t.Cleanup(m.cancel)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(t, m, k)
	}
	return m, cmd
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func special(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

// collect runs cmd and any batched commands, returning every message produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findResponse(t *testing.T, cmd tea.Cmd) responseMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if resp, ok := msg.(responseMsg); ok {
			return resp
		}
	}
	t.Fatal("command produced no responseMsg")
	return responseMsg{}
}

func hasQuit(cmd tea.Cmd) bool {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func entries(m Model) []conversation.Entry {
	var out []conversation.Entry
	for e := range m.state.Log.All() {
		out = append(out, e)
	}
	return out
}

func TestChatRoundTrip(t *testing.T) {
	backend := &fakeBackend{reply: "Hello! How can I help?"}
	m := newTestModel(t, backend)

	m, _ = press(t, m, special(tea.KeyEsc))
	if m.state.Mode != mode.Chat {
		t.Fatalf("mode after Esc = %v, want Chat", m.state.Mode)
	}
	m, _ = press(t, m, typed("h"), typed("i"))
	if got := m.state.Input.String(); got != "hi" {
		t.Fatalf("buffer = %q, want hi", got)
	}

	m, cmd := press(t, m, special(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	got := entries(m)
	if len(got) != 1 || got[0].Sender != conversation.User || got[0].Text != "hi" {
		t.Fatalf("log after submit = %+v, want [(User, hi)]", got)
	}
	if m.state.Input.String() != "" || m.state.Input.Cursor() != 0 {
		t.Fatalf("buffer not cleared: %q cursor %d", m.state.Input.String(), m.state.Input.Cursor())
	}
	if !m.state.Awaiting {
		t.Fatal("Awaiting should be set after submit")
	}

	m, _ = update(t, m, findResponse(t, cmd))
	got = entries(m)
	if len(got) != 2 || got[1].Sender != conversation.Model || got[1].Text != "Hello! How can I help?" {
		t.Fatalf("log after reply = %+v", got)
	}
	if m.state.Awaiting {
		t.Fatal("Awaiting should clear after the reply")
	}
	if len(backend.calls) != 1 || len(backend.calls[0]) != 1 || backend.calls[0][0].Text != "hi" {
		t.Fatalf("backend saw %+v, want the single user message", backend.calls)
	}
}

func TestQuitFromNavigation(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, cmd := press(t, m, typed("q"))
	if !m.state.ShouldExit {
		t.Fatal("q should set ShouldExit")
	}
	if !hasQuit(cmd) {
		t.Fatal("q should return tea.Quit")
	}
	if m.ctx.Err() == nil {
		t.Fatal("quit should cancel the model context")
	}
}

func TestQTypesInChatMode(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, cmd := press(t, m, special(tea.KeyEsc), typed("q"))
	if m.state.ShouldExit || cmd != nil {
		t.Fatal("q in chat mode must not quit")
	}
	if got := m.state.Input.String(); got != "q" {
		t.Fatalf("buffer = %q, want q", got)
	}
}

func TestCtrlCQuitsFromChat(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, cmd := press(t, m, special(tea.KeyEsc), special(tea.KeyCtrlC))
	if !m.state.ShouldExit || !hasQuit(cmd) {
		t.Fatal("ctrl+c should quit from chat mode")
	}
}

func TestQuitAbandonsPendingRequest(t *testing.T) {
	m := newTestModel(t, blockingBackend{})
	m, _ = press(t, m, special(tea.KeyEsc), typed("hello"))
	m, submitCmd := press(t, m, special(tea.KeyEnter))
	_, _ = press(t, m, special(tea.KeyCtrlC))

	done := make(chan []tea.Msg, 1)
	go func() { done <- collect(submitCmd) }()
	select {
	case msgs := <-done:
		var resp responseMsg
		for _, msg := range msgs {
			if r, ok := msg.(responseMsg); ok {
				resp = r
			}
		}
		if !errors.Is(resp.err, context.Canceled) {
			t.Fatalf("abandoned request err = %v, want context.Canceled", resp.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("backend call did not return after quit")
	}
}

func TestBackendFailureIsRecorded(t *testing.T) {
	backend := &fakeBackend{err: &ollama.ClientError{Type: ollama.ErrTypeNotRunning, Message: "connect", Cause: errors.New("refused")}}
	m := newTestModel(t, backend)

	m, _ = press(t, m, special(tea.KeyEsc), typed("hi"))
	m, cmd := press(t, m, special(tea.KeyEnter))
	m, _ = update(t, m, findResponse(t, cmd))

	last, ok := m.state.Log.Last()
	if !ok || !last.Failed || last.Sender != conversation.Model {
		t.Fatalf("last entry = %+v, want failed model entry", last)
	}
	if !strings.HasPrefix(last.Text, "⚠ ") || !strings.Contains(last.Text, "ollama running") {
		t.Fatalf("failure text = %q", last.Text)
	}
	if m.state.Awaiting {
		t.Fatal("Awaiting should clear after a failure")
	}
	if ctx := m.state.Log.Context(); len(ctx) != 1 {
		t.Fatalf("backend context = %+v, want failure excluded", ctx)
	}
}

func TestRequestTimeout(t *testing.T) {
	m := New(Options{Backend: blockingBackend{}, RequestTimeout: 20 * time.Millisecond, PrefsPath: filepath.Join(t.TempDir(), "p.toml")})
	t.Cleanup(m.cancel)

	m, _ = press(t, m, special(tea.KeyEsc), typed("hi"))
	m, cmd := press(t, m, special(tea.KeyEnter))
	m, _ = update(t, m, findResponse(t, cmd))

	last, _ := m.state.Log.Last()
	if !last.Failed || !strings.Contains(last.Text, "too long") {
		t.Fatalf("last entry = %+v, want timeout failure", last)
	}
}

func TestSecondSubmitWhileAwaitingIsRejected(t *testing.T) {
	m := newTestModel(t, &fakeBackend{reply: "ok"})
	m, _ = press(t, m, special(tea.KeyEsc), typed("a"))
	m, first := press(t, m, special(tea.KeyEnter))

	m, cmd := press(t, m, typed("b"), special(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("second submit should not start a request")
	}
	if m.state.Notice != noticeAwaiting {
		t.Fatalf("Notice = %q, want %q", m.state.Notice, noticeAwaiting)
	}
	if got := m.state.Input.String(); got != "b" {
		t.Fatalf("buffer = %q, want b kept", got)
	}
	if m.state.Log.Len() != 1 {
		t.Fatalf("log len = %d, want 1", m.state.Log.Len())
	}

	m, _ = update(t, m, findResponse(t, first))
	if m.state.Notice != "" {
		t.Fatalf("Notice should clear on completion, got %q", m.state.Notice)
	}
}

func TestStaleResponseIgnored(t *testing.T) {
	m := newTestModel(t, &fakeBackend{reply: "ok"})
	m, _ = press(t, m, special(tea.KeyEsc), typed("a"))
	m, _ = press(t, m, special(tea.KeyEnter))

	m, _ = update(t, m, responseMsg{id: uuid.New(), text: "late"})
	if m.state.Log.Len() != 1 || !m.state.Awaiting {
		t.Fatalf("stale response changed state: len=%d awaiting=%v", m.state.Log.Len(), m.state.Awaiting)
	}
}

func TestBlankSubmitIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)
	m, _ = press(t, m, special(tea.KeyEsc), special(tea.KeySpace), special(tea.KeySpace))
	m, cmd := press(t, m, special(tea.KeyEnter))
	if cmd != nil || m.state.Log.Len() != 0 || m.state.Awaiting {
		t.Fatal("blank submit should do nothing")
	}
	if got := m.state.Input.String(); got != "  " {
		t.Fatalf("buffer = %q, want two spaces kept", got)
	}
}

func TestNavigationIgnoresEditingKeys(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, cmd := press(t, m,
		typed("x"),
		special(tea.KeyLeft),
		special(tea.KeyBackspace),
		special(tea.KeyDelete),
		special(tea.KeySpace),
	)
	if cmd != nil {
		t.Fatal("navigation no-ops should not return commands")
	}
	if m.state.Mode != mode.Navigation || m.state.Input.Len() != 0 || m.state.Log.Len() != 0 || m.state.ShouldExit {
		t.Fatalf("state changed: %+v", m.state)
	}
}

func TestChatEditingKeys(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(t, m, special(tea.KeyEsc), typed("héllo"))
	m, _ = press(t, m, special(tea.KeyLeft), special(tea.KeyLeft), special(tea.KeyBackspace))
	if got := m.state.Input.String(); got != "hélo" {
		t.Fatalf("after backspace = %q, want hélo", got)
	}
	m, _ = press(t, m, special(tea.KeyHome), special(tea.KeyDelete))
	if got := m.state.Input.String(); got != "élo" {
		t.Fatalf("after home+delete = %q, want élo", got)
	}
	m, _ = press(t, m, special(tea.KeyEnd), special(tea.KeyRight), typed("!"))
	if got := m.state.Input.String(); got != "élo!" {
		t.Fatalf("after end = %q, want élo!", got)
	}
}

func TestPasteFlattensControlCharacters(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(t, m, special(tea.KeyEsc))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\nb\tc\x07"), Paste: true})
	if got := m.state.Input.String(); got != "a b c" {
		t.Fatalf("pasted buffer = %q, want %q", got, "a b c")
	}
}

func TestAltRunesIgnored(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(t, m, special(tea.KeyEsc), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true})
	if m.state.Input.Len() != 0 {
		t.Fatalf("alt+x inserted %q", m.state.Input.String())
	}
}

func TestNonKeyMessagesIgnored(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, cmd := update(t, m, tea.FocusMsg{})
	if cmd != nil || m.state.Mode != mode.Navigation {
		t.Fatal("unrelated message changed state")
	}
}

func TestOverlays(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.logPath = filepath.Join(t.TempDir(), "missing.log")

	m, _ = press(t, m, typed("?"))
	if m.overlay != overlayHelp {
		t.Fatal("? should open help")
	}
	m, _ = press(t, m, typed("?"))
	if m.overlay != overlayNone {
		t.Fatal("? should close help")
	}

	m, cmd := press(t, m, typed("l"))
	if m.overlay != overlayLogs {
		t.Fatal("l should open the log overlay")
	}
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("log overlay produced %d messages, want 1", len(msgs))
	}
	if _, ok := msgs[0].(logTailMsg); !ok {
		t.Fatalf("log overlay produced %T, want logTailMsg", msgs[0])
	}

	m, _ = press(t, m, special(tea.KeyEsc))
	if m.overlay != overlayNone || m.state.Mode != mode.Navigation {
		t.Fatal("Esc should close the overlay without switching mode")
	}

	m, _ = press(t, m, typed("?"), typed("i"))
	if m.overlay != overlayNone || m.state.Mode != mode.Chat {
		t.Fatal("other keys should close the overlay and dispatch")
	}
}

func TestCycleThemePersists(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(t, m, typed("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestScrollClamps(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	for i := 0; i < 10; i++ {
		m.state.Log.Append(conversation.User, "line")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	// 10 entries of two rows plus 9 separators in a 5-row viewport.
	const wantMax = 24
	if got := m.maxScroll(); got != wantMax {
		t.Fatalf("maxScroll = %d, want %d", got, wantMax)
	}
	m, _ = press(t, m, typed("k"))
	if m.scrollBack != 1 {
		t.Fatalf("scrollBack after k = %d, want 1", m.scrollBack)
	}
	m, _ = press(t, m, typed("g"))
	if m.scrollBack != wantMax {
		t.Fatalf("scrollBack after g = %d, want %d", m.scrollBack, wantMax)
	}
	m, _ = press(t, m, typed("k"))
	if m.scrollBack != wantMax {
		t.Fatalf("scrollBack past top = %d, want %d", m.scrollBack, wantMax)
	}
	m, _ = press(t, m, typed("G"))
	if m.scrollBack != 0 {
		t.Fatalf("scrollBack after G = %d, want 0", m.scrollBack)
	}
	m, _ = press(t, m, typed("j"))
	if m.scrollBack != 0 {
		t.Fatalf("scrollBack below bottom = %d, want 0", m.scrollBack)
	}
}

func TestInitProbesPinger(t *testing.T) {
	backend := &pingBackend{pingErr: errors.New("down")}
	m := newTestModel(t, backend)

	msgs := collect(m.Init())
	if len(msgs) != 1 {
		t.Fatalf("Init produced %d messages, want 1", len(msgs))
	}
	m, _ = update(t, m, msgs[0])
	if !m.state.Backend.Checked || m.state.Backend.Online {
		t.Fatalf("backend status = %+v, want checked offline", m.state.Backend)
	}

	if cmd := newTestModel(t, &fakeBackend{}).Init(); cmd != nil {
		t.Fatal("Init without a Pinger should return nil")
	}
}

func TestDescribeError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not_running", ollama.ErrNotRunning, "ollama running"},
		{"timeout", &ollama.ClientError{Type: ollama.ErrTypeTimeout, Message: "x"}, "too long"},
		{"deadline", context.DeadlineExceeded, "too long"},
		{"canceled", context.Canceled, "canceled"},
		{"model", ollama.ErrModelNotFound, `model "llama3.2" not found`},
		{"invalid", ollama.ErrInvalidResponse, "unexpected reply"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := describeError(tc.err, "llama3.2"); !strings.Contains(got, tc.want) {
				t.Fatalf("describeError(%v) = %q, want it to contain %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestNilBackendFails(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, special(tea.KeyEsc), typed("hi"))
	m, cmd := press(t, m, special(tea.KeyEnter))
	resp := findResponse(t, cmd)
	if !errors.Is(resp.err, errNoBackend) {
		t.Fatalf("err = %v, want errNoBackend", resp.err)
	}
	m, _ = update(t, m, resp)
	if last, _ := m.state.Log.Last(); !last.Failed {
		t.Fatalf("last = %+v, want failure", last)
	}
}
