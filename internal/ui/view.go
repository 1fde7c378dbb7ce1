package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/paa/internal/conversation"
	"github.com/five82/paa/internal/logtail"
	"github.com/five82/paa/internal/state"
)

const (
	titleTranscript = "Personal Agentic Assistant"
	titleMode       = "App Mode"
	titleInput      = "Input"
)

// frame is everything the view needs besides the conversation state.
type frame struct {
	width  int
	height int

	styles     Styles
	keys       keyMap
	modelName  string
	scrollBack int
	spinner    string
	overlay    overlay

	markdown *glamour.TermRenderer
	mdCache  map[string]string

	logPath  string
	logLines []logtail.Line
	logErr   error
}

func (m Model) frame() frame {
	return frame{
		width:      m.width,
		height:     m.height,
		styles:     m.theme.Styles(),
		keys:       m.keys,
		modelName:  m.modelName,
		scrollBack: m.scrollBack,
		spinner:    m.spinner.View(),
		overlay:    m.overlay,
		markdown:   m.markdown,
		mdCache:    m.mdCache,
		logPath:    m.logPath,
		logLines:   m.logLines,
		logErr:     m.logErr,
	}
}

// transcriptSize is the content area of the top region.
func (f frame) transcriptSize() (int, int) {
	top, _ := layoutHeights(f.height)
	return inner(f.width, top)
}

// render draws the whole screen. It reads s and never modifies it.
func render(s *state.State, f frame) string {
	topH, bottomH := layoutHeights(f.height)

	var top string
	switch f.overlay {
	case overlayHelp:
		top = renderHelp(s, f, f.width, topH)
	case overlayLogs:
		top = renderLogs(f, f.width, topH)
	default:
		top = renderTranscriptPane(s, f, f.width, topH)
	}

	leftW, rightW := layoutWidths(f.width)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		renderModePane(s, f, leftW, bottomH),
		renderInputPane(s, f, rightW, bottomH),
	)
	if top == "" {
		return bottom
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func renderTranscriptPane(s *state.State, f frame, width, height int) string {
	innerW, innerH := inner(width, height)
	if innerW == 0 || innerH == 0 {
		return box(titleTranscript, "", "", width, height, f.styles, false)
	}

	vp := viewport.New(innerW, innerH)
	vp.SetContent(renderTranscript(s, f, innerW))
	vp.GotoBottom()
	if f.scrollBack > 0 {
		vp.SetYOffset(vp.YOffset - f.scrollBack)
	}

	return box(titleTranscript, backendStatus(s, f), vp.View(), width, height, f.styles, !s.Mode.IsChat())
}

// renderTranscript lays out every entry oldest first, separated by blank rows.
func renderTranscript(s *state.State, f frame, width int) string {
	if s.Log.Len() == 0 && !s.Awaiting {
		return f.styles.FaintText.Render("No messages yet. Press i to start typing, ? for help.")
	}

	var blocks []string
	for e := range s.Log.All() {
		blocks = append(blocks, renderEntry(e, f, width))
	}
	if s.Awaiting {
		blocks = append(blocks, f.styles.ModelLabel.Render(conversation.Model.String()+":")+" "+
			f.spinner+f.styles.MutedText.Render(" thinking…"))
	}
	return strings.Join(blocks, "\n\n")
}

func renderEntry(e conversation.Entry, f frame, width int) string {
	label := f.styles.SenderLabel(e.Sender).Render(e.Sender.String() + ":")

	var body string
	switch {
	case e.Failed:
		body = f.styles.DangerText.Width(width).Render(e.Text)
	case e.Sender == conversation.Model && f.markdown != nil:
		body = renderMarkdown(e.Text, f, width)
	default:
		body = f.styles.Text.Width(width).Render(e.Text)
	}
	return label + "\n" + body
}

// renderMarkdown renders a model reply with glamour, falling back to plain
// wrapped text when rendering fails.
func renderMarkdown(text string, f frame, width int) string {
	if out, ok := f.mdCache[text]; ok {
		return out
	}
	out, err := f.markdown.Render(text)
	if err != nil {
		return f.styles.Text.Width(width).Render(text)
	}
	out = strings.Trim(out, "\n")
	if f.mdCache != nil {
		f.mdCache[text] = out
	}
	return out
}

func backendStatus(s *state.State, f frame) string {
	name := f.styles.MutedText.Render(f.modelName)
	if !s.Backend.Checked {
		return name
	}
	dot := f.styles.SuccessText.Render("● online")
	if !s.Backend.Online {
		dot = f.styles.DangerText.Render("● offline")
	}
	if f.modelName == "" {
		return dot
	}
	return name + " " + dot
}

func renderModePane(s *state.State, f frame, width, height int) string {
	name := lipgloss.NewStyle().Foreground(ModeColor(s.Mode)).Bold(true).Render(s.Mode.String())
	body := f.styles.Text.Render("Mode:") + " " + name
	return box(titleMode, "", body, width, height, f.styles, false)
}

func renderInputPane(s *state.State, f frame, width, height int) string {
	innerW, _ := inner(width, height)

	status := ""
	switch {
	case s.Notice != "":
		status = f.styles.WarningText.Render(s.Notice)
	case s.Awaiting:
		status = f.spinner + f.styles.MutedText.Render(" waiting")
	}

	var body string
	switch {
	case s.Mode.IsChat():
		before, at, after := s.Input.Split()
		if at == "" {
			at = " "
		}
		before, after = inputWindow(before, at, after, innerW)
		body = f.styles.Text.Render(before) + f.styles.Cursor.Render(at) + f.styles.Text.Render(after)
	case s.Input.Len() == 0:
		body = f.styles.FaintText.Render("press i to type")
	default:
		body = f.styles.MutedText.Render(s.Input.String())
	}
	return box(titleInput, status, body, width, height, f.styles, s.Mode.IsChat())
}

// box draws body inside a rounded border with a title set into the top edge
// and an optional status on the right of it. The result is exactly width by
// height cells.
func box(title, status, body string, width, height int, styles Styles, focused bool) string {
	if width < 2 || height < 2 {
		return ""
	}
	innerW, innerH := inner(width, height)
	edge := styles.Border
	if focused {
		edge = styles.BorderFocus
	}
	b := lipgloss.RoundedBorder()

	var sb strings.Builder
	sb.WriteString(topEdge(title, status, innerW, styles, edge))
	for _, line := range clipLines(body, innerW, innerH) {
		sb.WriteByte('\n')
		sb.WriteString(edge.Render(b.Left))
		sb.WriteString(padCells(line, innerW))
		sb.WriteString(edge.Render(b.Right))
	}
	sb.WriteByte('\n')
	sb.WriteString(edge.Render(b.BottomLeft + strings.Repeat(b.Bottom, innerW) + b.BottomRight))
	return sb.String()
}

func topEdge(title, status string, innerW int, styles Styles, edge lipgloss.Style) string {
	b := lipgloss.RoundedBorder()

	label := ""
	if title != "" {
		label = " " + title + " "
	}
	right := ""
	if status != "" {
		right = " " + status + " "
	}
	// Drop the status before the title when space runs out.
	if 1+ansi.StringWidth(label)+ansi.StringWidth(right)+1 > innerW {
		right = ""
	}
	if 1+ansi.StringWidth(label) > innerW {
		label = ansi.Truncate(label, max(innerW-1, 0), "…")
	}

	used := ansi.StringWidth(label)
	lead := ""
	if innerW > 0 {
		lead = b.Top
		used++
	}
	tail := ""
	if right != "" {
		tail = b.Top
		used += ansi.StringWidth(right) + 1
	}
	fill := max(innerW-used, 0)

	return edge.Render(b.TopLeft+lead) +
		styles.Title.Render(label) +
		edge.Render(strings.Repeat(b.Top, fill)) +
		right +
		edge.Render(tail+b.TopRight)
}
