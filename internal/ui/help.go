package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/paa/internal/state"
)

// helpSection represents a section in the help overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

// renderHelp renders the help overlay in place of the transcript.
func renderHelp(s *state.State, f frame, width, height int) string {
	styles := f.styles
	sections := []helpSection{
		{title: "Navigation", bindings: f.keys.NavigationHelp()},
		{title: "Chat", bindings: f.keys.ChatHelp()},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		if section.title == s.Mode.String() {
			b.WriteString(styles.FaintText.Render(" (current)"))
		}
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(styles.HelpKey.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	innerW, innerH := inner(width, height)
	content := lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, b.String())
	return box("Help", "", content, width, height, styles, true)
}
