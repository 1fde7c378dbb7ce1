package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/paa/internal/logtail"
)

// renderLogs renders the tail of the log file in place of the transcript.
func renderLogs(f frame, width, height int) string {
	styles := f.styles
	innerW, innerH := inner(width, height)
	path := truncateMiddle(f.logPath, max(innerW/2, 10))

	var body string
	switch {
	case f.logPath == "":
		body = styles.FaintText.Render("Logging is disabled")
	case f.logErr != nil:
		body = styles.DangerText.Render(fmt.Sprintf("Error reading log: %v", f.logErr))
	case len(f.logLines) == 0:
		body = styles.FaintText.Render("No log records yet")
	default:
		// Newest records stay visible at the bottom.
		lines := f.logLines
		if len(lines) > innerH {
			lines = lines[len(lines)-innerH:]
		}
		rows := make([]string, 0, len(lines))
		for _, line := range lines {
			rows = append(rows, logLineStyle(styles, line).Render(strings.ReplaceAll(line.String(), "\n", " ")))
		}
		body = strings.Join(rows, "\n")
	}

	return box("Log", styles.MutedText.Render(path), body, width, height, styles, true)
}

func logLineStyle(styles Styles, line logtail.Line) lipgloss.Style {
	switch line.Level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	}
	return styles.Text
}
